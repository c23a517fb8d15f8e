// Package report describes the outcome of a migration run and publishes it.
//
// A Report carries a run id, start and end time and one CollectionResult per
// collection (migrated, skipped or failed, with source and destination point
// counts). Sinks receive the finished report:
//
//	LogSink     one log line per collection plus a summary line
//	KafkaSink   JSON message keyed by run id (segmentio/kafka-go)
//	RabbitSink  JSON message to an exchange (rabbitmq/amqp091-go)
//	MultiSink   publishes to all of the above, collecting failures
//
// Publishing happens after the data has been copied. A failing sink is
// reported but never undoes a migration.
package report

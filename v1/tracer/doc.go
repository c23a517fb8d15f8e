// Package tracer sets up OpenTelemetry tracing for the migration tool.
//
// The migrator opens one span per run, one per collection and one per scroll
// and upload batch. With EnableExport the spans go to an OTLP/HTTP collector
// configured through the standard OTEL_EXPORTER_OTLP_* variables; without it
// they only feed trace ids into the log lines.
//
//	tr := tracer.NewClient(tracer.DefaultConfig(), log)
//	ctx, span := tr.StartSpan(ctx, "migrate.collection")
//	defer span.End()
//	tr.SetAttributes(span, map[string]interface{}{"collection": "docs"})
package tracer

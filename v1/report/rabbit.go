package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of *amqp.Channel the sink uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitSink publishes the report to an exchange.
type RabbitSink struct {
	cfg       RabbitConfig
	conn      *amqp.Connection
	publisher Publisher
	logger    Logger
}

// NewRabbitSink connects, opens a channel and declares the exchange when
// cfg.DeclareExchange is set.
func NewRabbitSink(cfg RabbitConfig, logger Logger) (*RabbitSink, error) {
	if cfg.RoutingKey == "" {
		cfg.RoutingKey = DefaultRabbitRoutingKey
	}
	if cfg.ContentType == "" {
		cfg.ContentType = DefaultRabbitContentType
	}
	if cfg.ExchangeType == "" {
		cfg.ExchangeType = DefaultRabbitExchangeType
	}

	conn, err := newConnection(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to Rabbit", nil, map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
	})

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("[Report] failed to create channel: %w", err)
	}

	if cfg.DeclareExchange && cfg.ExchangeName != "" {
		err = ch.ExchangeDeclare(
			cfg.ExchangeName,
			cfg.ExchangeType,
			true,  // Durable
			false, // AutoDelete
			false, // Internal
			false, // NoWait
			nil,   // Arguments
		)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("[Report] failed to declare exchange: %w", err)
		}
	}

	sink := NewRabbitSinkWithPublisher(ch, cfg, logger)
	sink.conn = conn
	return sink, nil
}

// NewRabbitSinkWithPublisher wraps an existing channel.
func NewRabbitSinkWithPublisher(publisher Publisher, cfg RabbitConfig, logger Logger) *RabbitSink {
	if cfg.ContentType == "" {
		cfg.ContentType = DefaultRabbitContentType
	}
	return &RabbitSink{cfg: cfg, publisher: publisher, logger: logger}
}

func (s *RabbitSink) Publish(ctx context.Context, r *Report) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("[Report] failed to encode report: %w", err)
	}

	err = s.publisher.PublishWithContext(ctx,
		s.cfg.ExchangeName,
		s.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  s.cfg.ContentType,
			DeliveryMode: amqp.Persistent,
			MessageId:    r.RunID,
			Timestamp:    r.FinishedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("[Report] failed to publish report to exchange %q: %w", s.cfg.ExchangeName, err)
	}

	s.logger.Info("Published migration report to rabbit", nil, map[string]interface{}{
		"run_id":      r.RunID,
		"exchange":    s.cfg.ExchangeName,
		"routing_key": s.cfg.RoutingKey,
	})
	return nil
}

func (s *RabbitSink) Close() error {
	err := s.publisher.Close()
	if s.conn != nil {
		if cerr := s.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// newConnection dials plain amqp, amqps, or amqps with a client certificate.
func newConnection(cfg RabbitConfig) (*amqp.Connection, error) {
	scheme := "amqp"
	amqpConfig := amqp.Config{
		Heartbeat: 2 * time.Second,
	}

	if cfg.IsSSLEnabled {
		scheme = "amqps"
		if cfg.UseCert {
			tlsConfig, err := createTLSConfig(cfg.CACertPath, cfg.ClientCertPath, cfg.ClientKeyPath, cfg.ServerName, false)
			if err != nil {
				return nil, fmt.Errorf("[Report] failed to create rabbit TLS config: %w", err)
			}
			amqpConfig.TLSClientConfig = tlsConfig
		}
	}

	hostURL := fmt.Sprintf("%s://%v:%v@%v:%v", scheme, cfg.User, cfg.Password, cfg.Host, cfg.Port)
	conn, err := amqp.DialConfig(hostURL, amqpConfig)
	if err != nil {
		return nil, fmt.Errorf("[Report] failed to connect to Rabbit at %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return conn, nil
}

package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Event subjects fanned out to downstream consumers (CRM sync, mail workers).
const (
	SubjectInquiryReceived  = "cms.inquiry.received"
	SubjectSubscriberSigned = "cms.subscriber.signed_up"
)

// EventPublisher fans domain events out over NATS. Publishing is best-effort:
// a broker outage never fails the originating request.
type EventPublisher interface {
	Publish(subject string, payload any)
}

type natsPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNatsPublisher constructs a NATS-backed event publisher. A nil connection
// yields a publisher that drops everything, which keeps tests and minimal
// deployments wiring-free.
func NewNatsPublisher(conn *nats.Conn, logger zerolog.Logger) EventPublisher {
	return &natsPublisher{
		conn:   conn,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsPublisher) Publish(subject string, payload any) {
	if p.conn == nil {
		return
	}

	body, err := json.Marshal(map[string]any{
		"subject":     subject,
		"payload":     payload,
		"occurred_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		p.logger.Error().Err(err).Str("subject", subject).Msg("failed to encode event")
		return
	}

	if err := p.conn.Publish(subject, body); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}

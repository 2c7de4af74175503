package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/audit"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// memoryAuditStore captures audit records so tests can assert on what the
// services logged.
type memoryAuditStore struct {
	records []*audit.Record
	err     error
}

func (m *memoryAuditStore) Create(_ context.Context, record *audit.Record) error {
	if m.err != nil {
		return m.err
	}
	record.ID = uint(len(m.records) + 1)
	m.records = append(m.records, record)
	return nil
}

func (m *memoryAuditStore) last() *audit.Record {
	if len(m.records) == 0 {
		return nil
	}
	return m.records[len(m.records)-1]
}

func testAuditor() (*audit.Writer, *memoryAuditStore) {
	store := &memoryAuditStore{}
	return audit.NewWriter(store, zerolog.Nop()), store
}

func adminRequest() audit.Request {
	return audit.Request{
		Principal: &audit.Principal{
			ID:    7,
			Email: "admin@example.com",
			Name:  "Site Admin",
		},
		RemoteAddr: "10.0.0.5",
		UserAgent:  "go-test",
	}
}

func guestRequest() audit.Request {
	return audit.Request{
		RemoteAddr: "203.0.113.9",
		UserAgent:  "go-test",
		SessionID:  "sess-123",
	}
}

// eventSink records published domain events.
type eventSink struct {
	subjects []string
	payloads []any
}

func (e *eventSink) Publish(subject string, payload any) {
	e.subjects = append(e.subjects, subject)
	e.payloads = append(e.payloads, payload)
}

package audit

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/atlastile/cms-go-api/internal/observability"
)

var (
	// ErrInvalidAction indicates an unrecognised action enumerant.
	ErrInvalidAction = errors.New("audit: invalid action type")
	// ErrMissingOldInstance indicates an update without its before snapshot.
	ErrMissingOldInstance = errors.New("audit: old instance is required for update actions")
	// ErrNoInstances indicates a bulk log call with an empty instance list.
	ErrNoInstances = errors.New("audit: at least one instance is required for bulk logging")
)

// Store persists finished records. Persistence failures propagate to the
// caller untouched: a dropped audit record is a caller-visible concern, never
// best-effort telemetry.
type Store interface {
	Create(ctx context.Context, record *Record) error
}

// Writer assembles actor identity, change deltas and request provenance into
// immutable activity log records. One invocation writes exactly one record.
type Writer struct {
	store  Store
	logger zerolog.Logger
}

// NewWriter constructs the audit log writer.
func NewWriter(store Store, logger zerolog.Logger) *Writer {
	return &Writer{
		store:  store,
		logger: logger.With().Str("component", "audit_writer").Logger(),
	}
}

// ChangeOptions tunes a single LogChange invocation.
type ChangeOptions struct {
	// Old is the pre-modification snapshot, mandatory for update actions.
	Old Snapshotter
	// Exclude drops the named fields from snapshots and change detection.
	Exclude []string
	// Plaintext disables sensitive-field masking for this call.
	Plaintext bool
	// Description overrides the auto-generated summary.
	Description string
	// ExtraData is free-form structured context stored on the record.
	ExtraData map[string]any
	// Guest identifies an anonymous caller when the request is unauthenticated.
	Guest *GuestHint
}

// LogChange records one action against an entity instance. Create actions
// snapshot the new state, delete actions the old state, and update actions run
// change detection against opts.Old — an update where nothing changed is
// recorded as a view observation rather than dropped.
func (w *Writer) LogChange(ctx context.Context, req Request, action Action, instance Snapshotter, opts ChangeOptions) (*Record, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	if action == ActionUpdate && opts.Old == nil {
		return nil, ErrMissingOldInstance
	}

	entity := instance.AuditEntity()
	record := w.newRecord(req, action, opts.Guest, opts.ExtraData)
	record.Entity = entity.Type
	record.ComputedEntity = qualifiedOrDefault(entity.Qualified)
	record.EntityID = entity.ID
	record.EntityName = entity.Label
	record.Description = describe(action, entity, opts.Description)

	snapOpts := SnapshotOptions{Exclude: opts.Exclude, Plaintext: opts.Plaintext}

	switch action {
	case ActionCreate:
		record.NewValues = datatypes.JSONMap(Snapshot(instance, snapOpts))
	case ActionDelete:
		record.OldValues = datatypes.JSONMap(Snapshot(instance, snapOpts))
	case ActionUpdate:
		oldValues, newValues, changed := Diff(opts.Old, instance, snapOpts)
		if len(changed) == 0 {
			record.Action = ActionView
			record.Description = fmt.Sprintf("No changes detected for %s: %s", entity.Type, entity.Label)
			break
		}
		record.OldValues = datatypes.JSONMap(oldValues)
		record.NewValues = datatypes.JSONMap(newValues)
		record.ChangedFields = datatypes.NewJSONSlice(changed)
		if opts.Description == "" {
			record.Description = fmt.Sprintf("Updated %s: %s (%d fields modified)", entity.Type, entity.Label, len(changed))
		}
	default:
		// Descriptive metadata only; no value snapshots.
	}

	return w.persist(ctx, record)
}

// GuestEvent describes an activity without a backing entity instance, such as
// a public page view, form submission or file download.
type GuestEvent struct {
	Entity      string
	EntityID    *int64
	EntityName  string
	Description string
	ExtraData   map[string]any
	Hint        *GuestHint
}

// LogGuest records an instance-less activity attributed through the guest
// fallback chain (or to the authenticated principal when one is present).
func (w *Writer) LogGuest(ctx context.Context, req Request, action Action, event GuestEvent) (*Record, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	record := w.newRecord(req, action, event.Hint, event.ExtraData)
	record.Entity = event.Entity
	record.EntityID = event.EntityID
	record.EntityName = event.EntityName
	record.Description = event.Description
	if record.Description == "" {
		record.Description = fmt.Sprintf("%s %s: %s", action.Verb(), event.Entity, event.EntityName)
	}

	return w.persist(ctx, record)
}

// BulkSummary carries aggregate counts for a batch operation.
type BulkSummary struct {
	OperationName string
	SuccessCount  int
	ErrorCount    int
	ExtraData     map[string]any
}

// LogBulk writes one summary record for a homogeneous batch of instances.
// Entity information comes from the first element; per-instance identifiers
// and success statistics land in extra_data.
func (w *Writer) LogBulk(ctx context.Context, req Request, action Action, instances []Snapshotter, summary BulkSummary) (*Record, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}

	entity := instances[0].AuditEntity()
	total := summary.SuccessCount + summary.ErrorCount

	entityIDs := make([]any, 0, len(instances))
	for _, instance := range instances {
		if id := instance.AuditEntity().ID; id != nil {
			entityIDs = append(entityIDs, *id)
		}
	}

	extra := map[string]any{
		"bulk_operation":  true,
		"operation_name":  summary.OperationName,
		"total_processed": total,
		"success_count":   summary.SuccessCount,
		"error_count":     summary.ErrorCount,
		"success_rate":    successRate(summary.SuccessCount, total),
		"entity_ids":      entityIDs,
	}
	for key, value := range summary.ExtraData {
		extra[key] = value
	}

	record := w.newRecord(req, action, nil, extra)
	record.Entity = entity.Type
	record.ComputedEntity = qualifiedOrDefault(entity.Qualified)
	record.EntityName = fmt.Sprintf("Bulk %s operation", entity.Type)
	record.Description = fmt.Sprintf(
		"Bulk %s operation: %s (%d successful, %d failed)",
		action, summary.OperationName, summary.SuccessCount, summary.ErrorCount,
	)

	return w.persist(ctx, record)
}

func (w *Writer) newRecord(req Request, action Action, hint *GuestHint, extra map[string]any) *Record {
	actor := ResolveActor(req, hint)

	extraData := datatypes.JSONMap{}
	for key, value := range extra {
		extraData[key] = value
	}

	record := &Record{
		Action:          action,
		ComputedEntity:  DefaultEntity,
		UserID:          actor.UserID,
		ActorType:       actor.Type,
		ActorIdentifier: actor.Identifier,
		ActorName:       actor.Name,
		IPAddress:       req.ClientIP(),
		UserAgent:       req.UserAgent,
		ExtraData:       extraData,
	}
	if actor.Metadata != nil {
		record.ActorMetadata = datatypes.JSONMap(actor.Metadata)
	}
	return record
}

func (w *Writer) persist(ctx context.Context, record *Record) (*Record, error) {
	if err := w.store.Create(ctx, record); err != nil {
		w.logger.Error().Err(err).
			Str("action", record.Action.String()).
			Str("entity", record.Entity).
			Msg("failed to persist activity log")
		return nil, err
	}
	observability.ActivityLogsWritten().WithLabelValues(record.Action.String(), string(record.ActorType)).Inc()
	return record, nil
}

func describe(action Action, entity Entity, override string) string {
	if override != "" {
		return override
	}
	return fmt.Sprintf("%s %s: %s", action.Verb(), entity.Type, entity.Label)
}

func qualifiedOrDefault(qualified string) string {
	if qualified == "" {
		return DefaultEntity
	}
	return qualified
}

func successRate(successCount, total int) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(successCount) / float64(total) * 100
	return math.Round(rate*100) / 100
}

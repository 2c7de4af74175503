package audit

// MaskToken replaces sensitive field values in persisted snapshots.
const MaskToken = "***"

// DefaultEntity is the sentinel used when the fully-qualified entity type is
// unknown.
const DefaultEntity = "-"

// Entity identifies the business object an activity log record refers to.
type Entity struct {
	// Type is the short logical name, e.g. "product".
	Type string
	// Qualified is the fully-qualified type name, e.g. "models.Product".
	Qualified string
	// ID is the numeric identifier, nil for unsaved instances.
	ID *int64
	// Label is the human-readable representation at the time of logging.
	Label string
}

// Field is one entry of an entity's declared audit schema. Schemas are static
// per entity type: bookkeeping fields are simply not declared, and secret
// fields are flagged Sensitive so their values are masked rather than dropped.
type Field struct {
	Name      string
	Value     any
	Sensitive bool
}

// Snapshotter is implemented by entities that participate in audit logging.
type Snapshotter interface {
	AuditEntity() Entity
	AuditFields() []Field
}

// SnapshotOptions tunes field serialization for snapshots and diffs.
type SnapshotOptions struct {
	// Exclude drops the named fields entirely.
	Exclude []string
	// Plaintext disables sensitive-field masking. Masking is on unless the
	// caller explicitly opts out.
	Plaintext bool
}

func (o SnapshotOptions) excluded(name string) bool {
	for _, field := range o.Exclude {
		if field == name {
			return true
		}
	}
	return false
}

func (o SnapshotOptions) render(f Field) any {
	if f.Sensitive && !o.Plaintext {
		return MaskToken
	}
	return f.Value
}

// Snapshot serializes an entity's declared fields to a flat map, applying
// exclusions and sensitive-field masking.
func Snapshot(instance Snapshotter, opts SnapshotOptions) map[string]any {
	fields := instance.AuditFields()
	values := make(map[string]any, len(fields))
	for _, field := range fields {
		if opts.excluded(field.Name) {
			continue
		}
		values[field.Name] = opts.render(field)
	}
	return values
}

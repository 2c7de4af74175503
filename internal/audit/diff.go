package audit

import "reflect"

// Diff compares two versions of an entity field by field and returns the
// before/after values restricted to the fields that actually changed, plus the
// changed field names in schema declaration order.
//
// Comparison runs against raw field values so that edits to sensitive fields
// are still detected; the returned maps carry masked values per opts. Values
// that cannot be meaningfully compared count as changed: the audit trail fails
// toward over-reporting rather than silently dropping a change.
func Diff(oldInstance, newInstance Snapshotter, opts SnapshotOptions) (oldValues, newValues map[string]any, changed []string) {
	oldFields := indexFields(oldInstance.AuditFields())

	oldValues = map[string]any{}
	newValues = map[string]any{}

	for _, field := range newInstance.AuditFields() {
		if opts.excluded(field.Name) {
			continue
		}
		before, present := oldFields[field.Name]
		if present && equalValues(before.Value, field.Value) {
			continue
		}
		changed = append(changed, field.Name)
		if present {
			oldValues[field.Name] = opts.render(before)
		}
		newValues[field.Name] = opts.render(field)
	}

	if len(changed) == 0 {
		return nil, nil, nil
	}
	return oldValues, newValues, changed
}

func indexFields(fields []Field) map[string]Field {
	indexed := make(map[string]Field, len(fields))
	for _, field := range fields {
		indexed[field.Name] = field
	}
	return indexed
}

// equalValues compares by value, not identity. Collections and nested structs
// compare element-wise via reflect.DeepEqual.
func equalValues(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	return reflect.DeepEqual(a, b)
}

package store

import (
	"errors"

	"attendance-register-go/models"
)

// ErrSubjectCapacity is returned when the registry already holds
// models.MaxSubjects names.
var ErrSubjectCapacity = errors.New("maximum number of subjects reached")

// SubjectRegistry maps subject names to stable slot indexes into each
// student's attendance grid. Slots are assigned in first-seen order and
// never reused or removed; name matching is case-sensitive.
type SubjectRegistry struct {
	names []string
}

// NewSubjectRegistry creates an empty registry.
func NewSubjectRegistry() *SubjectRegistry {
	return &SubjectRegistry{names: make([]string, 0, models.MaxSubjects)}
}

// Resolve returns the slot for name, registering it if unseen. Every lookup
// is therefore a potential write: asking for a report on a brand-new
// subject still claims a slot. Fails with ErrSubjectCapacity once all slots
// are taken, leaving the registry unchanged. Names longer than
// models.MaxNameLen are clipped before matching.
func (r *SubjectRegistry) Resolve(name string) (int, error) {
	if len(name) > models.MaxNameLen {
		name = name[:models.MaxNameLen]
	}
	for i, n := range r.names {
		if n == name {
			return i, nil
		}
	}
	if len(r.names) >= models.MaxSubjects {
		return -1, ErrSubjectCapacity
	}
	r.names = append(r.names, name)
	return len(r.names) - 1, nil
}

// Names returns a copy of the registered subject names in slot order.
func (r *SubjectRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Count returns the number of registered subjects.
func (r *SubjectRegistry) Count() int {
	return len(r.names)
}

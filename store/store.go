package store

import (
	"errors"

	"attendance-register-go/models"
)

var (
	// ErrStudentNotFound is returned when a lookup or delete misses.
	ErrStudentNotFound = errors.New("student not found")
	// ErrInvalidDay is returned for days outside the 1..31 range.
	ErrInvalidDay = errors.New("day must be between 1 and 31")
	// ErrInvalidSubject is returned for subject slots outside the grid.
	ErrInvalidSubject = errors.New("subject slot out of range")
)

// StopMarking is the sentinel suffix that ends a marking stream.
const StopMarking = -1

// Store is the in-memory student register: a fixed-size hash table keyed by
// student ID, chained on collision. Each bucket keeps its records
// newest-first; that order is observable through suffix search and report
// rows, so it is part of the contract.
//
// Store is not safe for concurrent use. Callers that serve multiple
// goroutines must put it behind a single lock.
type Store struct {
	buckets  [models.TableSize][]*models.Student
	Subjects *SubjectRegistry
}

// New creates an empty register with a fresh subject registry.
func New() *Store {
	return &Store{Subjects: NewSubjectRegistry()}
}

// bucketFor selects the home bucket for an ID. Negative IDs are folded into
// range rather than rejected; the register never validates ID ranges.
func bucketFor(id int) int {
	return ((id % models.TableSize) + models.TableSize) % models.TableSize
}

// suffixOf reduces an ID to the last four decimal digits used by lookups.
func suffixOf(id int) int {
	return id % models.SuffixMod
}

// --- Record Operations ---

// Insert adds a new record with a zeroed attendance grid, prepending it to
// its bucket chain. Duplicate IDs are not rejected here; callers that want
// unique IDs check SearchBySuffix first, the way the boundary surfaces do.
func (s *Store) Insert(id int, name string) *models.Student {
	if len(name) > models.MaxNameLen {
		name = name[:models.MaxNameLen]
	}
	st := &models.Student{ID: id, Name: name}
	b := bucketFor(id)
	s.buckets[b] = append([]*models.Student{st}, s.buckets[b]...)
	return st
}

// SearchBySuffix finds the first student whose ID ends in the same four
// decimal digits as id, scanning every bucket in index order and each chain
// newest-first. The query may be a full ID or a bare suffix. Two students
// sharing a suffix are ambiguous: whichever the traversal reaches first
// wins. Returns nil when nothing matches.
func (s *Store) SearchBySuffix(id int) *models.Student {
	want := suffixOf(id)
	for i := range s.buckets {
		for _, st := range s.buckets[i] {
			if suffixOf(st.ID) == want {
				return st
			}
		}
	}
	return nil
}

// FindByID looks up a student by exact ID, scanning only its home bucket.
// This is the precise twin of SearchBySuffix for callers that cannot
// tolerate suffix collisions.
func (s *Store) FindByID(id int) *models.Student {
	for _, st := range s.buckets[bucketFor(id)] {
		if st.ID == id {
			return st
		}
	}
	return nil
}

// Delete removes the record matching id exactly from its home bucket.
// Unlike SearchBySuffix it never matches on suffix alone, and it removes at
// most one record.
func (s *Store) Delete(id int) error {
	b := bucketFor(id)
	for i, st := range s.buckets[b] {
		if st.ID == id {
			s.buckets[b] = append(s.buckets[b][:i], s.buckets[b][i+1:]...)
			return nil
		}
	}
	return ErrStudentNotFound
}

// --- Attendance Operations ---

// MarkPresent resolves a student by ID suffix and sets their presence cell
// for the given subject slot and calendar day. Marking an already-present
// cell is a no-op; cells are never cleared.
func (s *Store) MarkPresent(suffix, subjectIndex, day int) (*models.Student, error) {
	if subjectIndex < 0 || subjectIndex >= models.MaxSubjects {
		return nil, ErrInvalidSubject
	}
	if day < 1 || day > models.MaxDays {
		return nil, ErrInvalidDay
	}
	st := s.SearchBySuffix(suffix)
	if st == nil {
		return nil, ErrStudentNotFound
	}
	st.Subjects[subjectIndex].Days[day-1] = true
	return st, nil
}

// MarkPresentStream marks students present for (subjectIndex, day), pulling
// ID suffixes from next until it yields StopMarking or reports exhaustion.
// Each suffix is processed independently: a miss is passed to onMiss and the
// stream continues. Marked students are passed to onMark. Either callback
// may be nil. Returns the number of students marked.
func (s *Store) MarkPresentStream(subjectIndex, day int, next func() (int, bool), onMark func(*models.Student), onMiss func(int)) (int, error) {
	if subjectIndex < 0 || subjectIndex >= models.MaxSubjects {
		return 0, ErrInvalidSubject
	}
	if day < 1 || day > models.MaxDays {
		return 0, ErrInvalidDay
	}
	marked := 0
	for {
		suffix, ok := next()
		if !ok || suffix == StopMarking {
			return marked, nil
		}
		st := s.SearchBySuffix(suffix)
		if st == nil {
			if onMiss != nil {
				onMiss(suffix)
			}
			continue
		}
		st.Subjects[subjectIndex].Days[day-1] = true
		marked++
		if onMark != nil {
			onMark(st)
		}
	}
}

// --- Traversal ---

// ForEach visits every student in bucket order, newest-first within each
// bucket. This is the canonical traversal order for reports.
func (s *Store) ForEach(fn func(*models.Student)) {
	for i := range s.buckets {
		for _, st := range s.buckets[i] {
			fn(st)
		}
	}
}

// Count returns the number of records across all buckets.
func (s *Store) Count() int {
	n := 0
	for i := range s.buckets {
		n += len(s.buckets[i])
	}
	return n
}

// Reset drops every record and leaves the store empty and reusable. The
// subject registry keeps its slots, so subject indexes stay stable across a
// reset.
func (s *Store) Reset() {
	for i := range s.buckets {
		s.buckets[i] = nil
	}
}

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance-register-go/models"
	"attendance-register-go/store"
)

func TestInsertAndSuffixSearch(t *testing.T) {
	reg := store.New()
	reg.Insert(1023, "Ana")

	st := reg.SearchBySuffix(1023)
	require.NotNil(t, st)
	assert.Equal(t, 1023, st.ID)
	assert.Equal(t, "Ana", st.Name)

	// A full ID sharing the last four digits resolves to the same record.
	st = reg.SearchBySuffix(991023)
	require.NotNil(t, st)
	assert.Equal(t, 1023, st.ID)

	assert.Nil(t, reg.SearchBySuffix(4711))
}

func TestFindByIDIsExact(t *testing.T) {
	reg := store.New()
	reg.Insert(1023, "Ana")

	require.NotNil(t, reg.FindByID(1023))
	// Suffix match alone is not enough for the exact lookup.
	assert.Nil(t, reg.FindByID(11023))
}

func TestInsertClipsLongNames(t *testing.T) {
	reg := store.New()
	long := ""
	for i := 0; i < 60; i++ {
		long += "x"
	}
	st := reg.Insert(1, long)
	assert.Len(t, st.Name, models.MaxNameLen)
}

func TestFreshStudentIsFullyAbsent(t *testing.T) {
	reg := store.New()
	st := reg.Insert(42, "Bea")

	for subj := 0; subj < models.MaxSubjects; subj++ {
		for day := 0; day < models.MaxDays; day++ {
			if st.Subjects[subj].Days[day] {
				t.Fatalf("fresh student marked present for subject %d day %d", subj, day+1)
			}
		}
	}
}

func TestDeleteRequiresExactID(t *testing.T) {
	reg := store.New()
	reg.Insert(11023, "First")
	reg.Insert(21023, "Second")
	require.Equal(t, 2, reg.Count())

	require.NoError(t, reg.Delete(11023))
	assert.Equal(t, 1, reg.Count())
	assert.Nil(t, reg.FindByID(11023))
	assert.NotNil(t, reg.FindByID(21023))

	// Deleting a missing ID reports not-found and changes nothing, even
	// though 31023 shares a suffix with a stored record.
	err := reg.Delete(31023)
	assert.ErrorIs(t, err, store.ErrStudentNotFound)
	assert.Equal(t, 1, reg.Count())
}

func TestMarkPresentSetsOneCell(t *testing.T) {
	reg := store.New()
	reg.Insert(1023, "Ana")
	idx, err := reg.Subjects.Resolve("Math")
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	st, err := reg.MarkPresent(1023, idx, 5)
	require.NoError(t, err)
	require.Equal(t, 1023, st.ID)

	for subj := 0; subj < models.MaxSubjects; subj++ {
		for day := 0; day < models.MaxDays; day++ {
			want := subj == 0 && day == 4
			if st.Subjects[subj].Days[day] != want {
				t.Fatalf("subject %d day %d: got %v, want %v", subj, day+1, st.Subjects[subj].Days[day], want)
			}
		}
	}
}

func TestMarkPresentIsIdempotent(t *testing.T) {
	reg := store.New()
	reg.Insert(1023, "Ana")
	idx, err := reg.Subjects.Resolve("Math")
	require.NoError(t, err)

	first, err := reg.MarkPresent(1023, idx, 5)
	require.NoError(t, err)
	second, err := reg.MarkPresent(1023, idx, 5)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, second.Subjects[idx].Days[4])
}

func TestMarkPresentValidation(t *testing.T) {
	reg := store.New()
	reg.Insert(1023, "Ana")

	_, err := reg.MarkPresent(1023, 0, 0)
	assert.ErrorIs(t, err, store.ErrInvalidDay)
	_, err = reg.MarkPresent(1023, 0, models.MaxDays+1)
	assert.ErrorIs(t, err, store.ErrInvalidDay)
	_, err = reg.MarkPresent(1023, -1, 5)
	assert.ErrorIs(t, err, store.ErrInvalidSubject)
	_, err = reg.MarkPresent(1023, models.MaxSubjects, 5)
	assert.ErrorIs(t, err, store.ErrInvalidSubject)
	_, err = reg.MarkPresent(9999, 0, 5)
	assert.ErrorIs(t, err, store.ErrStudentNotFound)
}

func TestSuffixAmbiguityFollowsTraversalOrder(t *testing.T) {
	// 11023 and 21023 share both the suffix 1023 and the home bucket, so
	// the winner is whichever sits earlier in the chain. Chains are
	// newest-first, making the outcome deterministic per insertion order.
	reg := store.New()
	reg.Insert(11023, "First")
	reg.Insert(21023, "Second")
	st := reg.SearchBySuffix(1023)
	require.NotNil(t, st)
	assert.Equal(t, 21023, st.ID)

	reversed := store.New()
	reversed.Insert(21023, "Second")
	reversed.Insert(11023, "First")
	st = reversed.SearchBySuffix(1023)
	require.NotNil(t, st)
	assert.Equal(t, 11023, st.ID)
}

func TestMarkPresentStreamStopsAtSentinel(t *testing.T) {
	reg := store.New()
	reg.Insert(1023, "Ana")
	reg.Insert(1024, "Bob")
	idx, err := reg.Subjects.Resolve("Math")
	require.NoError(t, err)

	input := []int{1023, 9999, store.StopMarking, 1024}
	pos := 0
	next := func() (int, bool) {
		if pos >= len(input) {
			return 0, false
		}
		v := input[pos]
		pos++
		return v, true
	}

	var missed []int
	marked, err := reg.MarkPresentStream(idx, 5, next, nil, func(suffix int) {
		missed = append(missed, suffix)
	})
	require.NoError(t, err)

	// One hit, one miss, and nothing processed past the sentinel.
	assert.Equal(t, 1, marked)
	assert.Equal(t, []int{9999}, missed)
	assert.False(t, reg.SearchBySuffix(1024).Subjects[idx].Days[4])
}

func TestMarkPresentStreamValidatesUpfront(t *testing.T) {
	reg := store.New()
	next := func() (int, bool) { return 0, false }

	_, err := reg.MarkPresentStream(0, 0, next, nil, nil)
	assert.ErrorIs(t, err, store.ErrInvalidDay)
	_, err = reg.MarkPresentStream(models.MaxSubjects, 1, next, nil, nil)
	assert.ErrorIs(t, err, store.ErrInvalidSubject)
}

func TestResetKeepsSubjectSlots(t *testing.T) {
	reg := store.New()
	reg.Insert(1, "A")
	reg.Insert(2, "B")
	_, err := reg.Subjects.Resolve("Math")
	require.NoError(t, err)

	reg.Reset()
	assert.Equal(t, 0, reg.Count())
	assert.Equal(t, 1, reg.Subjects.Count())

	// The store stays usable after a reset.
	reg.Insert(3, "C")
	assert.Equal(t, 1, reg.Count())
}

func TestNegativeIDsAreAccepted(t *testing.T) {
	reg := store.New()
	reg.Insert(-7, "Ghost")
	require.NotNil(t, reg.FindByID(-7))
	require.NoError(t, reg.Delete(-7))
	assert.Equal(t, 0, reg.Count())
}

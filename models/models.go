package models

// Capacity limits for the register. The attendance grid and the hash table
// are sized by these at compile time.
const (
	TableSize   = 10    // hash buckets in the student table
	MaxSubjects = 10    // subject slots per student
	MaxDays     = 31    // attendance cells per subject, one per calendar day
	MaxNameLen  = 49    // longest student or subject name kept
	SuffixMod   = 10000 // suffix lookups compare IDs modulo this
)

// AttendanceRecord holds the presence flags for one (student, subject) pair.
// Cell day-1 covers calendar day `day`. A false cell means absent or never
// marked; the register does not distinguish the two.
type AttendanceRecord struct {
	Days [MaxDays]bool `json:"days"`
}

// Student is one register entry. Subjects is indexed by the slot the
// subject registry assigned to each subject name.
type Student struct {
	ID       int                           `json:"id"`
	Name     string                        `json:"name"`
	Subjects [MaxSubjects]AttendanceRecord `json:"subjects"`
}

package store

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"attendance-register-go/models"
)

// ErrNoAttendanceData is returned when a subject has no marks at all, so
// there is no day window to report.
var ErrNoAttendanceData = errors.New("no attendance data available")

const reportRuleWidth = 86

// --- Subject Report ---

// SubjectReport writes the attendance table for one subject to w. The day
// columns span the observed [min,max] day window across ALL students; days
// with no marks outside that window are omitted from every row. Rows follow
// the canonical bucket-then-chain traversal order. Resolving an unseen
// subject name registers it, so generating a report can claim a subject
// slot.
func (s *Store) SubjectReport(w io.Writer, subject string) error {
	idx, err := s.Subjects.Resolve(subject)
	if err != nil {
		return err
	}

	minDay, maxDay := s.observedDayRange(idx)
	if minDay > maxDay {
		return fmt.Errorf("%w for subject %s", ErrNoAttendanceData, subject)
	}

	fmt.Fprintf(w, "%s Attendance Report\n", subject)
	fmt.Fprintf(w, "%-10s %-30s", "ID", "Name")
	for day := minDay; day <= maxDay; day++ {
		fmt.Fprintf(w, " Day%-2d", day)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", reportRuleWidth))

	s.ForEach(func(st *models.Student) {
		fmt.Fprintf(w, "%-10d %-30s", st.ID, st.Name)
		for day := minDay; day <= maxDay; day++ {
			fmt.Fprintf(w, " %-5s", presenceCell(st.Subjects[idx].Days[day-1]))
		}
		fmt.Fprintln(w)
	})
	return nil
}

// GenerateSubjectReportFile writes the subject report to path, creating or
// truncating the file. The handle is released before returning whether or
// not the report succeeds.
func (s *Store) GenerateSubjectReportFile(path, subject string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not open file %s for writing: %w", path, err)
	}
	defer f.Close()
	return s.SubjectReport(f, subject)
}

// observedDayRange scans every record for marks in the given subject slot
// and returns the lowest and highest marked day, 1-based. min > max means
// no student has any mark for the subject.
func (s *Store) observedDayRange(subjectIndex int) (minDay, maxDay int) {
	minDay, maxDay = models.MaxDays+1, 0
	s.ForEach(func(st *models.Student) {
		for d := 0; d < models.MaxDays; d++ {
			if st.Subjects[subjectIndex].Days[d] {
				if d+1 < minDay {
					minDay = d + 1
				}
				if d+1 > maxDay {
					maxDay = d + 1
				}
			}
		}
	})
	return minDay, maxDay
}

func presenceCell(present bool) string {
	if present {
		return "P"
	}
	return "A"
}

// --- Student Report ---

// StudentReport writes the per-subject attendance grid for one student,
// resolved by ID suffix. Unlike the subject report it always covers the
// full 1..MaxDays range, split into three blocks of roughly ten days, one
// row per registered subject.
func (s *Store) StudentReport(w io.Writer, id int) error {
	st := s.SearchBySuffix(id)
	if st == nil {
		return ErrStudentNotFound
	}

	rule := strings.Repeat("=", reportRuleWidth)
	fmt.Fprintf(w, "\nAttendance for %s (ID: %d):\n", st.Name, st.ID)
	fmt.Fprintln(w, rule)

	names := s.Subjects.Names()
	for part := 0; part < 3; part++ {
		startDay := part*10 + 1
		endDay := startDay + 9
		if part == 2 {
			endDay = models.MaxDays
		}

		fmt.Fprintf(w, "| %-20s", "Subject")
		for day := startDay; day <= endDay; day++ {
			fmt.Fprintf(w, "| Day%-2d ", day)
		}
		fmt.Fprintln(w, "|")
		fmt.Fprintln(w, rule)

		for i, name := range names {
			fmt.Fprintf(w, "| %-20s", name)
			for day := startDay; day <= endDay; day++ {
				fmt.Fprintf(w, "| %-5s ", presenceCell(st.Subjects[i].Days[day-1]))
			}
			fmt.Fprintln(w, "|")
		}
		fmt.Fprintln(w, rule)
	}
	return nil
}

// --- Excel Export ---

// ExportSubjectReportExcel renders the same table as SubjectReport into an
// .xlsx workbook written to w: title row, header row, then one row per
// student with a P/A cell for each day in the observed window.
func (s *Store) ExportSubjectReportExcel(w io.Writer, subject string) error {
	idx, err := s.Subjects.Resolve(subject)
	if err != nil {
		return err
	}

	minDay, maxDay := s.observedDayRange(idx)
	if minDay > maxDay {
		return fmt.Errorf("%w for subject %s", ErrNoAttendanceData, subject)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()
	sheet := f.GetSheetName(0)

	if err := f.SetCellValue(sheet, "A1", subject+" Attendance Report"); err != nil {
		return fmt.Errorf("failed to write excel report: %w", err)
	}

	setCell := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}

	if err := setCell(1, 2, "ID"); err != nil {
		return err
	}
	if err := setCell(2, 2, "Name"); err != nil {
		return err
	}
	for day := minDay; day <= maxDay; day++ {
		if err := setCell(3+day-minDay, 2, fmt.Sprintf("Day%d", day)); err != nil {
			return err
		}
	}

	row := 3
	var cellErr error
	s.ForEach(func(st *models.Student) {
		if cellErr != nil {
			return
		}
		if cellErr = setCell(1, row, st.ID); cellErr != nil {
			return
		}
		if cellErr = setCell(2, row, st.Name); cellErr != nil {
			return
		}
		for day := minDay; day <= maxDay; day++ {
			if cellErr = setCell(3+day-minDay, row, presenceCell(st.Subjects[idx].Days[day-1])); cellErr != nil {
				return
			}
		}
		row++
	})
	if cellErr != nil {
		return fmt.Errorf("failed to write excel report: %w", cellErr)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write excel report: %w", err)
	}
	return nil
}

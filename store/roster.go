package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"attendance-register-go/models"
)

// --- Text Roster ---

// LoadRoster reads "<id>,<name>" lines from r and inserts one student per
// well-formed line. Commas inside the name are kept; the name is clipped to
// models.MaxNameLen. Malformed lines are skipped with a warning and do not
// abort the load, so everything parsed before a bad line stays inserted.
// Returns the number of students inserted.
func (s *Store) LoadRoster(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	count := 0
	for sc.Scan() {
		line := sc.Text()
		id, name, ok := parseRosterLine(line)
		if !ok {
			log.Printf("Warning: skipping invalid roster line: %s", line)
			continue
		}
		s.Insert(id, name)
		count++
	}
	if err := sc.Err(); err != nil {
		return count, fmt.Errorf("failed to read roster: %w", err)
	}
	return count, nil
}

// LoadRosterFile opens path and loads it via LoadRoster. The file handle is
// released before returning whether or not the load succeeds.
func (s *Store) LoadRosterFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open roster file %s: %w", path, err)
	}
	defer f.Close()
	return s.LoadRoster(f)
}

// parseRosterLine splits a roster line at the first comma. A line is
// malformed when the comma is missing, the ID is not an integer, or the
// name is empty.
func parseRosterLine(line string) (int, string, bool) {
	idPart, name, found := strings.Cut(line, ",")
	if !found || name == "" {
		return 0, "", false
	}
	id, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil {
		return 0, "", false
	}
	if len(name) > models.MaxNameLen {
		name = name[:models.MaxNameLen]
	}
	return id, name, true
}

// --- Excel Roster ---

// ImportRosterFromExcel reads an .xlsx roster stream and inserts one student
// per data row. Column A is the numeric student ID and column B the name;
// the first row is assumed to be a header. Rows missing either value, or
// with a non-numeric ID, are skipped with a warning. Returns the number of
// students inserted.
func (s *Store) ImportRosterFromExcel(r io.Reader) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return 0, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	count := 0
	for i, row := range rows {
		if i == 0 {
			continue // header row
		}

		var idCell, name string
		if len(row) > 0 {
			idCell = row[0]
		}
		if len(row) > 1 {
			name = row[1]
		}

		id, err := strconv.Atoi(strings.TrimSpace(idCell))
		if err != nil || name == "" {
			log.Printf("Skipping row %d: need a numeric ID and a name (ID: %q, Name: %q)", i+1, idCell, name)
			continue
		}

		s.Insert(id, name)
		count++
	}
	return count, nil
}

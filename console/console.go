// Package console implements the interactive menu surface of the register.
// It is a thin wrapper over the store's public operations, driven by an
// injected reader and writer so it can be exercised without a terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"attendance-register-go/models"
	"attendance-register-go/store"
)

// ANSI escape codes, the palette the register has always printed with.
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

// Console drives the interactive attendance menu over one register.
type Console struct {
	register *store.Store
	in       *bufio.Scanner
	out      io.Writer
}

// New creates a console bound to the given register and I/O streams.
func New(register *store.Store, in io.Reader, out io.Writer) *Console {
	return &Console{
		register: register,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run loops over the menu until the user exits or input runs out. Exiting
// tears the register down.
func (c *Console) Run() {
	for {
		c.printMenu()
		line, ok := c.readLine(yellow + "Enter your choice: " + reset)
		if !ok {
			return
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			c.errorf("Error: Invalid input. Please enter a number.")
			continue
		}

		switch choice {
		case 1:
			c.loadRoster()
		case 2:
			c.generateReport()
		case 3:
			c.searchStudent()
		case 4:
			c.deleteStudent()
		case 5:
			c.insertStudent()
		case 6:
			c.markAttendance()
		case 7:
			c.viewAttendance()
		case 8:
			c.register.Reset()
			c.successf("Exiting...")
			return
		default:
			c.errorf("Invalid choice. Try again.")
		}
	}
}

func (c *Console) printMenu() {
	fmt.Fprintf(c.out, "\n%s%sAttendance Management System%s\n", bold, cyan, reset)
	options := []string{
		"1. Load Students from File",
		"2. Generate Attendance Report",
		"3. Search Student by ID",
		"4. Delete Student by ID",
		"5. Insert New Student",
		"6. Mark Attendance",
		"7. View Attendance",
		"8. Exit",
	}
	for _, opt := range options {
		fmt.Fprintf(c.out, "%s%s%s\n", blue, opt, reset)
	}
}

// --- Menu Actions ---

func (c *Console) loadRoster() {
	path, ok := c.readLine(yellow + "Enter input file name: " + reset)
	if !ok {
		return
	}
	count, err := c.register.LoadRosterFile(path)
	if err != nil {
		c.errorf("Error: %v", err)
		return
	}
	c.successf("Loaded %d students from %s", count, path)
}

func (c *Console) generateReport() {
	subject, ok := c.readLine(yellow + "Enter the subject name: " + reset)
	if !ok {
		return
	}
	path, ok := c.readLine(yellow + "Enter report file name: " + reset)
	if !ok {
		return
	}
	if err := c.register.GenerateSubjectReportFile(path, subject); err != nil {
		if errors.Is(err, store.ErrNoAttendanceData) {
			c.errorf("No attendance data available for subject %s.", subject)
		} else {
			c.errorf("Error: %v", err)
		}
		return
	}
	c.successf("Attendance report for %s generated successfully in %s", subject, path)
}

func (c *Console) searchStudent() {
	id, ok := c.readInt(yellow + "Enter student ID to search: " + reset)
	if !ok {
		return
	}
	st := c.register.SearchBySuffix(id)
	if st == nil {
		c.errorf("Student with ID %d not found.", id)
		return
	}
	c.successf("Student found:")
	c.successf("ID: %d", st.ID)
	c.successf("Name: %s", st.Name)
}

func (c *Console) deleteStudent() {
	id, ok := c.readInt(yellow + "Enter student ID to delete: " + reset)
	if !ok {
		return
	}
	if err := c.register.Delete(id); err != nil {
		c.errorf("Student with ID %d not found.", id)
		return
	}
	c.successf("Student with ID %d deleted successfully.", id)
}

func (c *Console) insertStudent() {
	id, ok := c.readInt(yellow + "Enter student ID: " + reset)
	if !ok {
		return
	}
	name, ok := c.readLine(yellow + "Enter student name: " + reset)
	if !ok || name == "" {
		c.errorf("Error: Invalid input for name.")
		return
	}
	// Duplicate check uses the same suffix lookup as search, so an ID that
	// shares its last four digits with an existing record is rejected too.
	if c.register.SearchBySuffix(id) != nil {
		c.errorf("Error: Student with ID already exists.")
		return
	}
	c.register.Insert(id, name)
	c.successf("Student added successfully.")
}

func (c *Console) markAttendance() {
	subject, ok := c.readLine("Enter the subject name: ")
	if !ok {
		return
	}
	subjectIndex, err := c.register.Subjects.Resolve(subject)
	if err != nil {
		c.errorf("Error: %v", err)
		return
	}

	day, ok := c.readInt(fmt.Sprintf("Enter the day of the month (1-%d): ", models.MaxDays))
	if !ok || day < 1 || day > models.MaxDays {
		c.errorf("Error: Invalid day.")
		return
	}

	prompt := fmt.Sprintf(
		"Enter last 4 digits of student ID to mark attendance for %s on day %d (or -1 to stop): ",
		subject, day)

	next := func() (int, bool) {
		return c.readInt(prompt)
	}
	onMark := func(st *models.Student) {
		c.successf("Marked %s (ID: %d) as present for %s on day %d.", st.Name, st.ID, subject, day)
	}
	onMiss := func(suffix int) {
		c.errorf("Student with last 4 digits of ID %d not found.", suffix)
	}

	if _, err := c.register.MarkPresentStream(subjectIndex, day, next, onMark, onMiss); err != nil {
		c.errorf("Error: %v", err)
	}
}

func (c *Console) viewAttendance() {
	id, ok := c.readInt("Enter student ID to view attendance: ")
	if !ok {
		return
	}
	if err := c.register.StudentReport(c.out, id); err != nil {
		c.errorf("Student with ID %d not found.", id)
	}
}

// --- Input Helpers ---

// readLine prints prompt and returns the next input line, trimmed. ok is
// false when input is exhausted.
func (c *Console) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// readInt reads one line and parses it as an integer. Non-numeric input
// ends the read with ok=false, which callers treat the same as exhausted
// input (matching the old scanf-driven behavior).
func (c *Console) readInt(prompt string) (int, bool) {
	line, ok := c.readLine(prompt)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		c.errorf("Error: Invalid input for ID.")
		return 0, false
	}
	return v, true
}

func (c *Console) successf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, green+format+reset+"\n", args...)
}

func (c *Console) errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, red+format+reset+"\n", args...)
}

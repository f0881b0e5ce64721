package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"attendance-register-go/store"
)

// APIHandler holds the dependencies for API handlers: the register and the
// lock that serializes access to it. The register itself is single-threaded,
// and gin runs handlers concurrently, so every route takes the lock for the
// duration of the operation.
type APIHandler struct {
	mu       sync.Mutex
	Register *store.Store
}

// NewAPIHandler creates a new APIHandler around an existing register.
func NewAPIHandler(register *store.Store) *APIHandler {
	return &APIHandler{Register: register}
}

// --- Student Handlers ---

type addStudentRequest struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
}

// AddStudent handles POST /api/students. IDs that collide with an existing
// record's four-digit suffix are rejected, matching the duplicate check the
// interactive surface has always done before inserting.
func (h *APIHandler) AddStudent(c *gin.Context) {
	var req addStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.ID == nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student ID and Name are required"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Register.SearchBySuffix(*req.ID) != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Student with ID already exists"})
		return
	}

	st := h.Register.Insert(*req.ID, req.Name)
	c.JSON(http.StatusCreated, gin.H{"id": st.ID, "name": st.Name})
}

// SearchStudent handles GET /api/students/:id. The lookup matches on the
// last four decimal digits of the ID, so a bare suffix works too.
func (h *APIHandler) SearchStudent(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	st := h.Register.SearchBySuffix(id)
	if st == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": st.ID, "name": st.Name})
}

// DeleteStudent handles DELETE /api/students/:id. Unlike search, deletion
// requires an exact ID match.
func (h *APIHandler) DeleteStudent(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Register.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted", "id": id})
}

// StudentAttendance handles GET /api/students/:id/attendance, returning the
// plain-text per-subject grid for the student.
func (h *APIHandler) StudentAttendance(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var buf bytes.Buffer
	if err := h.Register.StudentReport(&buf, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	c.String(http.StatusOK, buf.String())
}

// --- Attendance Handlers ---

type markAttendanceRequest struct {
	Subject  string `json:"subject"`
	Day      int    `json:"day"`
	Suffixes []int  `json:"suffixes"`
}

// MarkAttendance handles POST /api/attendance/mark. Each suffix in the
// request is processed independently; unknown suffixes are reported back
// without failing the rest of the batch.
func (h *APIHandler) MarkAttendance(c *gin.Context) {
	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Subject == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject is required"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	subjectIndex, err := h.Register.Subjects.Resolve(req.Subject)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	pos := 0
	next := func() (int, bool) {
		if pos >= len(req.Suffixes) {
			return 0, false
		}
		suffix := req.Suffixes[pos]
		pos++
		return suffix, true
	}

	missed := make([]int, 0)
	marked, err := h.Register.MarkPresentStream(subjectIndex, req.Day, next, nil, func(suffix int) {
		missed = append(missed, suffix)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject": req.Subject,
		"day":     req.Day,
		"marked":  marked,
		"missed":  missed,
	})
}

// GetSubjects handles GET /api/subjects.
func (h *APIHandler) GetSubjects(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"subjects": h.Register.Subjects.Names()})
}

// --- Report Handlers ---

// SubjectReport handles GET /api/reports/:subject, returning the plain-text
// attendance table for the subject.
func (h *APIHandler) SubjectReport(c *gin.Context) {
	subject := c.Param("subject")

	h.mu.Lock()
	defer h.mu.Unlock()

	var buf bytes.Buffer
	if err := h.Register.SubjectReport(&buf, subject); err != nil {
		reportError(c, subject, err)
		return
	}
	c.String(http.StatusOK, buf.String())
}

// SubjectReportExcel handles GET /api/reports/:subject/xlsx, returning the
// same table as an .xlsx workbook.
func (h *APIHandler) SubjectReportExcel(c *gin.Context) {
	subject := c.Param("subject")

	h.mu.Lock()
	defer h.mu.Unlock()

	var buf bytes.Buffer
	if err := h.Register.ExportSubjectReportExcel(&buf, subject); err != nil {
		reportError(c, subject, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+subject+`_attendance.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func reportError(c *gin.Context, subject string, err error) {
	switch {
	case errors.Is(err, store.ErrNoAttendanceData):
		c.JSON(http.StatusNotFound, gin.H{"error": "No attendance data available for subject " + subject})
	case errors.Is(err, store.ErrSubjectCapacity):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Error generating report for subject %s: %v", subject, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
	}
}

// --- Import Handlers ---

// ImportStudents handles POST /api/import/students, accepting an .xlsx
// roster as multipart form data under the "file" field.
func (h *APIHandler) ImportStudents(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("Error getting form file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	log.Printf("Received roster upload: %s", header.Filename)

	h.mu.Lock()
	defer h.mu.Unlock()

	count, err := h.Register.ImportRosterFromExcel(file)
	if err != nil {
		log.Printf("Error importing roster from file %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import students: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Import successful", "importedCount": count})
}

// LoadRoster handles POST /api/load, accepting the line-oriented
// "<id>,<name>" roster format as the raw request body. Malformed lines are
// skipped, so the response reports how many records were actually loaded.
func (h *APIHandler) LoadRoster(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	count, err := h.Register.LoadRoster(c.Request.Body)
	if err != nil {
		log.Printf("Error loading roster from request body: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load roster", "loadedCount": count})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Roster loaded", "loadedCount": count})
}

// --- Ping Handler ---

// PingHandler handles GET /api/ping.
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}

// intParam parses an integer route parameter, writing a 400 response on
// failure.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + ": must be an integer"})
		return 0, false
	}
	return v, true
}

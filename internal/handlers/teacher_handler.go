package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/services"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/utils"
)

// TeacherHandler serves subject and session management plus per-subject
// reporting for the teacher who owns the subject.
type TeacherHandler struct {
	BaseHandler
	subject services.SubjectService
	report  services.ReportService
}

func NewTeacherHandler(subject services.SubjectService, report services.ReportService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler: NewBaseHandler(logger),
		subject:     subject,
		report:      report,
	}
}

func (h *TeacherHandler) CreateSubject(c *gin.Context) {
	var req services.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	// A teacher can only create subjects under their own ID.
	if req.TeacherID != callerLinkedID(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: "teacher_id does not match the authenticated teacher",
		})
		return
	}

	h.LogRequest(c, "Creating subject", "code", req.Code, "teacher_id", req.TeacherID)

	subject, err := h.subject.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subject)
}

func (h *TeacherHandler) CreateSession(c *gin.Context) {
	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating session", "subject_id", req.SubjectID, "class_date", req.ClassDate)

	session, err := h.subject.CreateSession(c.Request.Context(), &req, callerLinkedID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *TeacherHandler) ListSubjects(c *gin.Context) {
	teacherID := c.Param("teacher_id")
	if teacherID != callerLinkedID(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: "cannot list another teacher's subjects",
		})
		return
	}

	h.LogRequest(c, "Listing subjects", "teacher_id", teacherID)

	subjects, err := h.subject.ListSubjects(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}

func (h *TeacherHandler) ListSessions(c *gin.Context) {
	subjectID, ok := h.subjectIDParam(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Listing sessions", "subject_id", subjectID)

	sessions, err := h.subject.ListSessions(c.Request.Context(), subjectID, callerLinkedID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// SubjectAttendance returns the raw attendance rows of a subject.
func (h *TeacherHandler) SubjectAttendance(c *gin.Context) {
	subjectID, ok := h.subjectIDParam(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting subject attendance", "subject_id", subjectID)

	records, err := h.report.SubjectRecords(c.Request.Context(), subjectID, callerLinkedID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// StudentAttendance returns one student's percentage within a subject.
func (h *TeacherHandler) StudentAttendance(c *gin.Context) {
	subjectID, ok := h.subjectIDParam(c)
	if !ok {
		return
	}
	studentID := c.Param("student_id")

	h.LogRequest(c, "Getting student attendance in subject",
		"subject_id", subjectID,
		"student_id", studentID)

	row, err := h.report.StudentInSubject(c.Request.Context(), subjectID, studentID, callerLinkedID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// AttendanceSummary returns per-student percentages for a subject.
func (h *TeacherHandler) AttendanceSummary(c *gin.Context) {
	subjectID, ok := h.subjectIDParam(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting subject attendance summary", "subject_id", subjectID)

	summary, err := h.report.SubjectSummary(c.Request.Context(), subjectID, callerLinkedID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *TeacherHandler) subjectIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("subject_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid subject ID",
			Details: "subject_id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

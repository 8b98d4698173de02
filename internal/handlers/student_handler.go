package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/services"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/utils"
)

// StudentHandler serves QR scan uploads and a student's own reports.
type StudentHandler struct {
	BaseHandler
	attendance services.AttendanceService
	report     services.ReportService
}

func NewStudentHandler(attendance services.AttendanceService, report services.ReportService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		attendance:  attendance,
		report:      report,
	}
}

// MarkAttendance accepts a multipart upload with the scanned QR image. The
// student identity comes from the token, never from the form.
func (h *StudentHandler) MarkAttendance(c *gin.Context) {
	studentID := callerLinkedID(c)
	if studentID == "" {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: "account is not linked to a student",
		})
		return
	}

	file, _, err := c.Request.FormFile("qr_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request",
			Details: "multipart field 'qr_image' is required",
		})
		return
	}
	defer file.Close()

	h.LogRequest(c, "Marking attendance", "student_id", studentID)

	resp, err := h.attendance.MarkAttendance(c.Request.Context(), studentID, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	// A repeat scan is not an error: 200 with a message instead of 201.
	if resp.AlreadyMarked {
		c.JSON(http.StatusOK, gin.H{
			"message":      "Attendance already marked",
			"subject_code": resp.SubjectCode,
			"attendance":   resp.Attendance,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Attendance marked",
		"subject_code": resp.SubjectCode,
		"attendance":   resp.Attendance,
	})
}

// AttendanceOverall returns the caller's per-subject percentages.
func (h *StudentHandler) AttendanceOverall(c *gin.Context) {
	studentID, ok := h.ownStudentID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting overall attendance", "student_id", studentID)

	summary, err := h.report.StudentOverall(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// AttendanceSubject returns the caller's percentage in one subject.
func (h *StudentHandler) AttendanceSubject(c *gin.Context) {
	studentID, ok := h.ownStudentID(c)
	if !ok {
		return
	}
	subjectCode := c.Param("subject_code")

	h.LogRequest(c, "Getting subject attendance",
		"student_id", studentID,
		"subject_code", subjectCode)

	row, err := h.report.StudentSubject(c.Request.Context(), studentID, subjectCode)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// ownStudentID resolves the :student_id param and rejects queries about
// anyone but the authenticated student.
func (h *StudentHandler) ownStudentID(c *gin.Context) (string, bool) {
	studentID := c.Param("student_id")
	if studentID != callerLinkedID(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: "cannot view another student's attendance",
		})
		return "", false
	}
	return studentID, true
}

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/services"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/utils"
)

// AdminHandler serves registration and campus-wide reporting.
type AdminHandler struct {
	BaseHandler
	registration services.RegistrationService
	report       services.ReportService
}

func NewAdminHandler(registration services.RegistrationService, report services.ReportService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  NewBaseHandler(logger),
		registration: registration,
		report:       report,
	}
}

func (h *AdminHandler) AddTeacher(c *gin.Context) {
	var req services.RegisterTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering teacher", "teacher_id", req.TeacherID)

	teacher, err := h.registration.RegisterTeacher(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, teacher)
}

func (h *AdminHandler) AddStudent(c *gin.Context) {
	var req services.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering student", "student_id", req.StudentID)

	student, err := h.registration.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *AdminHandler) ListTeachers(c *gin.Context) {
	h.LogRequest(c, "Listing teachers")

	teachers, err := h.registration.ListTeachers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teachers)
}

func (h *AdminHandler) ListStudents(c *gin.Context) {
	h.LogRequest(c, "Listing students")

	students, err := h.registration.ListStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// StudentAttendance returns one student's per-subject percentages.
func (h *AdminHandler) StudentAttendance(c *gin.Context) {
	studentID := c.Param("student_id")

	h.LogRequest(c, "Getting student attendance", "student_id", studentID)

	summary, err := h.report.StudentOverall(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// AllAttendance returns the campus-wide grouped summary.
func (h *AdminHandler) AllAttendance(c *gin.Context) {
	h.LogRequest(c, "Getting global attendance summary")

	summary, err := h.report.GlobalSummary(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportAllAttendance streams the global summary as an xlsx download.
func (h *AdminHandler) ExportAllAttendance(c *gin.Context) {
	h.LogRequest(c, "Exporting global attendance summary")

	data, err := h.report.ExportGlobalSummary(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance-summary-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

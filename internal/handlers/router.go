package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/config"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/services"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	adminHandler   *AdminHandler
	teacherHandler *TeacherHandler
	studentHandler *StudentHandler
	authMiddleware *JWTAuthMiddleware
	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwtConfig config.JWTConfig,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		adminHandler:   NewAdminHandler(serviceManager.Registration(), serviceManager.Report(), logger),
		teacherHandler: NewTeacherHandler(serviceManager.Subject(), serviceManager.Report(), logger),
		studentHandler: NewStudentHandler(serviceManager.Attendance(), serviceManager.Report(), logger),
		authMiddleware: NewJWTAuthMiddleware(jwtConfig, logger),
		serviceManager: serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")

	// Login endpoints are the only unauthenticated API routes.
	v1.POST("/admin/login", hm.authHandler.LoginAdmin)
	v1.POST("/teacher/login", hm.authHandler.LoginTeacher)
	v1.POST("/student/login", hm.authHandler.LoginStudent)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
	{
		admin.POST("/add-teacher", hm.adminHandler.AddTeacher)
		admin.POST("/add-student", hm.adminHandler.AddStudent)
		admin.GET("/teachers", hm.adminHandler.ListTeachers)
		admin.GET("/students", hm.adminHandler.ListStudents)
		admin.GET("/student-attendance/:student_id", hm.adminHandler.StudentAttendance)
		admin.GET("/all-attendance", hm.adminHandler.AllAttendance)
		admin.GET("/all-attendance/export", hm.adminHandler.ExportAllAttendance)
	}

	// Teacher routes
	teacher := v1.Group("/teacher")
	teacher.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher))
	{
		teacher.POST("/create-subject", hm.teacherHandler.CreateSubject)
		teacher.POST("/create-session", hm.teacherHandler.CreateSession)
		teacher.GET("/subjects/:teacher_id", hm.teacherHandler.ListSubjects)
		teacher.GET("/sessions/:subject_id", hm.teacherHandler.ListSessions)
		teacher.GET("/attendance/:subject_id", hm.teacherHandler.SubjectAttendance)
		teacher.GET("/attendance/:subject_id/:student_id", hm.teacherHandler.StudentAttendance)
		teacher.GET("/attendance-summary/:subject_id", hm.teacherHandler.AttendanceSummary)
	}

	// Student routes
	student := v1.Group("/student")
	student.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
	{
		student.POST("/mark-attendance", hm.studentHandler.MarkAttendance)
		student.GET("/attendance-overall/:student_id", hm.studentHandler.AttendanceOverall)
		student.GET("/attendance-subject/:student_id/:subject_code", hm.studentHandler.AttendanceSubject)
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "qr-attendance",
	})
}

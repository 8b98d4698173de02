package validator

// LoginRequest is shared by the admin, teacher and student login endpoints.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=128"`
}

// RegisterTeacherRequest creates a teacher roster row plus its login user.
type RegisterTeacherRequest struct {
	TeacherID  string `json:"teacher_id" validate:"required,person_id"`
	Name       string `json:"name" validate:"required,max=100"`
	Department string `json:"department" validate:"omitempty,max=50"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=6,max=128"`
}

// RegisterStudentRequest creates a student roster row plus its login user.
type RegisterStudentRequest struct {
	StudentID  string `json:"student_id" validate:"required,person_id"`
	Name       string `json:"name" validate:"required,max=100"`
	Department string `json:"department" validate:"omitempty,max=50"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=6,max=128"`
}

type CreateSubjectRequest struct {
	Code      string `json:"code" validate:"required,subject_code"`
	Name      string `json:"name" validate:"required,max=100"`
	TeacherID string `json:"teacher_id" validate:"required,person_id"`
}

// CreateSessionRequest schedules a class; the topic must stay out of the QR
// delimiter's way, hence qr_safe.
type CreateSessionRequest struct {
	SubjectID uint   `json:"subject_id" validate:"required"`
	Topic     string `json:"topic" validate:"required,max=200,qr_safe"`
	ClassDate string `json:"class_date" validate:"required,class_date"`
	StartTime string `json:"start_time" validate:"required,clock_time"`
	EndTime   string `json:"end_time" validate:"required,clock_time"`
}

package models

// Teacher and Student IDs are externally assigned registrar codes, not
// surrogate keys.

type Teacher struct {
	ID         string `json:"teacher_id" gorm:"primaryKey;size:20"`
	Name       string `json:"name" gorm:"not null;size:100"`
	Department string `json:"department" gorm:"size:50"`
	Email      string `json:"email" gorm:"uniqueIndex;not null;size:255"`

	Subjects []Subject `json:"subjects,omitempty" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
}

func (Teacher) TableName() string {
	return "teachers"
}

type Student struct {
	ID         string `json:"student_id" gorm:"primaryKey;size:20"`
	Name       string `json:"name" gorm:"not null;size:100"`
	Department string `json:"department" gorm:"size:50"`
	Email      string `json:"email" gorm:"uniqueIndex;not null;size:255"`
}

func (Student) TableName() string {
	return "students"
}

package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
)

// fakeRepository is an in-memory Repository for service tests. It reproduces
// the semantics the services rely on: sentinel errors, the unique-index
// behavior of CreateIfAbsent and the grouped summary queries.
type fakeRepository struct {
	mu sync.Mutex

	users      map[string]*models.User
	teachers   map[string]*models.Teacher
	students   map[string]*models.Student
	subjects   map[uint]*models.Subject
	sessions   map[uint]*models.Session
	attendance map[uint]*models.Attendance

	nextUserID       uint
	nextSubjectID    uint
	nextSessionID    uint
	nextAttendanceID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:      make(map[string]*models.User),
		teachers:   make(map[string]*models.Teacher),
		students:   make(map[string]*models.Student),
		subjects:   make(map[uint]*models.Subject),
		sessions:   make(map[uint]*models.Session),
		attendance: make(map[uint]*models.Attendance),
	}
}

func (f *fakeRepository) User() repositories.UserRepository             { return &fakeUserRepo{f} }
func (f *fakeRepository) Teacher() repositories.TeacherRepository       { return &fakeTeacherRepo{f} }
func (f *fakeRepository) Student() repositories.StudentRepository       { return &fakeStudentRepo{f} }
func (f *fakeRepository) Subject() repositories.SubjectRepository       { return &fakeSubjectRepo{f} }
func (f *fakeRepository) Session() repositories.SessionRepository       { return &fakeSessionRepo{f} }
func (f *fakeRepository) Attendance() repositories.AttendanceRepository { return &fakeAttendanceRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== Seeding helpers =====

func (f *fakeRepository) seedTeacher(id, name string) *models.Teacher {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &models.Teacher{ID: id, Name: name, Email: id + "@example.edu"}
	f.teachers[id] = t
	return t
}

func (f *fakeRepository) seedStudent(id, name string) *models.Student {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.Student{ID: id, Name: name, Email: id + "@example.edu"}
	f.students[id] = s
	return s
}

func (f *fakeRepository) seedSubject(code, teacherID string) *models.Subject {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSubjectID++
	s := &models.Subject{ID: f.nextSubjectID, Code: code, Name: code, TeacherID: teacherID}
	f.subjects[s.ID] = s
	return s
}

func (f *fakeRepository) seedSession(subjectID uint, topic string) *models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSessionID++
	s := &models.Session{ID: f.nextSessionID, SubjectID: subjectID, Topic: topic, StartTime: "09:00", EndTime: "10:00"}
	f.sessions[s.ID] = s
	return s
}

func (f *fakeRepository) seedAttendance(sessionID uint, studentID string, status models.AttendanceStatus) *models.Attendance {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextAttendanceID++
	a := &models.Attendance{
		ID:        f.nextAttendanceID,
		SessionID: sessionID,
		StudentID: studentID,
		Status:    status,
		MarkedAt:  time.Now(),
	}
	f.attendance[a.ID] = a
	return a
}

// ===== Users =====

type fakeUserRepo struct{ f *fakeRepository }

func (m *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	if _, ok := m.f.users[user.Username]; ok {
		return repositories.ErrDuplicate
	}
	m.f.nextUserID++
	user.ID = m.f.nextUserID
	m.f.users[user.Username] = user
	return nil
}

func (m *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	user, ok := m.f.users[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

// ===== Teachers =====

type fakeTeacherRepo struct{ f *fakeRepository }

func (m *fakeTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	if _, ok := m.f.teachers[teacher.ID]; ok {
		return repositories.ErrDuplicate
	}
	m.f.teachers[teacher.ID] = teacher
	return nil
}

func (m *fakeTeacherRepo) GetByID(ctx context.Context, id string) (*models.Teacher, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	teacher, ok := m.f.teachers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return teacher, nil
}

func (m *fakeTeacherRepo) List(ctx context.Context) ([]models.Teacher, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	out := make([]models.Teacher, 0, len(m.f.teachers))
	for _, t := range m.f.teachers {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== Students =====

type fakeStudentRepo struct{ f *fakeRepository }

func (m *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	if _, ok := m.f.students[student.ID]; ok {
		return repositories.ErrDuplicate
	}
	m.f.students[student.ID] = student
	return nil
}

func (m *fakeStudentRepo) GetByID(ctx context.Context, id string) (*models.Student, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	student, ok := m.f.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return student, nil
}

func (m *fakeStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	out := make([]models.Student, 0, len(m.f.students))
	for _, s := range m.f.students {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== Subjects =====

type fakeSubjectRepo struct{ f *fakeRepository }

func (m *fakeSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	for _, s := range m.f.subjects {
		if s.Code == subject.Code {
			return repositories.ErrDuplicate
		}
	}
	m.f.nextSubjectID++
	subject.ID = m.f.nextSubjectID
	m.f.subjects[subject.ID] = subject
	return nil
}

func (m *fakeSubjectRepo) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	subject, ok := m.f.subjects[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return subject, nil
}

func (m *fakeSubjectRepo) GetByCode(ctx context.Context, code string) (*models.Subject, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	for _, s := range m.f.subjects {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *fakeSubjectRepo) ListByTeacher(ctx context.Context, teacherID string) ([]models.Subject, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []models.Subject
	for _, s := range m.f.subjects {
		if s.TeacherID == teacherID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ===== Sessions =====

type fakeSessionRepo struct{ f *fakeRepository }

func (m *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	m.f.nextSessionID++
	session.ID = m.f.nextSessionID
	m.f.sessions[session.ID] = session
	return nil
}

func (m *fakeSessionRepo) GetBySubject(ctx context.Context, sessionID, subjectID uint) (*models.Session, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	session, ok := m.f.sessions[sessionID]
	if !ok || session.SubjectID != subjectID {
		return nil, repositories.ErrNotFound
	}
	return session, nil
}

func (m *fakeSessionRepo) ListBySubject(ctx context.Context, subjectID uint) ([]models.Session, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []models.Session
	for _, s := range m.f.sessions {
		if s.SubjectID == subjectID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *fakeSessionRepo) UpdateQRCode(ctx context.Context, sessionID uint, qrCode []byte) error {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	session, ok := m.f.sessions[sessionID]
	if !ok {
		return repositories.ErrNotFound
	}
	session.QRCode = qrCode
	return nil
}

// ===== Attendance =====

type fakeAttendanceRepo struct{ f *fakeRepository }

func (m *fakeAttendanceRepo) CreateIfAbsent(ctx context.Context, att *models.Attendance) (bool, *models.Attendance, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	for _, existing := range m.f.attendance {
		if existing.SessionID == att.SessionID && existing.StudentID == att.StudentID {
			return false, existing, nil
		}
	}
	m.f.nextAttendanceID++
	att.ID = m.f.nextAttendanceID
	if att.MarkedAt.IsZero() {
		att.MarkedAt = time.Now()
	}
	m.f.attendance[att.ID] = att
	return true, att, nil
}

func (m *fakeAttendanceRepo) ListBySubject(ctx context.Context, subjectID uint) ([]models.AttendanceRecord, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []models.AttendanceRecord
	for _, a := range m.f.attendance {
		session, ok := m.f.sessions[a.SessionID]
		if !ok || session.SubjectID != subjectID {
			continue
		}
		out = append(out, models.AttendanceRecord{
			ID:          a.ID,
			SessionID:   a.SessionID,
			SubjectCode: m.f.subjects[subjectID].Code,
			StudentID:   a.StudentID,
			Status:      a.Status,
			MarkedAt:    a.MarkedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MarkedAt.After(out[j].MarkedAt) })
	return out, nil
}

func (m *fakeAttendanceRepo) PairCounts(ctx context.Context, studentID string, subjectID uint) (int64, int64, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var total, attended int64
	for _, a := range m.f.attendance {
		session, ok := m.f.sessions[a.SessionID]
		if !ok || session.SubjectID != subjectID || a.StudentID != studentID {
			continue
		}
		total++
		if a.Status == models.AttendancePresent {
			attended++
		}
	}
	return total, attended, nil
}

func (m *fakeAttendanceRepo) SummaryByStudent(ctx context.Context, studentID string) ([]repositories.SummaryRow, error) {
	return m.tally(func(a *models.Attendance, _ *models.Subject) bool {
		return a.StudentID == studentID
	}), nil
}

func (m *fakeAttendanceRepo) SummaryBySubject(ctx context.Context, subjectID uint) ([]repositories.SummaryRow, error) {
	return m.tally(func(_ *models.Attendance, s *models.Subject) bool {
		return s.ID == subjectID
	}), nil
}

func (m *fakeAttendanceRepo) GlobalSummary(ctx context.Context) ([]repositories.SummaryRow, error) {
	return m.tally(func(*models.Attendance, *models.Subject) bool { return true }), nil
}

func (m *fakeAttendanceRepo) tally(keep func(*models.Attendance, *models.Subject) bool) []repositories.SummaryRow {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()

	type key struct {
		student string
		code    string
	}
	groups := make(map[key]*repositories.SummaryRow)

	for _, a := range m.f.attendance {
		session, ok := m.f.sessions[a.SessionID]
		if !ok {
			continue
		}
		subject, ok := m.f.subjects[session.SubjectID]
		if !ok || !keep(a, subject) {
			continue
		}

		k := key{student: a.StudentID, code: subject.Code}
		row, ok := groups[k]
		if !ok {
			row = &repositories.SummaryRow{StudentID: a.StudentID, SubjectCode: subject.Code}
			groups[k] = row
		}
		row.TotalClasses++
		if a.Status == models.AttendancePresent {
			row.Attended++
		}
	}

	out := make([]repositories.SummaryRow, 0, len(groups))
	for _, row := range groups {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].SubjectCode < out[j].SubjectCode
	})
	return out
}

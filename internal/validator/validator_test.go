package validator

import "testing"

func TestCreateSessionRequestValidation(t *testing.T) {
	v := New()

	t.Run("Valid", func(t *testing.T) {
		req := CreateSessionRequest{
			SubjectID: 1,
			Topic:     "Intro to Pointers",
			ClassDate: "2024-01-10",
			StartTime: "09:00",
			EndTime:   "10:00",
		}
		if errs := v.Validate(req); errs != nil {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("TopicWithComma", func(t *testing.T) {
		req := CreateSessionRequest{
			SubjectID: 1,
			Topic:     "Pointers, continued",
			ClassDate: "2024-01-10",
			StartTime: "09:00",
			EndTime:   "10:00",
		}
		errs := v.Validate(req)
		if len(errs) != 1 || errs[0].Rule != "qr_safe" {
			t.Errorf("expected one qr_safe failure, got %v", errs)
		}
	})

	t.Run("BadDateAndTime", func(t *testing.T) {
		req := CreateSessionRequest{
			SubjectID: 1,
			Topic:     "Intro",
			ClassDate: "10-01-2024",
			StartTime: "9am",
			EndTime:   "10:00",
		}
		errs := v.Validate(req)
		if len(errs) != 2 {
			t.Errorf("expected two failures, got %v", errs)
		}
	})
}

func TestRegisterStudentRequestValidation(t *testing.T) {
	v := New()

	t.Run("Valid", func(t *testing.T) {
		req := RegisterStudentRequest{
			StudentID: "S1",
			Name:      "Asha Rao",
			Email:     "asha@example.edu",
			Username:  "asha",
			Password:  "secret123",
		}
		if errs := v.Validate(req); errs != nil {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("BadIDAndEmail", func(t *testing.T) {
		req := RegisterStudentRequest{
			StudentID: "S 1!",
			Name:      "Asha Rao",
			Email:     "not-an-email",
			Username:  "asha",
			Password:  "secret123",
		}
		errs := v.Validate(req)
		if len(errs) != 2 {
			t.Errorf("expected two failures, got %v", errs)
		}
	})
}

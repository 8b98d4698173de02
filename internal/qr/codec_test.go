package qr

import (
	"errors"
	"testing"
)

func TestEncodePayload(t *testing.T) {
	got := EncodePayload("CS101", 7, "Intro", "2024-01-10", "09:00")
	want := "CS101,7,Intro,2024-01-10,09:00"
	if got != want {
		t.Fatalf("EncodePayload = %q, want %q", got, want)
	}
}

func TestDecodePayload(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		raw := EncodePayload("CS101", 7, "Intro", "2024-01-10", "09:00")
		p, err := DecodePayload(raw)
		if err != nil {
			t.Fatalf("DecodePayload failed: %v", err)
		}
		if p.SubjectCode != "CS101" || p.SessionID != "7" || p.Topic != "Intro" ||
			p.ClassDate != "2024-01-10" || p.StartTime != "09:00" {
			t.Errorf("unexpected payload: %+v", p)
		}
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		p, err := DecodePayload(" CS101 , 7 ,Intro , 2024-01-10,09:00 ")
		if err != nil {
			t.Fatalf("DecodePayload failed: %v", err)
		}
		if p.SubjectCode != "CS101" || p.SessionID != "7" || p.ClassDate != "2024-01-10" {
			t.Errorf("fields not trimmed: %+v", p)
		}
	})

	t.Run("ExtraFieldsIgnored", func(t *testing.T) {
		p, err := DecodePayload("CS101,7,Intro,2024-01-10,09:00,garbage,more")
		if err != nil {
			t.Fatalf("DecodePayload failed: %v", err)
		}
		if p.StartTime != "09:00" {
			t.Errorf("expected fifth field %q, got %q", "09:00", p.StartTime)
		}
	})

	t.Run("TooFewFields", func(t *testing.T) {
		for _, raw := range []string{"", "CS101", "CS101,7,Intro,2024-01-10"} {
			if _, err := DecodePayload(raw); !errors.Is(err, ErrMalformedPayload) {
				t.Errorf("DecodePayload(%q) err = %v, want ErrMalformedPayload", raw, err)
			}
		}
	})

	t.Run("CommaInTopicShiftsFields", func(t *testing.T) {
		// Known wire-format limitation: the delimiter is not escaped.
		p, err := DecodePayload("CS101,7,Intro, continued,2024-01-10,09:00")
		if err != nil {
			t.Fatalf("DecodePayload failed: %v", err)
		}
		if p.ClassDate == "2024-01-10" {
			t.Error("expected shifted fields when topic contains the delimiter")
		}
	})
}

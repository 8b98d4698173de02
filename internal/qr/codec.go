package qr

import (
	"errors"
	"fmt"
	"strings"
)

// Wire format: subject_code,session_id,topic,class_date,start_time
//
// The five fields are joined with a bare comma and are NOT escaped; a topic
// containing a comma would shift every later field on decode. Callers must
// keep the delimiter out of field values (session topics are rejected at
// validation time). The format is a fixed external contract and cannot be
// changed without invalidating every QR code already handed out.

const payloadDelimiter = ","

const payloadFields = 5

// ErrMalformedPayload is returned when a scanned string does not carry the
// five expected fields.
var ErrMalformedPayload = errors.New("malformed QR payload")

// Payload is the decoded session identity carried by a QR code. SessionID is
// kept as scanned; the attendance service parses it when resolving the
// session.
type Payload struct {
	SubjectCode string
	SessionID   string
	Topic       string
	ClassDate   string
	StartTime   string
}

// EncodePayload serializes a session identity for QR rendering.
func EncodePayload(subjectCode string, sessionID uint, topic, classDate, startTime string) string {
	return strings.Join([]string{
		subjectCode,
		fmt.Sprintf("%d", sessionID),
		topic,
		classDate,
		startTime,
	}, payloadDelimiter)
}

// DecodePayload parses a scanned payload string. Fields beyond the fifth are
// ignored; each kept field is trimmed of surrounding whitespace.
func DecodePayload(raw string) (Payload, error) {
	parts := strings.Split(raw, payloadDelimiter)
	if len(parts) < payloadFields {
		return Payload{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedPayload, payloadFields, len(parts))
	}

	return Payload{
		SubjectCode: strings.TrimSpace(parts[0]),
		SessionID:   strings.TrimSpace(parts[1]),
		Topic:       strings.TrimSpace(parts[2]),
		ClassDate:   strings.TrimSpace(parts[3]),
		StartTime:   strings.TrimSpace(parts[4]),
	}, nil
}

package qr

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/liyue201/goqr"
	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	qrcode "github.com/skip2/go-qrcode"
)

// ErrNoQRCode is returned when neither decoder finds a QR code in the image.
var ErrNoQRCode = errors.New("no QR code detected in image")

const qrImageSize = 256

// GenerateSessionQR encodes a session identity, renders it as a PNG under
// dir and returns the file path together with the encoded payload.
func GenerateSessionQR(dir, subjectCode string, sessionID uint, topic, classDate, startTime string) (string, string, error) {
	payload := EncodePayload(subjectCode, sessionID, topic, classDate, startTime)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create QR media dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%d_%s.png", subjectCode, sessionID, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	if err := qrcode.WriteFile(payload, qrcode.Medium, qrImageSize, path); err != nil {
		return "", "", fmt.Errorf("failed to render QR image: %w", err)
	}

	return path, payload, nil
}

// DecodeImage extracts the QR payload string from an uploaded image. A zxing
// decode is attempted first; if it yields nothing the pure-Go goqr decoder
// gets a second pass before giving up.
func DecodeImage(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoQRCode, err)
	}

	if text := decodeZxing(img); text != "" {
		return text, nil
	}

	codes, err := goqr.Recognize(img)
	if err == nil && len(codes) > 0 && len(codes[0].Payload) > 0 {
		return string(codes[0].Payload), nil
	}

	return "", ErrNoQRCode
}

func decodeZxing(img image.Image) string {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return ""
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil || result == nil {
		return ""
	}

	return result.GetText()
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
)

// Claims is the JWT payload carried by every access token. LinkedID is the
// roster ID the account belongs to (teacher or student ID); empty for admins.
type Claims struct {
	Role     models.UserRole `json:"role"`
	LinkedID string          `json:"linked_id,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs an HS256 access token for a user.
func Issue(username string, role models.UserRole, linkedID, issuer, key string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)

	claims := Claims{
		Role:     role,
		LinkedID: linkedID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Parse validates a token string and returns its claims.
func Parse(tokenStr, key, issuer string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return Claims{}, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if issuer != "" && claims.Issuer != issuer {
		return Claims{}, errors.New("issuer mismatch")
	}

	return *claims, nil
}

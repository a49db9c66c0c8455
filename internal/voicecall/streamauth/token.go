// Package streamauth binds a media stream to the call that requested it.
package streamauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid stream token")
	ErrExpiredToken = errors.New("stream token expired")
)

const (
	issuer     = "realtime-bridge"
	DefaultTTL = 2 * time.Minute
)

// Claims identify the session a stream token was issued for.
type Claims struct {
	SessionID string `json:"sid"`
	CallSID   string `json:"call_sid,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 stream tokens. A Signer without a secret
// is disabled: it issues empty tokens and accepts anything.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) Enabled() bool {
	return len(s.secret) > 0
}

// Issue signs a token for the session.
func (s *Signer) Issue(sessionID, callSID string) (string, error) {
	if !s.Enabled() {
		return "", nil
	}

	now := s.now()
	claims := Claims{
		SessionID: sessionID,
		CallSID:   callSID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign stream token: %w", err)
	}
	return token, nil
}

// Verify checks the token was issued for sessionID and has not expired.
func (s *Signer) Verify(token, sessionID string) error {
	if !s.Enabled() {
		return nil
	}
	if token == "" {
		return ErrInvalidToken
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.SessionID != sessionID {
		return ErrInvalidToken
	}
	return nil
}

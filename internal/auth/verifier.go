package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential is returned for any credential that does not
// verify: malformed, expired, wrong signature or missing claims.
var ErrInvalidCredential = errors.New("invalid or expired credential")

// Verifier validates an opaque credential and yields the stable user
// identifier it asserts. The rest of the service depends on this
// interface only, never on the credential format.
type Verifier interface {
	Verify(credential string) (int64, error)
}

// JWTVerifier verifies HS256 bearer tokens signed with a shared
// secret, the format the identity service mints.
type JWTVerifier struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTVerifier creates a verifier for tokens signed with the given
// secret. The TTL applies to credentials minted via IssueCredential.
func NewJWTVerifier(secret string, ttl time.Duration) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), ttl: ttl}
}

// Verify parses and validates the credential and returns the asserted
// user id.
func (v *JWTVerifier) Verify(credential string) (int64, error) {
	token, err := jwt.Parse(credential, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return 0, ErrInvalidCredential
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidCredential
	}
	raw, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidCredential
	}
	return int64(raw), nil
}

// IssueCredential mints a signed credential asserting the given user
// id. The identity service owns issuance in production; tests and
// tooling use this to produce compatible tokens.
func (v *JWTVerifier) IssueCredential(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     jwt.NewNumericDate(time.Now().Add(v.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

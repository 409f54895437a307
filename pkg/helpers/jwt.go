package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/okisetiana/blog-api/internal/domain/entity"
)

// MinSecretLen is the minimum signing secret length HS256 is run with here.
const MinSecretLen = 32

// FallbackSecret is substituted when the configured secret is shorter than
// MinSecretLen, instead of failing startup.
//
// SECURITY: this is a known weakness kept for compatibility with previously
// issued tokens: any deployment that configures a short secret silently
// signs with this public constant. NewJWTManager reports the substitution so
// callers can log it loudly; rotate to a >=32-byte secret in production.
const FallbackSecret = "default-256-bit-secret-for-development-only!!!!!!!!"

// ErrInvalidToken is the uniform verification failure. Expired, malformed,
// and forged tokens are indistinguishable from the outside on purpose.
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by a session token.
type Claims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 session tokens. It is stateless and
// safe for concurrent use; a token, once issued, stays valid until its
// expiration instant and cannot be revoked here.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager derives the signing key from the configured secret. The
// returned bool is false when the weak-secret fallback was substituted.
func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, bool) {
	ok := len(secret) >= MinSecretLen
	if !ok {
		secret = FallbackSecret
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl}, ok
}

// Generate issues a token for the user: sub=username plus userId and role
// claims, issued now, expiring after the configured TTL.
func (m *JWTManager) Generate(u *entity.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		UserID: u.ID,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Parse verifies the signature and expiry and returns the decoded claims.
// Every failure mode collapses into ErrInvalidToken so callers cannot probe
// why a token was rejected.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

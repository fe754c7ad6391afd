package jwt

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidClaims = errors.New("invalid session claims")

type Service interface {
	GenerateAccessToken(session user.Session) (token string, expiresAt int64, err error)
	GenerateSSEToken(session user.Session) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (user.Session, error)
	SessionFromClaims(claims map[string]interface{}) (user.Session, error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	revokedTokens         map[string]int64
	mu                    sync.RWMutex
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) *JWTService {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:         make(map[string]int64),
		now:                   time.Now,
	}
}

func sessionClaims(session user.Session, tokenType string, expiresAt int64) map[string]interface{} {
	return map[string]interface{}{
		"kind":        string(session.Kind),
		"employee_id": session.EmployeeID,
		"role":        string(session.EmployeeRole),
		"name":        session.Name,
		"type":        tokenType,
		"exp":         expiresAt,
	}
}

func (j *JWTService) GenerateAccessToken(session user.Session) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(sessionClaims(session, "access", expiresAt))
	return tokenString, expiresAt, err
}

// SessionFromClaims rebuilds the session of a verified access token.
func (j *JWTService) SessionFromClaims(claims map[string]interface{}) (user.Session, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return user.Session{}, ErrInvalidClaims
	}
	return sessionFromMap(claims)
}

func sessionFromMap(claims map[string]interface{}) (user.Session, error) {
	kind, _ := claims["kind"].(string)
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)

	switch user.SessionKind(kind) {
	case user.SessionAdmin:
		return user.AdminSession(), nil
	case user.SessionEmployee:
		if employeeID == "" {
			return user.Session{}, ErrInvalidClaims
		}
		return user.Session{
			Kind:         user.SessionEmployee,
			EmployeeID:   employeeID,
			EmployeeRole: employee.Role(role),
			Name:         name,
		}, nil
	default:
		return user.Session{}, ErrInvalidClaims
	}
}

// RevokeToken blocks the token until it would have expired anyway.
func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
		}
	}

	exp := j.now().Add(j.accessTokenExpiration).Unix()
	if parsed, err := j.tokenAuth.Decode(token); err == nil && !parsed.Expiration().IsZero() {
		exp = parsed.Expiration().Unix()
	}
	j.revokedTokens[token] = exp
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(session user.Session) (token string, expiresIn int, err error) {
	// SSE tokens are short-lived (5 minutes)
	expiresIn = 300
	expiresAt := j.now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(sessionClaims(session, "sse", expiresAt))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns its session
func (j *JWTService) ValidateSSEToken(tokenString string) (user.Session, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return user.Session{}, err
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return user.Session{}, err
	}

	if tokenType, _ := claims["type"].(string); tokenType != "sse" {
		return user.Session{}, jwt.ErrInvalidJWT()
	}

	return sessionFromMap(claims)
}

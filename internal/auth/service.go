// ============================================================================
// internal/auth/service.go
// Admin login/logout/validation and the two-factor student gate
// ============================================================================

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"resultportal/internal/metrics"
	"resultportal/internal/records"
	"resultportal/internal/shared"
)

// Claims is the JWT payload for admin sessions.
type Claims struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service performs credential checks for both audiences. Admins get a signed
// JWT backed by a server-side session row, so tokens can be revoked. Students
// never get a token: the gate resolves a record or fails, per request.
type Service struct {
	repo      records.Repository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewService creates the auth service.
func NewService(repo records.Repository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login verifies the admin credentials and opens a session. Every failure
// path returns the same shared.ErrAuthenticationFailed, so callers cannot
// learn whether the username or the password was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (string, *shared.AdminProfile, error) {
	username = strings.TrimSpace(username)

	// Step 1: Look up the admin account
	admin, err := s.repo.FindAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Burn a bcrypt comparison anyway so a missing username does not
			// answer measurably faster than a wrong password.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			metrics.IncAuthFailure("admin")
			return "", nil, shared.ErrAuthenticationFailed
		}
		return "", nil, err
	}

	// Step 2: Verify the password against the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		metrics.IncAuthFailure("admin")
		s.logger.Info("admin login rejected", zap.String("username", username))
		return "", nil, shared.ErrAuthenticationFailed
	}

	// Step 3: Issue the signed token
	now := time.Now()
	sessionID := shared.GenerateID("sess")
	claims := Claims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	// Step 4: Record the session so the token can be revoked server-side
	session := &shared.Session{
		ID:        sessionID,
		AdminID:   admin.ID,
		Token:     token,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}
	if err := s.repo.InsertSession(ctx, session); err != nil {
		return "", nil, err
	}

	s.logger.Info("admin logged in", zap.String("username", admin.Username))
	return token, admin, nil
}

// Logout revokes the session behind the token. Unknown tokens succeed, so
// logout is safe to retry.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSessionByToken(ctx, token)
}

// ValidateToken checks the token signature, the live session row and the
// admin account, in that order. A token that parses but whose session was
// revoked is just as invalid as a forged one.
func (s *Service) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, shared.ErrAuthenticationFailed
	}

	session, err := s.repo.FindSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrAuthenticationFailed
		}
		return nil, err
	}
	if session.IsExpired() {
		return nil, shared.ErrAuthenticationFailed
	}

	if _, err := s.repo.GetAdmin(ctx, claims.AdminID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrAuthenticationFailed
		}
		return nil, err
	}

	return claims, nil
}

// ResolveStudent is the two-factor student gate: both the seat number and
// the date of birth must match one record exactly. Any mismatch, in either
// factor or both, reports the same shared.ErrAuthenticationFailed.
func (s *Service) ResolveStudent(ctx context.Context, seatNumber, dateOfBirth string) (*shared.Student, error) {
	seat := strings.ToUpper(strings.TrimSpace(seatNumber))
	dob := strings.TrimSpace(dateOfBirth)
	if seat == "" || dob == "" {
		metrics.IncAuthFailure("student")
		return nil, shared.ErrAuthenticationFailed
	}

	// Normalize the submitted date so "2002-5-15" matches the stored form.
	if parsed, err := time.Parse("2006-01-02", dob); err == nil {
		dob = parsed.Format("2006-01-02")
	}

	student, err := s.repo.FindStudentByCredentials(ctx, seat, dob)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			metrics.IncAuthFailure("student")
			return nil, shared.ErrAuthenticationFailed
		}
		return nil, err
	}
	return student, nil
}

// HashPassword produces a bcrypt hash for storing admin credentials.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// dummyHash is a valid bcrypt hash of a random string, used only to equalize
// timing when the username does not exist.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("resultportal-dummy"), bcrypt.DefaultCost)
	return h
}()

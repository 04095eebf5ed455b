package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
)

var (
	ErrInvalidCode  = fmt.Errorf("invalid verification code")
	ErrCodeExpired  = fmt.Errorf("verification code expired")
	ErrInvalidToken = fmt.Errorf("invalid session token")
	ErrTokenExpired = fmt.Errorf("session token expired")
	ErrTokenRevoked = fmt.Errorf("session token revoked")
)

// AuthService handles registration, email verification codes, and
// bearer-token session management. Core ledger invariants live in
// internal/ledger; this package is the ambient collaborator that sits in
// front of them for the HTTP layer.
type AuthService struct {
	emailService EmailService
	userRepo     interfaces.UserRepository
	sessionRepo  interfaces.SessionTokenRepository
	codes        sync.Map // map[email]codeData
}

type codeData struct {
	code      string
	expiresAt time.Time
}

func NewAuthService(emailService EmailService, userRepo interfaces.UserRepository, sessionRepo interfaces.SessionTokenRepository) *AuthService {
	return &AuthService{
		emailService: emailService,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
	}
}

// Register creates the user record and sends a verification code to their
// email. The account is unverified (and therefore cannot log in) until
// VerifyEmail succeeds.
func (s *AuthService) Register(ctx context.Context, email, password, givenName, familyName string) (*models.User, error) {
	user, err := s.userRepo.CreateUser(ctx, email, password, givenName, familyName)
	if err != nil {
		return nil, err
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}
	s.codes.Store(email, codeData{code: code, expiresAt: time.Now().Add(10 * time.Minute)})

	if err := s.emailService.SendAuthCode(ctx, email, code); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	return user, nil
}

// VerifyEmail checks the one-time code and, on success, marks the user
// verified.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	value, ok := s.codes.Load(email)
	if !ok {
		return ErrInvalidCode
	}
	data := value.(codeData)
	if time.Now().After(data.expiresAt) {
		s.codes.Delete(email)
		return ErrCodeExpired
	}
	if data.code != code {
		return ErrInvalidCode
	}
	s.codes.Delete(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found for %s", email)
	}
	return s.userRepo.VerifyUserEmail(ctx, user.ID)
}

func (s *AuthService) generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Login authenticates email/password and establishes a new session.
func (s *AuthService) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*models.LoginResponse, error) {
	user, err := s.userRepo.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, err := s.CreateSession(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// CreateSession mints a bearer token, stores its hash, and returns the
// plaintext token to the caller (never persisted in plaintext).
func (s *AuthService) CreateSession(ctx context.Context, userID uuid.UUID, userAgent, ipAddress string) (string, error) {
	token, err := s.generateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := s.hashToken(token)
	tokenPrefix := token[:8]

	sanitizedUA := sanitizeString(userAgent)
	var ip *net.IP
	if parsed := net.ParseIP(sanitizeString(ipAddress)); parsed != nil {
		ip = &parsed
	}

	now := time.Now()
	sessionToken := models.SessionToken{
		ID:          uuid.New(),
		UserID:      userID,
		TokenHash:   tokenHash,
		TokenPrefix: tokenPrefix,
		UserAgent:   &sanitizedUA,
		IPAddress:   ip,
		ExpiresAt:   now.Add(30 * 24 * time.Hour),
		LastUsedAt:  now,
		IsRevoked:   false,
		CreatedAt:   now,
	}
	if err := s.sessionRepo.Insert(ctx, sessionToken.ID, sessionToken); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// ValidateToken resolves a bearer token to its user and session, failing
// if the session is missing, revoked, or expired.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, *models.SessionToken, error) {
	tokenHash := s.hashToken(token)
	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrInvalidToken
	}
	if session.IsRevoked {
		return nil, nil, ErrTokenRevoked
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, nil, ErrTokenExpired
	}

	user, err := s.userRepo.Get(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidToken
	}

	go func() {
		_ = s.touchLastUsed(context.Background(), session.ID)
	}()

	return user, session, nil
}

func (s *AuthService) touchLastUsed(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil || session == nil {
		return err
	}
	session.LastUsedAt = time.Now()
	return s.sessionRepo.Update(ctx, sessionID, *session)
}

// RevokeSession revokes by bearer token (e.g. logout of the current
// session).
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	return s.sessionRepo.RevokeByTokenHash(ctx, s.hashToken(token), models.RevocationReasonUserLogout)
}

// RevokeSessionByID revokes an arbitrary session the caller owns.
func (s *AuthService) RevokeSessionByID(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session not found")
	}
	now := time.Now()
	reason := models.RevocationReasonUserLogout
	session.IsRevoked = true
	session.RevokedAt = &now
	session.RevocationReason = &reason
	return s.sessionRepo.Update(ctx, sessionID, *session)
}

func (s *AuthService) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID, reason string) error {
	return s.sessionRepo.RevokeAllUserTokens(ctx, userID, reason)
}

func (s *AuthService) GetActiveSessions(ctx context.Context, userID uuid.UUID) ([]models.SessionToken, error) {
	return s.sessionRepo.GetActiveSessionsByUserID(ctx, userID)
}

func (s *AuthService) generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func sanitizeString(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

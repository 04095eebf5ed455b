package services

import (
	"context"
	"testing"

	"github.com/brokerx/engine/internal/ledger"
	"github.com/brokerx/engine/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingEmailService struct {
	lastEmail string
	lastCode  string
}

func (c *capturingEmailService) SendAuthCode(ctx context.Context, toEmail, code string) error {
	c.lastEmail = toEmail
	c.lastCode = code
	return nil
}

func newTestAuthService() (*AuthService, *capturingEmailService) {
	email := &capturingEmailService{}
	return NewAuthService(email, memory.NewUserRepository(), memory.NewSessionTokenRepository()), email
}

func TestRegister_SendsVerificationCode(t *testing.T) {
	ctx := context.Background()
	svc, email := newTestAuthService()

	user, err := svc.Register(ctx, "new@example.com", "correct-horse-battery", "A", "B")
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Equal(t, "new@example.com", email.lastEmail)
	assert.Len(t, email.lastCode, 6)
}

func TestVerifyEmail_CorrectCodeVerifiesUser(t *testing.T) {
	ctx := context.Background()
	svc, email := newTestAuthService()

	_, err := svc.Register(ctx, "verify@example.com", "correct-horse-battery", "A", "B")
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(ctx, "verify@example.com", email.lastCode))

	loginResp, err := svc.Login(ctx, "verify@example.com", "correct-horse-battery", "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, loginResp.Token)
	assert.True(t, loginResp.User.IsVerified)
}

func TestVerifyEmail_WrongCodeRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, err := svc.Register(ctx, "wrongcode@example.com", "correct-horse-battery", "A", "B")
	require.NoError(t, err)

	err = svc.VerifyEmail(ctx, "wrongcode@example.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyEmail_UnknownEmailRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	err := svc.VerifyEmail(ctx, "nobody@example.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestLogin_RejectsBeforeVerification(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, err := svc.Register(ctx, "unverified@example.com", "correct-horse-battery", "A", "B")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "unverified@example.com", "correct-horse-battery", "agent", "127.0.0.1")
	assert.ErrorIs(t, err, ledger.ErrNotVerified)
}

func TestValidateToken_ResolvesSessionToUser(t *testing.T) {
	ctx := context.Background()
	svc, email := newTestAuthService()

	_, err := svc.Register(ctx, "tokenuser@example.com", "correct-horse-battery", "A", "B")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(ctx, "tokenuser@example.com", email.lastCode))

	loginResp, err := svc.Login(ctx, "tokenuser@example.com", "correct-horse-battery", "agent", "127.0.0.1")
	require.NoError(t, err)

	user, session, err := svc.ValidateToken(ctx, loginResp.Token)
	require.NoError(t, err)
	assert.Equal(t, loginResp.User.ID, user.ID)
	assert.False(t, session.IsRevoked)
}

func TestValidateToken_RejectsUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, _, err := svc.ValidateToken(ctx, "not-a-real-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeSession_InvalidatesToken(t *testing.T) {
	ctx := context.Background()
	svc, email := newTestAuthService()

	_, err := svc.Register(ctx, "logout@example.com", "correct-horse-battery", "A", "B")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(ctx, "logout@example.com", email.lastCode))

	loginResp, err := svc.Login(ctx, "logout@example.com", "correct-horse-battery", "agent", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeSession(ctx, loginResp.Token))

	_, _, err = svc.ValidateToken(ctx, loginResp.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestGetActiveSessions_ReturnsOnlyUnrevoked(t *testing.T) {
	ctx := context.Background()
	svc, email := newTestAuthService()

	user, err := svc.Register(ctx, "multisession@example.com", "correct-horse-battery", "A", "B")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(ctx, "multisession@example.com", email.lastCode))

	_, err = svc.CreateSession(ctx, user.ID, "agent-1", "127.0.0.1")
	require.NoError(t, err)
	token2, err := svc.CreateSession(ctx, user.ID, "agent-2", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeSession(ctx, token2))

	sessions, err := svc.GetActiveSessions(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

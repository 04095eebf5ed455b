package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brokerx/engine/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSessionTokenRepo(t *testing.T) (*sessionTokenRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS session_tokens").WillReturnResult(sqlmock.NewResult(0, 0))
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	store, err := NewJSONStore[models.SessionToken](context.Background(), sqlxDB, "session_tokens")
	require.NoError(t, err)
	return &sessionTokenRepository{JSONStore: store}, mock, func() { db.Close() }
}

func TestGetByTokenHash_ReturnsMatchingToken(t *testing.T) {
	repo, mock, closeDB := newMockSessionTokenRepo(t)
	defer closeDB()

	token := models.SessionToken{ID: uuid.New(), TokenHash: "hash-1", ExpiresAt: time.Now().Add(time.Hour)}
	data, err := json.Marshal(token)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT data FROM session_tokens WHERE data").
		WithArgs("token_hash", "hash-1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(data))

	got, err := repo.GetByTokenHash(context.Background(), "hash-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, token.ID, got.ID)
}

func TestGetActiveSessionsByUserID_ExcludesRevoked(t *testing.T) {
	repo, mock, closeDB := newMockSessionTokenRepo(t)
	defer closeDB()
	userID := uuid.New()

	active := models.SessionToken{ID: uuid.New(), UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
	revoked := models.SessionToken{ID: uuid.New(), UserID: userID, ExpiresAt: time.Now().Add(time.Hour), IsRevoked: true}

	activeJSON, err := json.Marshal(active)
	require.NoError(t, err)
	revokedJSON, err := json.Marshal(revoked)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "data"}).
		AddRow(active.ID.String(), activeJSON).
		AddRow(revoked.ID.String(), revokedJSON)
	mock.ExpectQuery("SELECT id, data FROM session_tokens WHERE data").
		WithArgs("user_id", userID.String()).
		WillReturnRows(rows)

	got, err := repo.GetActiveSessionsByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)
}

func TestRevokeByTokenHash_UnknownHashReturnsStoreError(t *testing.T) {
	repo, mock, closeDB := newMockSessionTokenRepo(t)
	defer closeDB()

	mock.ExpectQuery("SELECT data FROM session_tokens WHERE data").
		WithArgs("token_hash", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	err := repo.RevokeByTokenHash(context.Background(), "missing", models.RevocationReasonUserLogout)
	assert.Error(t, err)
}

func TestRevokeAllUserTokens_SkipsAlreadyRevoked(t *testing.T) {
	repo, mock, closeDB := newMockSessionTokenRepo(t)
	defer closeDB()
	userID := uuid.New()

	toRevoke := models.SessionToken{ID: uuid.New(), UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
	alreadyRevoked := models.SessionToken{ID: uuid.New(), UserID: userID, ExpiresAt: time.Now().Add(time.Hour), IsRevoked: true}

	toRevokeJSON, err := json.Marshal(toRevoke)
	require.NoError(t, err)
	alreadyRevokedJSON, err := json.Marshal(alreadyRevoked)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "data"}).
		AddRow(toRevoke.ID.String(), toRevokeJSON).
		AddRow(alreadyRevoked.ID.String(), alreadyRevokedJSON)
	mock.ExpectQuery("SELECT id, data FROM session_tokens WHERE data").
		WithArgs("user_id", userID.String()).
		WillReturnRows(rows)

	mock.ExpectExec("INSERT INTO session_tokens (.+) ON CONFLICT").
		WithArgs(toRevoke.ID.String(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.RevokeAllUserTokens(context.Background(), userID, models.RevocationReasonSecurityEvent)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredTokens_RemovesOnlyPastCutoff(t *testing.T) {
	repo, mock, closeDB := newMockSessionTokenRepo(t)
	defer closeDB()

	expired := models.SessionToken{ID: uuid.New(), ExpiresAt: time.Now().Add(-48 * time.Hour)}
	fresh := models.SessionToken{ID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}

	expiredJSON, err := json.Marshal(expired)
	require.NoError(t, err)
	freshJSON, err := json.Marshal(fresh)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "data"}).
		AddRow(expired.ID.String(), expiredJSON).
		AddRow(fresh.ID.String(), freshJSON)
	mock.ExpectQuery("SELECT id, data FROM session_tokens$").WillReturnRows(rows)

	mock.ExpectExec("DELETE FROM session_tokens WHERE id").
		WithArgs(expired.ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.DeleteExpiredTokens(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserTokenRepoMock(t *testing.T) (*userTokenRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserTokenRepository(db), mock
}

func TestUserTokenRepository_Upsert(t *testing.T) {
	t.Run("insert", func(t *testing.T) {
		repo, mock := newUserTokenRepoMock(t)

		mock.ExpectExec("INSERT INTO user_tokens").
			WithArgs(1, "refresh-token").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Upsert(context.Background(), 1, "refresh-token"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replace existing token reports two affected rows", func(t *testing.T) {
		repo, mock := newUserTokenRepoMock(t)

		// MySQL reports 2 affected rows for an upsert that updated
		mock.ExpectExec("INSERT INTO user_tokens").
			WithArgs(1, "new-token").
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.Upsert(context.Background(), 1, "new-token"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := newUserTokenRepoMock(t)

		mock.ExpectExec("INSERT INTO user_tokens").
			WillReturnError(errors.New("connection refused"))

		assert.Error(t, repo.Upsert(context.Background(), 1, "token"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserTokenRepository_Replace(t *testing.T) {
	t.Run("stored token matches", func(t *testing.T) {
		repo, mock := newUserTokenRepoMock(t)

		mock.ExpectExec("UPDATE user_tokens").
			WithArgs("new-token", 1, "old-token").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Replace(context.Background(), 1, "old-token", "new-token"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stored token differs", func(t *testing.T) {
		repo, mock := newUserTokenRepoMock(t)

		// Stale token matches no row
		mock.ExpectExec("UPDATE user_tokens").
			WithArgs("new-token", 1, "stale-token").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Replace(context.Background(), 1, "stale-token", "new-token")
		assert.ErrorIs(t, err, ErrTokenMismatch)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := newUserTokenRepoMock(t)

		mock.ExpectExec("UPDATE user_tokens").
			WillReturnError(errors.New("connection refused"))

		err := repo.Replace(context.Background(), 1, "old-token", "new-token")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrTokenMismatch)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserTokenRepository_DeleteByUserID(t *testing.T) {
	t.Run("deletes stored token", func(t *testing.T) {
		repo, mock := newUserTokenRepoMock(t)

		mock.ExpectExec("DELETE FROM user_tokens").
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteByUserID(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no stored token is not an error", func(t *testing.T) {
		repo, mock := newUserTokenRepoMock(t)

		mock.ExpectExec("DELETE FROM user_tokens").
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.DeleteByUserID(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockBackend(t *testing.T) (*SQLBackend, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS pcm_documents").
		WillReturnResult(sqlmock.NewResult(0, 0))
	b, err := NewSQLBackend(context.Background(), db)
	require.NoError(t, err)
	return b, mock
}

func TestSQLBackend_Load(t *testing.T) {
	b, mock := newMockBackend(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM pcm_documents WHERE name=? LIMIT 1")).
		WithArgs(DocUsers).
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(`[]`))

	data, err := b.Load(context.Background(), DocUsers)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackend_LoadMissing(t *testing.T) {
	b, mock := newMockBackend(t)

	mock.ExpectQuery("SELECT body FROM pcm_documents").
		WithArgs(DocRooms).
		WillReturnError(sql.ErrNoRows)

	_, err := b.Load(context.Background(), DocRooms)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLBackend_Save(t *testing.T) {
	b, mock := newMockBackend(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pcm_documents (name, body) VALUES (?,?)")).
		WithArgs(DocRooms, `{"101":{}}`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, b.Save(context.Background(), DocRooms, []byte(`{"101":{}}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackend_SaveError(t *testing.T) {
	b, mock := newMockBackend(t)

	mock.ExpectExec("INSERT INTO pcm_documents").WillReturnError(errors.New("connection reset"))

	err := b.Save(context.Background(), DocUsers, []byte(`[]`))
	assert.ErrorContains(t, err, "connection reset")
}

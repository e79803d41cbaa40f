package storage

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudguide/core/types"
	"cloudguide/internal/errors"
)

var columns = []string{
	"id", "user_id", "title", "config", "estimates", "advisory", "trends", "input_hash", "created_at", "updated_at",
}

const (
	configJSON    = `{"spec":{"vcpu":4,"ram":16,"storage":256,"os":"ubuntu-lts","diskType":"standard-ssd","useCase":"web-app","region":"europe"},"providers":["aws"]}`
	estimatesJSON = `[{"provider":"aws","instanceType":"t3.large","monthlyCost":146.51,"yearlyCost":1670.21,"isMostEconomical":true}]`
)

func newMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return NewPostgresStoreWithDB(db), mock
}

func TestPostgresCreateTables(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS analyses")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS analyses_user_created_idx")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.CreateTables(context.Background()))
}

func TestPostgresSave(t *testing.T) {
	fixedClock(t)
	store, mock := newMock(t)

	a := sampleAnalysis("alice", "Web tier")
	a.ID = "a1"

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analyses (id, user_id, title")).
		WithArgs("a1", "alice", "Web tier", configJSON, estimatesJSON, nil, nil,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Save(context.Background(), a))
	assert.Len(t, a.InputHash, 64)
}

func TestPostgresSaveRejectsInvalid(t *testing.T) {
	store, _ := newMock(t)
	err := store.Save(context.Background(), sampleAnalysis("", "t"))
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestPostgresGet(t *testing.T) {
	store, mock := newMock(t)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM analyses WHERE id = $1")).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"a1", "alice", "Web tier", []byte(configJSON), []byte(estimatesJSON),
			nil, []byte(`{"months":[1]}`), "hash", created, created,
		))

	a, err := store.Get(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.UserID)
	assert.Equal(t, types.RegionEurope, a.Config.Spec.Region)
	assert.Equal(t, []types.Provider{types.ProviderAWS}, a.Config.Providers)
	require.Len(t, a.Estimates, 1)
	assert.Equal(t, "t3.large", a.Estimates[0].InstanceType)
	assert.Nil(t, a.Advisory)
	assert.JSONEq(t, `{"months":[1]}`, string(a.Trends))
	assert.True(t, created.Equal(a.CreatedAt))
}

func TestPostgresGetNotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM analyses WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := store.Get(context.Background(), "missing")
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestPostgresGetBadColumn(t *testing.T) {
	store, mock := newMock(t)
	created := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM analyses WHERE id = $1")).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"a1", "alice", "t", []byte(`{`), []byte(estimatesJSON), nil, nil, "hash", created, created,
		))

	_, err := store.Get(context.Background(), "a1")
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestPostgresList(t *testing.T) {
	store, mock := newMock(t)
	newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM analyses WHERE user_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3")).
		WithArgs("alice", 10, 5).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("b", "alice", "newer", []byte(configJSON), []byte(estimatesJSON), nil, nil, "h", newer, newer).
			AddRow("a", "alice", "older", []byte(configJSON), []byte(estimatesJSON), nil, nil, "h", older, older))

	list, err := store.List(context.Background(), ListFilter{UserID: "alice", Limit: 10, Offset: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"newer", "older"}, titles(list))
}

func TestPostgresListAll(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM analyses ORDER BY created_at DESC, id")).
		WithoutArgs().
		WillReturnRows(sqlmock.NewRows(columns))

	list, err := store.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPostgresListQueryError(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

	_, err := store.List(context.Background(), ListFilter{})
	assert.True(t, errors.IsType(err, errors.TypeInternal))
}

func TestPostgresUpdate(t *testing.T) {
	fixedClock(t)
	store, mock := newMock(t)
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM analyses WHERE id = $1")).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"a1", "alice", "draft", []byte(configJSON), []byte(estimatesJSON), nil, nil, "hash", created, created,
		))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE analyses SET title = $2")).
		WithArgs("a1", "final", configJSON, estimatesJSON, nil, "hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	title := "final"
	a, err := store.Update(context.Background(), "a1", Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "final", a.Title)
	assert.True(t, a.UpdatedAt.After(created))
}

func TestPostgresDelete(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM analyses WHERE id = $1 AND user_id = $2")).
		WithArgs("a1", "mallory").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM analyses WHERE id = $1 AND user_id = $2")).
		WithArgs("a1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectClose()

	err := store.Delete(context.Background(), "a1", "mallory")
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	require.NoError(t, store.Delete(context.Background(), "a1", "alice"))
	require.NoError(t, store.Close())
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

var clinicColumns = []string{"id", "name", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

func TestClinicRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	m := metrics.NewMetrics(prometheus.NewRegistry(), "test", "repo")
	repo := NewClinicRepository(db, m)

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clinics (name)")).
		WithArgs("Clínica Centro").
		WillReturnRows(sqlmock.NewRows(clinicColumns).AddRow(id.String(), "Clínica Centro", now, now))

	clinic := &model.Clinic{Name: "Clínica Centro"}
	require.NoError(t, repo.Create(context.Background(), clinic))

	assert.Equal(t, id, clinic.ID)
	assert.Equal(t, now, clinic.CreatedAt)
	require.NotNil(t, clinic.UpdatedAt)
	assert.Equal(t, now, *clinic.UpdatedAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("clinic_create", "success")))
}

func TestClinicRepositoryGet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClinicRepository(db, nil)

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM clinics")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(clinicColumns).AddRow(id.String(), "Clínica Centro", now, nil))

	clinic, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Clínica Centro", clinic.Name)
	assert.Nil(t, clinic.UpdatedAt)
}

func TestClinicRepositoryGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	m := metrics.NewMetrics(prometheus.NewRegistry(), "test", "repo")
	repo := NewClinicRepository(db, m)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM clinics")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), id)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("clinic_get", "error")))
}

func TestClinicRepositoryList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClinicRepository(db, nil)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("name ILIKE")).
		WithArgs("centro").
		WillReturnRows(sqlmock.NewRows(clinicColumns).
			AddRow(uuid.NewString(), "Clínica Centro", now, now).
			AddRow(uuid.NewString(), "Centro Médico", now, nil))

	clinics, err := repo.List(context.Background(), model.ClinicFilter{Search: "centro"})
	require.NoError(t, err)
	require.Len(t, clinics, 2)
	assert.Equal(t, "Centro Médico", clinics[1].Name)
}

func TestClinicRepositoryListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClinicRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clinics")).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows(clinicColumns))

	clinics, err := repo.List(context.Background(), model.ClinicFilter{})
	require.NoError(t, err)
	assert.NotNil(t, clinics)
	assert.Empty(t, clinics)
}

func TestClinicRepositoryRename(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClinicRepository(db, nil)

	id := uuid.New()
	created := time.Now().Add(-time.Hour).UTC()
	updated := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE clinics")).
		WithArgs("Nova", id).
		WillReturnRows(sqlmock.NewRows(clinicColumns).AddRow(id.String(), "Nova", created, updated))

	clinic := &model.Clinic{Base: model.Base{ID: id}, Name: "Nova"}
	require.NoError(t, repo.Rename(context.Background(), clinic))
	assert.Equal(t, created, clinic.CreatedAt)
	require.NotNil(t, clinic.UpdatedAt)
	assert.Equal(t, updated, *clinic.UpdatedAt)
}

func TestClinicRepositoryRenameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClinicRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE clinics")).
		WillReturnRows(sqlmock.NewRows(clinicColumns))

	err := repo.Rename(context.Background(), &model.Clinic{Base: model.Base{ID: uuid.New()}, Name: "Nova"})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestClinicRepositoryDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClinicRepository(db, nil)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clinics WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), id))
}

func TestClinicRepositoryDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClinicRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clinics")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestClinicRepositoryDeleteError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClinicRepository(db, nil)

	boom := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clinics")).
		WillReturnError(boom)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.False(t, apperrors.Is(err, apperrors.ErrNotFound))
}

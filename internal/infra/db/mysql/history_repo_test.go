package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mkkalpana/text-morph/internal/domain/analysis"
)

func TestHistorySave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := &domain.Record{
		UserID:                  42,
		AnalysisType:            domain.TypeText,
		FleschKincaidGradeLevel: 4.2,
		GunningFogIndex:         6.1,
		SMOGIndex:               5.4,
		CreatedAt:               now,
	}

	mock.ExpectExec("INSERT INTO analysis_history").
		WithArgs(int64(42), nil, domain.TypeText, 4.2, 6.1, 5.4, now).
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := NewHistoryRepository(db)
	require.NoError(t, repo.Save(context.Background(), rec))
	assert.Equal(t, int64(7), rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{
		"id", "user_id", "file_name", "analysis_type",
		"flesch_kincaid_grade_level", "gunning_fog_index", "smog_index", "created_at",
	}
	rows := sqlmock.NewRows(cols).
		AddRow(int64(9), int64(42), "essay.pdf", "file", 8.3, 10.1, 9.2, now).
		AddRow(int64(8), int64(42), nil, "text", 4.2, 6.1, 5.4, now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM analysis_history").
		WithArgs(int64(42), 20).
		WillReturnRows(rows)

	repo := NewHistoryRepository(db)
	recs, err := repo.Latest(context.Background(), 42, 20)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	require.NotNil(t, recs[0].FileName)
	assert.Equal(t, "essay.pdf", *recs[0].FileName)
	assert.Equal(t, domain.TypeFile, recs[0].AnalysisType)
	assert.Nil(t, recs[1].FileName)
	assert.Equal(t, domain.TypeText, recs[1].AnalysisType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryLatestDefaultsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM analysis_history").
		WithArgs(int64(42), 20).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "file_name", "analysis_type",
			"flesch_kincaid_grade_level", "gunning_fog_index", "smog_index", "created_at",
		}))

	repo := NewHistoryRepository(db)
	recs, err := repo.Latest(context.Background(), 42, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

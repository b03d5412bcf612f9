package mysql

import (
	"context"
	"database/sql"

	domain "github.com/mkkalpana/text-morph/internal/domain/analysis"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save appends one analysis record. History rows are never updated.
func (r *HistoryRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO analysis_history
(user_id, file_name, analysis_type, flesch_kincaid_grade_level, gunning_fog_index, smog_index, created_at)
VALUES (?,?,?,?,?,?,?);`

	res, err := r.db.ExecContext(ctx, q,
		rec.UserID, rec.FileName, rec.AnalysisType,
		rec.FleschKincaidGradeLevel, rec.GunningFogIndex, rec.SMOGIndex,
		rec.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	return nil
}

// Latest returns a user's newest records, newest first.
func (r *HistoryRepository) Latest(ctx context.Context, userID int64, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, user_id, file_name, analysis_type,
       flesch_kincaid_grade_level, gunning_fog_index, smog_index, created_at
FROM analysis_history
WHERE user_id=? ORDER BY created_at DESC, id DESC LIMIT ?;`

	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		var rec domain.Record
		var fileName sql.NullString
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &fileName, &rec.AnalysisType,
			&rec.FleschKincaidGradeLevel, &rec.GunningFogIndex, &rec.SMOGIndex,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if fileName.Valid {
			rec.FileName = &fileName.String
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

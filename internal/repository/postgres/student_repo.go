// internal/repository/postgres/student_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"acadetrack-service/internal/domain/student"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// StudentRepository stores the whole student record as a single jsonb
// document per identity. Reads that fail to decode degrade to an empty
// record rather than surfacing an error to the caller.
type StudentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewStudentRepository(db *pgxpool.Pool, logger *zap.Logger) *StudentRepository {
	return &StudentRepository{db: db, logger: logger}
}

func (r *StudentRepository) LoadRecord(ctx context.Context, identityID int64) (*student.Record, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT data FROM student_records WHERE identity_id = $1`,
		identityID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return student.EmptyRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load student record: %w", err)
	}

	var rec student.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		r.logger.Warn("corrupt student record, resetting to empty",
			zap.Int64("identity_id", identityID),
			zap.Error(err))
		return student.EmptyRecord(), nil
	}
	rec.Normalize()
	return &rec, nil
}

func (r *StudentRepository) SaveRecord(ctx context.Context, identityID int64, rec *student.Record) error {
	rec.Normalize()
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode student record: %w", err)
	}

	query := `
		INSERT INTO student_records (identity_id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (identity_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, identityID, raw); err != nil {
		return fmt.Errorf("failed to save student record: %w", err)
	}
	return nil
}

func (r *StudentRepository) DeleteRecord(ctx context.Context, identityID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM student_records WHERE identity_id = $1`,
		identityID,
	)
	return err
}

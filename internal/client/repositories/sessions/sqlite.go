package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/common"
	"github.com/dmitrijs2005/tutorit/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sessionColumns = `id, student_id, student_name, tutor_id, tutor_name, subject, topic,
	date_time, duration, session_type, notes, status, rating, feedback, price`

func upsertSession(ctx context.Context, db dbx.DBTX, s *models.Session) error {
	query := `INSERT INTO sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			student_id = excluded.student_id,
			student_name = excluded.student_name,
			tutor_id = excluded.tutor_id,
			tutor_name = excluded.tutor_name,
			subject = excluded.subject,
			topic = excluded.topic,
			date_time = excluded.date_time,
			duration = excluded.duration,
			session_type = excluded.session_type,
			notes = excluded.notes,
			status = excluded.status,
			rating = excluded.rating,
			feedback = excluded.feedback,
			price = excluded.price
	`
	var price sql.NullString
	if s.Price != nil {
		price = sql.NullString{String: s.Price.String(), Valid: true}
	}
	_, err := db.ExecContext(ctx, query,
		s.ID, s.StudentID, s.StudentName, s.TutorID, s.TutorName, s.Subject, s.Topic,
		s.DateTime.UTC().Format(time.RFC3339), s.Duration, s.SessionType, s.Notes,
		string(s.Status), s.Rating, s.Feedback, price)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

func scanSession(scan func(dest ...any) error) (*models.Session, error) {
	var (
		s        models.Session
		dateTime string
		status   string
		price    sql.NullString
	)
	if err := scan(&s.ID, &s.StudentID, &s.StudentName, &s.TutorID, &s.TutorName,
		&s.Subject, &s.Topic, &dateTime, &s.Duration, &s.SessionType, &s.Notes,
		&status, &s.Rating, &s.Feedback, &price); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339, dateTime)
	if err != nil {
		return nil, fmt.Errorf("parse cached date_time: %w", err)
	}
	s.DateTime = ts
	s.Status = models.SessionStatus(status)
	if price.Valid {
		d, err := decimal.NewFromString(price.String)
		if err != nil {
			return nil, fmt.Errorf("parse cached price: %w", err)
		}
		s.Price = &d
	}
	return &s, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, s *models.Session) error {
	return upsertSession(ctx, r.db, s)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY date_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to select sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ReplaceAll swaps the cached snapshot in one transaction so a reader never
// observes a half-applied refresh.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, all []models.Session) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
			return fmt.Errorf("failed to clear sessions: %w", err)
		}
		for i := range all {
			if err := upsertSession(ctx, tx, &all[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Package postgres is the durable form store. Field lists and answer sets
// are stored as JSONB payloads; recipients live in their own rows so a
// submission touches exactly one row (single writer per recipient).
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"onboard/internal/onboarding/models"
	"onboard/pkg/sentinel"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the form tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS onboarding_forms (
    token      TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    fields     JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS onboarding_recipients (
    token            TEXT NOT NULL REFERENCES onboarding_forms(token) ON DELETE CASCADE,
    email            TEXT NOT NULL,
    name             TEXT NOT NULL DEFAULT '',
    type             TEXT NOT NULL DEFAULT 'candidate',
    completed_fields JSONB NOT NULL DEFAULT '[]',
    completed_at     TIMESTAMPTZ,
    PRIMARY KEY (token, email)
);
CREATE INDEX IF NOT EXISTS idx_onboarding_recipients_email ON onboarding_recipients (email);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate onboarding tables: %w", err)
	}
	return nil
}

func (s *Store) SaveForm(ctx context.Context, form *models.FormSchema) error {
	fieldsJSON, err := json.Marshal(form.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO onboarding_forms (token, title, fields, created_at) VALUES ($1, $2, $3, $4)`,
		form.Token, form.Title, fieldsJSON, form.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert form: %w", err)
	}

	for _, rec := range form.Recipients {
		if err := upsertRecipientTx(ctx, tx, form.Token, rec); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit form: %w", err)
	}
	return nil
}

func (s *Store) FindByToken(ctx context.Context, token string) (*models.FormSchema, error) {
	form := &models.FormSchema{Token: token}
	var fieldsJSON []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT title, fields, created_at FROM onboarding_forms WHERE token = $1`,
		token,
	).Scan(&form.Title, &fieldsJSON, &form.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select form: %w", err)
	}
	if err := json.Unmarshal(fieldsJSON, &form.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}

	if form.Recipients, err = s.recipients(ctx, token); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *Store) UpsertRecipient(ctx context.Context, token string, rec models.Recipient) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM onboarding_forms WHERE token = $1)`, token,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check form: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return upsertRecipientTx(ctx, s.db, token, rec)
}

func (s *Store) ListByRecipient(ctx context.Context, email string) ([]*models.FormSchema, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT f.token
		   FROM onboarding_forms f
		   JOIN onboarding_recipients r ON r.token = f.token
		  WHERE r.email = $1
		  ORDER BY f.created_at DESC, f.token`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("select forms by recipient: %w", err)
	}
	defer rows.Close()
	return s.collect(ctx, rows)
}

func (s *Store) ListForms(ctx context.Context) ([]*models.FormSchema, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT token FROM onboarding_forms ORDER BY created_at DESC, token`,
	)
	if err != nil {
		return nil, fmt.Errorf("select forms: %w", err)
	}
	defer rows.Close()
	return s.collect(ctx, rows)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertRecipientTx(ctx context.Context, ex execer, token string, rec models.Recipient) error {
	answers := rec.CompletedFields
	if answers == nil {
		answers = []models.AnsweredField{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	var completedAt sql.NullTime
	if rec.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *rec.CompletedAt, Valid: true}
	}

	_, err = ex.ExecContext(ctx,
		`INSERT INTO onboarding_recipients (token, email, name, type, completed_fields, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (token, email) DO UPDATE
		    SET name = EXCLUDED.name,
		        type = EXCLUDED.type,
		        completed_fields = EXCLUDED.completed_fields,
		        completed_at = EXCLUDED.completed_at`,
		token, rec.Email, rec.Name, string(rec.Type), answersJSON, completedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert recipient: %w", err)
	}
	return nil
}

func (s *Store) collect(ctx context.Context, rows *sql.Rows) ([]*models.FormSchema, error) {
	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate forms: %w", err)
	}

	var out []*models.FormSchema
	for _, token := range tokens {
		form, err := s.FindByToken(ctx, token)
		if err != nil {
			return nil, err
		}
		out = append(out, form)
	}
	return out, nil
}

func (s *Store) recipients(ctx context.Context, token string) ([]models.Recipient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email, name, type, completed_fields, completed_at
		   FROM onboarding_recipients WHERE token = $1 ORDER BY email`,
		token,
	)
	if err != nil {
		return nil, fmt.Errorf("select recipients: %w", err)
	}
	defer rows.Close()

	var out []models.Recipient
	for rows.Next() {
		var (
			rec         models.Recipient
			recType     string
			answersJSON []byte
			completedAt sql.NullTime
		)
		if err := rows.Scan(&rec.Email, &rec.Name, &recType, &answersJSON, &completedAt); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		rec.Type = models.RecipientType(recType)
		if err := json.Unmarshal(answersJSON, &rec.CompletedFields); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		if completedAt.Valid {
			ts := completedAt.Time
			rec.CompletedAt = &ts
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipients: %w", err)
	}
	return out, nil
}

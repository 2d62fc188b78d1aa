package people

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"onboard/pkg/sentinel"
)

// PostgresStore is the durable directory store.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the people table when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS people (
    email      TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    type       TEXT NOT NULL,
    phone      TEXT NOT NULL DEFAULT '',
    department TEXT NOT NULL DEFAULT '',
    resume_ref TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL
);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate people table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Upsert(ctx context.Context, person Person) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO people (email, name, type, phone, department, resume_ref, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (email) DO UPDATE
		    SET name = EXCLUDED.name,
		        type = EXCLUDED.type,
		        phone = EXCLUDED.phone,
		        department = EXCLUDED.department,
		        resume_ref = EXCLUDED.resume_ref`,
		person.Email, person.Name, string(person.Type), person.Phone,
		person.Department, person.ResumeRef, person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert person: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Person, error) {
	var (
		p          Person
		personType string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT email, name, type, phone, department, resume_ref, created_at
		   FROM people WHERE email = $1`,
		email,
	).Scan(&p.Email, &p.Name, &personType, &p.Phone, &p.Department, &p.ResumeRef, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select person: %w", err)
	}
	p.Type = Type(personType)
	return &p, nil
}

func (s *PostgresStore) List(ctx context.Context, personType Type) ([]Person, error) {
	query := `SELECT email, name, type, phone, department, resume_ref, created_at FROM people ORDER BY email`
	args := []any{}
	if personType != "" {
		query = `SELECT email, name, type, phone, department, resume_ref, created_at FROM people WHERE type = $1 ORDER BY email`
		args = append(args, string(personType))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select people: %w", err)
	}
	defer rows.Close()

	var out []Person
	for rows.Next() {
		var (
			p  Person
			pt string
		)
		if err := rows.Scan(&p.Email, &p.Name, &pt, &p.Phone, &p.Department, &p.ResumeRef, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		p.Type = Type(pt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return out, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/planny/planny-backend/internal/people/domain"
)

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListClients(ctx context.Context) ([]domain.Client, error) {
	const q = `
SELECT id, company_name, COALESCE(contact_email, '')
FROM clients
ORDER BY company_name;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Client, 0, 16)
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.ContactEmail); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) CreateClient(ctx context.Context, c *domain.Client) error {
	const q = `
INSERT INTO clients (company_name, contact_email)
VALUES ($1, NULLIF($2, ''))
RETURNING id;
`
	if strings.TrimSpace(c.CompanyName) == "" {
		return fmt.Errorf("company name required")
	}
	return r.db.QueryRowContext(ctx, q, c.CompanyName, c.ContactEmail).Scan(&c.ID)
}

func (r *Repository) ListDevelopers(ctx context.Context) ([]domain.Developer, error) {
	const q = `
SELECT id, first_name, last_name, COALESCE(email, '')
FROM developers
ORDER BY first_name, last_name;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Developer, 0, 16)
	for rows.Next() {
		var d domain.Developer
		if err := rows.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Email); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) CreateDeveloper(ctx context.Context, d *domain.Developer) error {
	const q = `
INSERT INTO developers (first_name, last_name, email)
VALUES ($1, $2, NULLIF($3, ''))
RETURNING id;
`
	if strings.TrimSpace(d.FirstName) == "" {
		return fmt.Errorf("first name required")
	}
	return r.db.QueryRowContext(ctx, q, d.FirstName, d.LastName, d.Email).Scan(&d.ID)
}

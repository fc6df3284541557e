package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/deadline-tracker/internal/domain"
)

// documentRowID is the primary key of the only row in app_state.
const documentRowID = 1

// Querier is the subset of *pgxpool.Pool the document store needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps the whole document as one jsonb row.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore returns a Postgres-backed document store.
func NewPostgresStore(db Querier) (*PostgresStore, error) {
	if db == nil {
		return nil, errors.New("postgres store requires a connection pool")
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (*domain.Document, error) {
	const query = `SELECT document::text FROM app_state WHERE id = $1`

	var raw string
	if err := s.db.QueryRow(ctx, query, documentRowID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("select app_state: %w", err)
	}

	doc := domain.NewDocument()
	if err := json.Unmarshal([]byte(raw), doc); err != nil {
		return nil, fmt.Errorf("decode app_state: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) Save(ctx context.Context, doc *domain.Document) error {
	const query = `
        INSERT INTO app_state (id, document, updated_at)
        VALUES ($1, $2::jsonb, NOW())
        ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, documentRowID, string(data)); err != nil {
		return fmt.Errorf("upsert app_state: %w", err)
	}
	return nil
}

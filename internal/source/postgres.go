// Package source loads catalog documents from their system of record. The
// engine only sees the Source interface; this package binds it to the
// Postgres JSONB document table.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/edufinder/campus-search/internal/engine/document"
	"github.com/edufinder/campus-search/pkg/postgres"
)

// PostgresSource fetches the full institute document set from a table of
// (id, doc JSONB) rows.
type PostgresSource struct {
	client *postgres.Client
	table  string
	logger *slog.Logger
}

// NewPostgres creates a PostgresSource reading from the given table.
func NewPostgres(client *postgres.Client, table string) *PostgresSource {
	return &PostgresSource{
		client: client,
		table:  table,
		logger: slog.Default().With("component", "source"),
	}
}

// FetchAll loads every document. Rows whose JSONB fails to decode are
// logged and skipped rather than failing the whole build.
func (s *PostgresSource) FetchAll(ctx context.Context) ([]document.Institute, error) {
	query := fmt.Sprintf("SELECT id, doc FROM %s ORDER BY id", s.table)
	rows, err := s.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.table, err)
	}
	defer rows.Close()

	var docs []document.Institute
	var malformed int
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var inst document.Institute
		if err := json.Unmarshal(raw, &inst); err != nil {
			malformed++
			s.logger.Warn("skipping malformed document", "id", id, "error", err)
			continue
		}
		if inst.ID == "" {
			inst.ID = id
		}
		docs = append(docs, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	s.logger.Info("documents fetched", "count", len(docs), "malformed", malformed)
	return docs, nil
}

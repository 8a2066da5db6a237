// Command seeder loads institute JSON documents into the Postgres source
// table and publishes a rebuild trigger so running catalog instances pick
// up the new data.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/edufinder/campus-search/internal/engine/document"
	"github.com/edufinder/campus-search/internal/server"
	"github.com/edufinder/campus-search/pkg/config"
	"github.com/edufinder/campus-search/pkg/kafka"
	"github.com/edufinder/campus-search/pkg/logger"
	"github.com/edufinder/campus-search/pkg/postgres"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	dataDir := flag.String("dir", "data", "directory of institute JSON files")
	notify := flag.Bool("notify", true, "publish a rebuild trigger after seeding")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	client, err := postgres.New(cfg.Postgres)
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()
	table := cfg.Engine.SourceTable

	if err := ensureTable(ctx, client, table); err != nil {
		slog.Error("failed to create source table", "table", table, "error", err)
		os.Exit(1)
	}

	docs, err := loadDocuments(*dataDir)
	if err != nil {
		slog.Error("failed to load documents", "dir", *dataDir, "error", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		slog.Warn("no documents found", "dir", *dataDir)
		return
	}

	if err := upsertAll(ctx, client, table, docs); err != nil {
		slog.Error("failed to seed documents", "error", err)
		os.Exit(1)
	}
	slog.Info("documents seeded", "count", len(docs), "table", table)

	if *notify {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.CatalogRebuild)
		defer producer.Close()
		msg := server.RebuildMessage{Reason: "seed", RequestedAt: time.Now().UTC()}
		if err := producer.Publish(ctx, kafka.Event{Key: "seed", Value: msg}); err != nil {
			slog.Warn("failed to publish rebuild trigger", "error", err)
		} else {
			slog.Info("rebuild trigger published", "topic", cfg.Kafka.Topics.CatalogRebuild)
		}
	}
}

func ensureTable(ctx context.Context, client *postgres.Client, table string) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, table)
	_, err := client.DB.ExecContext(ctx, ddl)
	return err
}

// loadDocuments reads every .json file under dir; a file may hold a single
// institute object or an array of them.
func loadDocuments(dir string) ([]document.Institute, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var docs []document.Institute
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var many []document.Institute
		if err := json.Unmarshal(raw, &many); err == nil {
			docs = append(docs, many...)
			continue
		}
		var one document.Institute
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		docs = append(docs, one)
	}
	return docs, nil
}

func upsertAll(ctx context.Context, client *postgres.Client, table string, docs []document.Institute) error {
	stmt := fmt.Sprintf(`INSERT INTO %s (id, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`, table)

	return client.InTx(ctx, func(tx *sql.Tx) error {
		for i := range docs {
			doc := docs[i]
			if doc.ID == "" {
				return fmt.Errorf("document %q has no id", doc.Name)
			}
			raw, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("marshaling document %s: %w", doc.ID, err)
			}
			if _, err := tx.ExecContext(ctx, stmt, doc.ID, raw); err != nil {
				return fmt.Errorf("upserting document %s: %w", doc.ID, err)
			}
		}
		return nil
	})
}

package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  document_id      TEXT        PRIMARY KEY,
  document_name    TEXT        NOT NULL,
  document_type    TEXT        NOT NULL,
  document_content TEXT        NOT NULL DEFAULT '',
  file_path        TEXT        NOT NULL DEFAULT '',
  blob_key         TEXT        NOT NULL DEFAULT '',
  content_size     BIGINT      NOT NULL CHECK (content_size >= 0),
  upload_date      TIMESTAMPTZ NOT NULL,
  last_modified    TIMESTAMPTZ NOT NULL,
  analysis_results TEXT        NOT NULL,
  status           TEXT        NOT NULL
);`,
	},
	{
		Name: "create_index_documents_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_name ON documents (lower(document_name));`,
	},
	{
		Name: "create_index_documents_type",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_type ON documents (document_type);`,
	},
	{
		Name: "create_index_documents_status_upload_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_status_upload_date ON documents (status, upload_date DESC);`,
	},
	{
		Name: "create_table_todo_items",
		SQL: `CREATE TABLE IF NOT EXISTS todo_items (
  id               BIGSERIAL   PRIMARY KEY,
  email_address    TEXT        NOT NULL,
  task_description TEXT        NOT NULL,
  email_context    TEXT        NOT NULL,
  document_title   TEXT        NOT NULL,
  status           TEXT        NOT NULL,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_todo_items_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_todo_items_created_at ON todo_items (created_at DESC);`,
	},
	{
		Name: "create_table_analyses",
		SQL: `CREATE TABLE IF NOT EXISTS analyses (
  analysis_id    TEXT        PRIMARY KEY,
  document_title TEXT        NOT NULL,
  analysis_type  TEXT        NOT NULL,
  analysis_date  TIMESTAMPTZ NOT NULL,
  document_text  TEXT        NOT NULL,
  clauses        JSONB       NOT NULL,
  risks          JSONB       NOT NULL,
  suggestions    JSONB       NOT NULL,
  risk_level     TEXT        NOT NULL,
  status         TEXT        NOT NULL
);`,
	},
	{
		Name: "create_index_analyses_document_title",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_analyses_document_title ON analyses (document_title);`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}

package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT value FROM app_state WHERE key = ?"
		if result := dialect.RewriteQuery(query); result != query {
			t.Errorf("RewriteQuery() = %v, want unchanged query", result)
		}
	})

	t.Run("UpsertStateQuery", func(t *testing.T) {
		if !strings.Contains(dialect.UpsertStateQuery(), "ON CONFLICT") {
			t.Error("UpsertStateQuery() should use ON CONFLICT for SQLite")
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "INSERT INTO app_state (key, value) VALUES (?, ?)"
		result := dialect.RewriteQuery(query)
		expected := "INSERT INTO app_state (key, value) VALUES ($1, $2)"
		if result != expected {
			t.Errorf("RewriteQuery() = %v, want %v", result, expected)
		}
	})

	t.Run("UpsertStateQuery", func(t *testing.T) {
		if !strings.Contains(dialect.UpsertStateQuery(), "ON CONFLICT") {
			t.Error("UpsertStateQuery() should use ON CONFLICT for PostgreSQL")
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT `value` FROM app_state WHERE `key` = ?"
		if result := dialect.RewriteQuery(query); result != query {
			t.Errorf("RewriteQuery() = %v, want unchanged query", result)
		}
	})

	t.Run("UpsertStateQuery", func(t *testing.T) {
		if !strings.Contains(dialect.UpsertStateQuery(), "ON DUPLICATE KEY UPDATE") {
			t.Error("UpsertStateQuery() should use ON DUPLICATE KEY UPDATE for MySQL")
		}
	})

	t.Run("GetStateQuery quotes reserved words", func(t *testing.T) {
		if !strings.Contains(dialect.GetStateQuery(), "`key`") {
			t.Error("GetStateQuery() must backtick-quote the key column for MySQL")
		}
	})
}

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "single placeholder",
			query:    "DELETE FROM app_state WHERE key = ?",
			expected: "DELETE FROM app_state WHERE key = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "INSERT INTO app_state (key, value) VALUES (?, ?)",
			expected: "INSERT INTO app_state (key, value) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rewritePlaceholdersToNumbered(tt.query)
			if result != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %v, want %v", result, tt.expected)
			}
		})
	}
}

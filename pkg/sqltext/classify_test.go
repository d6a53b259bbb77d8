package sqltext

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		sql  string
		want StatementType
	}{
		{"SELECT * FROM users", Fetch},
		{"select id from t where x = :x", Fetch},
		{"  \n SELECT 1", Fetch},
		{"VALUES (1), (2)", Fetch},
		{"SHOW TABLES", Fetch},
		{"EXPLAIN SELECT 1", Fetch},
		{"DESCRIBE users", Fetch},
		{"DESC users", Fetch},
		{"TABLE users", Fetch},
		{"PRAGMA table_info(users)", Fetch},

		{"INSERT INTO users VALUES (1)", Execute},
		{"UPDATE users SET x = 1", Execute},
		{"DELETE FROM users", Execute},
		{"CREATE TABLE t (id INTEGER)", Execute},
		{"DROP TABLE t", Execute},
		{"ALTER TABLE t ADD COLUMN c TEXT", Execute},
		{"TRUNCATE t", Execute},
		{"MERGE INTO t USING s ON t.id = s.id", Execute},
		{"REPLACE INTO t VALUES (1)", Execute},
		{"GRANT SELECT ON t TO u", Execute},
		{"REVOKE SELECT ON t FROM u", Execute},

		// RETURNING does not flip the type; the primary verb wins.
		{"INSERT INTO users (name) VALUES (:name) RETURNING id", Execute},
		{"DELETE FROM users WHERE id = :id RETURNING *", Execute},

		// Comments are stripped before inspection.
		{"-- describe what this does\nSELECT 1", Fetch},
		{"/* leading */ UPDATE t SET x = 1", Execute},

		// Literals stay intact.
		{"SELECT '--not a comment'", Fetch},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			got, err := Classify(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyCTE(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want StatementType
	}{
		{
			name: "cte ending in select",
			sql:  "WITH cte AS (SELECT 1) SELECT * FROM cte",
			want: Fetch,
		},
		{
			name: "cte ending in insert",
			sql:  "WITH cte AS (SELECT 1) INSERT INTO t SELECT * FROM cte",
			want: Execute,
		},
		{
			name: "cte ending in delete",
			sql:  "WITH old AS (SELECT id FROM t WHERE ts < :cutoff) DELETE FROM t WHERE id IN (SELECT id FROM old)",
			want: Execute,
		},
		{
			name: "cte ending in update",
			sql:  "WITH ranked AS (SELECT id FROM t) UPDATE t SET x = 1 WHERE id IN (SELECT id FROM ranked)",
			want: Execute,
		},
		{
			name: "recursive cte",
			sql:  "WITH RECURSIVE nums AS (SELECT 1 UNION ALL SELECT n + 1 FROM nums) SELECT * FROM nums",
			want: Fetch,
		},
		{
			name: "multiple ctes",
			sql:  "WITH a AS (SELECT 1), b AS (SELECT 2) SELECT * FROM a JOIN b",
			want: Fetch,
		},
		{
			name: "nested parens in cte body",
			sql:  "WITH a AS (SELECT (1 + (2 * 3))) SELECT * FROM a",
			want: Fetch,
		},
		{
			name: "cte named after a fetch keyword",
			sql:  "WITH values AS (SELECT id FROM t) DELETE FROM t WHERE id IN (SELECT id FROM values)",
			want: Execute,
		},
		{
			name: "cte named after an execute keyword",
			sql:  "WITH delete AS (SELECT id FROM t) SELECT * FROM delete",
			want: Fetch,
		},
		{
			name: "keyword-named cte with column list",
			sql:  "WITH values (id) AS (SELECT 1) DELETE FROM t WHERE id IN (SELECT id FROM values)",
			want: Execute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		keyword string
	}{
		{name: "made up keyword", sql: "FROBNICATE users", keyword: "FROBNICATE"},
		{name: "begin", sql: "BEGIN TRANSACTION", keyword: "BEGIN"},
		{name: "with without main clause", sql: "WITH cte AS (SELECT 1)", keyword: "WITH"},
		{name: "empty input", sql: "", keyword: ""},
		{name: "comment only", sql: "-- nothing", keyword: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.sql)
			require.Error(t, err)
			var unknown *UnknownStatementError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, tt.keyword, unknown.Keyword)
		})
	}
}

// Every keyword in the direct-mapping table classifies without error,
// no matter how complex the trailing body is.
func TestClassifyTotality(t *testing.T) {
	for keyword, want := range statementKeywords {
		t.Run(keyword, func(t *testing.T) {
			sql := fmt.Sprintf("%s something complex (nested (deeply)) 'quoted ; text'", keyword)
			got, err := Classify(sql)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestHasReturning(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"INSERT INTO t (a) VALUES (:a) RETURNING id", true},
		{"DELETE FROM t RETURNING *", true},
		{"insert into t values (1) returning id", true},
		{"SELECT * FROM t", false},
		{"SELECT 'RETURNING' FROM t", false},
		{"SELECT returning_flag FROM t", false},
		{"UPDATE t SET note = 'no returning here'", false},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.want, HasReturning(tt.sql))
		})
	}
}

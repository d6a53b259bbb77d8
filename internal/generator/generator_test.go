package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlgen/internal/testutil"
	"github.com/leapstack-labs/sqlgen/pkg/template"
)

const usersTemplate = `# UserRepository
#get_user_by_id
SELECT id, username FROM users WHERE id = :user_id;

#create_user
INSERT INTO users (username, email) VALUES (:username, :email) RETURNING id;

#purge_inactive
DELETE FROM users WHERE status = :status;
`

func parseUsers(t *testing.T) *template.File {
	t.Helper()
	file, err := template.Parse("users.sql", usersTemplate)
	require.NoError(t, err)
	return file
}

func TestRender(t *testing.T) {
	g := New("repo", nil)
	src, err := g.Render(parseUsers(t))
	require.NoError(t, err)

	code := string(src)
	assert.Contains(t, code, "package repo")
	assert.Contains(t, code, "// Code generated by sqlgen from users.sql. DO NOT EDIT.")
	assert.Contains(t, code, "type UserRepository struct")
	assert.Contains(t, code, "type UserRepositoryDB interface")

	// Fetch method queries.
	assert.Contains(t, code, "func (r *UserRepository) GetUserByID(ctx context.Context, userID any) (*sql.Rows, error)")
	assert.Contains(t, code, "r.db.QueryContext(ctx, getUserByIDSQL, userID)")

	// Execute with RETURNING still queries, but stays execute in docs.
	assert.Contains(t, code, "// CreateUser runs the create_user statement (execute, returns rows).")
	assert.Contains(t, code, "func (r *UserRepository) CreateUser(ctx context.Context, username any, email any) (*sql.Rows, error)")

	// Plain execute method execs.
	assert.Contains(t, code, "func (r *UserRepository) PurgeInactive(ctx context.Context, status any) (sql.Result, error)")
	assert.Contains(t, code, "r.db.ExecContext(ctx, purgeInactiveSQL, status)")

	// Placeholders rewritten.
	assert.Contains(t, code, "WHERE id = ?")
	assert.NotContains(t, code, ":user_id")
}

func TestRenderCommentedTokenStaysInert(t *testing.T) {
	content := "# NoteRepo\n#get_note\n-- fetched by :note\nSELECT * FROM notes WHERE id = :note_id;\n"
	file, err := template.Parse("notes.sql", content)
	require.NoError(t, err)

	g := New("repo", nil)
	src, err := g.Render(file)
	require.NoError(t, err)

	code := string(src)
	assert.Contains(t, code, "func (r *NoteRepo) GetNote(ctx context.Context, noteID any) (*sql.Rows, error)")
	assert.Contains(t, code, "r.db.QueryContext(ctx, getNoteSQL, noteID)")
	assert.Contains(t, code, "-- fetched by :note", "comment text survives in the statement literal")
	assert.NotContains(t, code, "note,", "no binding for a commented token")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	g := New("repo", testutil.NewTestLogger(t))

	path, err := g.WriteFile(parseUsers(t), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "user_repository.go"), path)

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(src), "type UserRepository struct")
}

func TestGenerateAll(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "gen")

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
		return p
	}
	users := write("users.sql", usersTemplate)
	orders := write("orders.sql", "# OrderService\n#get_order\nSELECT * FROM orders WHERE id = :id;\n")

	g := New("repo", nil)
	written, err := g.GenerateAll([]string{users, orders}, out)
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(out, "user_repository.go"), written[0])
	assert.Equal(t, filepath.Join(out, "order_service.go"), written[1])
}

func TestGenerateAllParseFailure(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.sql")
	require.NoError(t, os.WriteFile(bad, []byte("no header\n"), 0o600))

	g := New("repo", nil)
	_, err := g.GenerateAll([]string{bad}, filepath.Join(dir, "gen"))
	require.Error(t, err)
	var missing *template.MissingClassNameError
	assert.ErrorAs(t, err, &missing)
}

func TestRewritePlaceholders(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		want  string
		order []string
	}{
		{
			name:  "repeated param binds per occurrence",
			sql:   "SELECT * FROM t WHERE a = :x AND b = :x",
			want:  "SELECT * FROM t WHERE a = ? AND b = ?",
			order: []string{"x", "x"},
		},
		{
			name:  "literal untouched",
			sql:   "SELECT ':x', y FROM t WHERE z = :z",
			want:  "SELECT ':x', y FROM t WHERE z = ?",
			order: []string{"z"},
		},
		{
			name:  "cast untouched",
			sql:   "SELECT a::integer FROM t",
			want:  "SELECT a::integer FROM t",
			order: nil,
		},
		{
			name:  "line comment untouched",
			sql:   "-- fetched by :note\nSELECT * FROM t WHERE id = :user_id",
			want:  "-- fetched by :note\nSELECT * FROM t WHERE id = ?",
			order: []string{"user_id"},
		},
		{
			name:  "block comment untouched",
			sql:   "/* :hint */ SELECT * FROM t WHERE id = :id",
			want:  "/* :hint */ SELECT * FROM t WHERE id = ?",
			order: []string{"id"},
		},
		{
			name:  "commented token does not shadow a real one",
			sql:   "SELECT * FROM t WHERE a = :x -- also :x and :y",
			want:  "SELECT * FROM t WHERE a = ? -- also :x and :y",
			order: []string{"x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, order := rewritePlaceholders(tt.sql)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.order, order)
		})
	}
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "GetUserByID", exportedName("get_user_by_id"))
	assert.Equal(t, "CreateUser", exportedName("create_user"))
	assert.Equal(t, "FetchAPIToken", exportedName("fetch_api_token"))
	assert.Equal(t, "userID", localName("user_id"))
	assert.Equal(t, "passwordHash", localName("password_hash"))
	assert.Equal(t, "user_repository.go", fileName("UserRepository"))
	assert.Equal(t, "order_service.go", fileName("OrderService"))
}

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	content := `-- creates the table
CREATE TABLE IF NOT EXISTS messages (
    network_id TEXT PRIMARY KEY,
    text TEXT
);

CREATE INDEX IF NOT EXISTS idx_messages_updated_at ON messages (updated_at DESC);
`
	stmts := SplitStatements(content)
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS messages")
	assert.Contains(t, stmts[1], "CREATE INDEX IF NOT EXISTS idx_messages_updated_at")
}

func TestSplitStatements_TrailingStatementWithoutSemicolon(t *testing.T) {
	stmts := SplitStatements("CREATE TABLE t (id INT)")
	require.Len(t, stmts, 1)
	assert.Equal(t, "CREATE TABLE t (id INT)", stmts[0])
}

func TestSplitStatements_CommentsAndBlanksOnly(t *testing.T) {
	assert.Empty(t, SplitStatements("-- nothing here\n\n   \n"))
}

package postgres

import (
	"context"
	"io/fs"
	"testing"

	"github.com/phrazzld/trello-manager/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsCreateEveryCardTable(t *testing.T) {
	files, err := fs.Glob(migrationsFS, MigrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var all string
	for _, f := range files {
		b, err := fs.ReadFile(migrationsFS, f)
		require.NoError(t, err)
		all += string(b)
	}

	assert.Contains(t, all, "-- +goose Up")
	assert.Contains(t, all, "-- +goose Down")
	for _, ct := range domain.CardTypes {
		assert.Contains(t, all, "CREATE TABLE IF NOT EXISTS "+TableName(ct))
	}
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	err := Migrate(context.Background(), nil, "fix", nil)
	assert.ErrorContains(t, err, `unsupported migration command "fix"`)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "bug_cards", TableName(domain.CardTypeBug))
	assert.Equal(t, "issue_cards", TableName(domain.CardTypeIssue))
	assert.Equal(t, "task_cards", TableName(domain.CardTypeTask))
}

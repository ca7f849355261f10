package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/subhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrate.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestManager_UpDownStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	m, err := NewManager(db, logger.NewNopLogger())
	require.NoError(t, err)

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].Applied)

	require.NoError(t, m.Up(ctx))

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	for _, model := range Models() {
		assert.True(t, db.Migrator().HasTable(model), "%T table missing", model)
	}

	// idempotent
	require.NoError(t, m.Up(ctx))

	statuses, err = m.Status(ctx)
	require.NoError(t, err)
	assert.True(t, statuses[0].Applied)
	assert.NotEmpty(t, statuses[0].AppliedAt)

	require.NoError(t, m.Down(ctx, 1))
	assert.False(t, db.Migrator().HasTable(&models.ClashConfigModel{}))

	version, err = m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	// nothing left to roll back
	assert.NoError(t, m.Down(ctx, 1))
}

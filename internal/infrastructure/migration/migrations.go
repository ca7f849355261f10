package migration

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/infrastructure/persistence/models"
)

// Models lists every persisted model in creation order.
func Models() []interface{} {
	return []interface{}{
		&models.NodeModel{},
		&models.NodeClientModel{},
		&models.UserModel{},
		&models.UserClientOptionModel{},
		&models.SubconverterModel{},
		&models.ClashConfigModel{},
	}
}

// goMigrations returns the schema history. Table DDL comes from the GORM
// models so MySQL and SQLite get matching schemas.
func goMigrations(db *gorm.DB) []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(1,
			&goose.GoFunc{RunTx: withGorm(db, func(tx *gorm.DB) error {
				return tx.Migrator().CreateTable(Models()...)
			})},
			&goose.GoFunc{RunTx: withGorm(db, func(tx *gorm.DB) error {
				all := Models()
				for i := len(all) - 1; i >= 0; i-- {
					if err := tx.Migrator().DropTable(all[i]); err != nil {
						return err
					}
				}
				return nil
			})},
		),
	}
}

// withGorm runs fn on a GORM session bound to goose's transaction.
func withGorm(db *gorm.DB, fn func(tx *gorm.DB) error) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, sqlTx *sql.Tx) error {
		session := db.Session(&gorm.Session{NewDB: true, Context: ctx})
		session.Statement.ConnPool = sqlTx
		return fn(session)
	}
}

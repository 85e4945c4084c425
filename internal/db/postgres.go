package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/contesthub/contest-api/internal/config"
	"github.com/contesthub/contest-api/internal/repository/dao"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return OpenPostgresWithURL(conf.DSN())
}

// OpenPostgresWithURL accepts either a key=value DSN or a postgres:// URL.
func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	zap.L().Info("connected to postgres")

	return db, nil
}

// Migrate creates or updates the schema. With reset, every table is dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		zap.L().Warn("dropping all tables")
		if err := dao.ResetTables(db); err != nil {
			return fmt.Errorf("dao.ResetTables -> %w", err)
		}
		return nil
	}

	if err := dao.InitTables(db); err != nil {
		return fmt.Errorf("dao.InitTables -> %w", err)
	}

	return nil
}

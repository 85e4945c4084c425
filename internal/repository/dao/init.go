package dao

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrUpdateFailed wraps storage failures that have no more specific meaning.
var ErrUpdateFailed = errors.New("failed to update")

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Contest{},
		&Prize{},
		&Criterion{},
		&ContestLike{},
		&Participation{},
		&Conversation{},
		&ConversationParticipant{},
		&Message{},
		&Entry{},
		&Attachment{},
		&Rating{},
	)
}

// ResetTables drops every table in the public schema and recreates the model tables.
func ResetTables(db *gorm.DB) error {
	if err := dropAllTables(db); err != nil {
		return err
	}

	return InitTables(db)
}

func dropAllTables(db *gorm.DB) error {
	db.Exec("SET CONSTRAINTS ALL DEFERRED;")

	var tableNames []string
	if err := db.Table("information_schema.tables").
		Where("table_schema = ?", "public").
		Pluck("table_name", &tableNames).Error; err != nil {
		return err
	}

	for _, tableName := range tableNames {
		if err := db.Exec("DROP TABLE IF EXISTS " + tableName + " CASCADE").Error; err != nil {
			return err
		}
	}

	db.Exec("SET CONSTRAINTS ALL IMMEDIATE;")

	return nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgerrcode.ForeignKeyViolation
}

func updateFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
}

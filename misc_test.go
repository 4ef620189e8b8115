package setpager

import (
	"fmt"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// _dialects lists the SQL flavors every GormClient test runs against.
var _dialects = []string{"mysql", "postgres"}

// newGORMMock opens a sqlmock-backed gorm.DB for the given dialect.
func newGORMMock(dialect string) (*gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	var dialector gorm.Dialector
	switch dialect {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			Conn:                      mockDB,
			SkipInitializeWithVersion: true,
		})
	case "postgres":
		dialector = postgres.New(postgres.Config{
			Conn: mockDB,
		})
	default:
		return nil, nil, fmt.Errorf("unknown test dialect '%s'", dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	return db.Debug(), mock, nil
}

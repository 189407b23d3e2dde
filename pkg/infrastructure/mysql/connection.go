package mysql

import (
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// NewDB opens a connection pool against the given DSN. The DSN is normalized
// so DATETIME columns scan into time.Time and UPDATE reports matched rows
// rather than changed rows; repositories rely on the latter to tell an
// absent id from a no-op update.
func NewDB(dsn string) (*sqlx.DB, error) {
	normalized, err := normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("mysql", normalized)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mysql")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func normalizeDSN(dsn string) (string, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return "", errors.Wrap(err, "parse mysql dsn")
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

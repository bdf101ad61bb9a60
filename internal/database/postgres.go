package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type PgCourierRepository struct {
	conn *sql.DB
}

func NewPgCourierRepository(dsn string) (*PgCourierRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PgCourierRepository{conn: db}, nil
}

func (db *PgCourierRepository) Ping() error {
	return db.conn.Ping()
}

func (db *PgCourierRepository) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, the store-level backstop for concurrent duplicate inserts.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}

package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/aquilax/blogboard/database"
	"github.com/golang-migrate/migrate/v4"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type SQLite struct {
	db *sqlx.DB
}

func New() *SQLite {
	return &SQLite{}
}

func (m *SQLite) Open(driver, DSN string) error {
	var err error
	m.db, err = sqlx.Open(driver, DSN)
	if err != nil {
		return err
	}
	if err := m.migrate(); err != nil {
		return err
	}
	// modernc serializes writers per file; one connection avoids SQLITE_BUSY
	m.db.SetMaxOpenConns(1)
	return nil
}

func (m *SQLite) migrate() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := msqlite.WithInstance(m.db.DB, &msqlite.Config{})
	if err != nil {
		return fmt.Errorf("sqlite migrate driver: %w", err)
	}
	mg, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}
	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sqlite migrate: %w", err)
	}
	return nil
}

func (m *SQLite) Get(key string) (string, error) {
	var value string
	err := m.db.Get(&value, "SELECT data FROM kv WHERE name = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", database.ErrNotFound
	}
	return value, err
}

func (m *SQLite) Set(key, value string) error {
	_, err := m.db.NamedExec(`INSERT INTO kv (name, data, updated)
		VALUES (:name, :data, :updated)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated = excluded.updated`,
		map[string]interface{}{
			"name":    key,
			"data":    value,
			"updated": time.Now().UTC(),
		})
	return err
}

func (m *SQLite) Delete(key string) error {
	_, err := m.db.Exec("DELETE FROM kv WHERE name = ?", key)
	return err
}

func (m *SQLite) Keys(prefix string) ([]string, error) {
	keys := []string{}
	err := m.db.Select(&keys, "SELECT name FROM kv WHERE substr(name, 1, length(?)) = ? ORDER BY name", prefix, prefix)
	return keys, err
}

func (m *SQLite) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

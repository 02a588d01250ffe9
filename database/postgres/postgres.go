package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/aquilax/blogboard/database"
	"github.com/golang-migrate/migrate/v4"
	mpostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Postgres struct {
	db *sqlx.DB
}

func New() *Postgres {
	return &Postgres{}
}

func (m *Postgres) Open(driver, DSN string) error {
	var err error
	m.db, err = sqlx.Open(driver, DSN)
	if err != nil {
		return err
	}
	if err = m.db.Ping(); err != nil {
		return err
	}
	return m.migrate()
}

func (m *Postgres) migrate() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := mpostgres.WithInstance(m.db.DB, &mpostgres.Config{})
	if err != nil {
		return fmt.Errorf("postgres migrate driver: %w", err)
	}
	mg, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}
	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

func (m *Postgres) Get(key string) (string, error) {
	var value string
	err := m.db.Get(&value, "SELECT data FROM kv WHERE name = $1", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", database.ErrNotFound
	}
	return value, err
}

func (m *Postgres) Set(key, value string) error {
	_, err := m.db.Exec(`INSERT INTO kv (name, data, updated) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated = EXCLUDED.updated`,
		key, value, time.Now().UTC())
	return err
}

func (m *Postgres) Delete(key string) error {
	_, err := m.db.Exec("DELETE FROM kv WHERE name = $1", key)
	return err
}

func (m *Postgres) Keys(prefix string) ([]string, error) {
	keys := []string{}
	err := m.db.Select(&keys, "SELECT name FROM kv WHERE left(name, char_length($1::text)) = $1::text ORDER BY name", prefix)
	return keys, err
}

func (m *Postgres) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

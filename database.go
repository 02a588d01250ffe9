package main

import (
	"fmt"

	"github.com/aquilax/blogboard/database"
	"github.com/aquilax/blogboard/database/cached"
	"github.com/aquilax/blogboard/database/memory"
	"github.com/aquilax/blogboard/database/postgres"
	"github.com/aquilax/blogboard/database/sqlite"
)

func newDatabase(name string) (database.Database, error) {
	switch name {
	case "sqlite":
		return sqlite.New(), nil
	case "postgres":
		return postgres.New(), nil
	case "memory":
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unsupported database %q", name)
}

// openDatabase opens the backend named in the config, wrapped in a cache
// when enabled.
func openDatabase(c *Config) (database.Database, error) {
	db, err := newDatabase(c.Database)
	if err != nil {
		return nil, err
	}
	if c.Cache {
		db = cached.New(db)
	}
	if err := db.Open(c.Database, c.Dsn); err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Database, err)
	}
	return db, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database that backs the persistence store.

# Connecting

New connects and migrates in one step:

	conn, err := db.New(db.TypeSQLite, "sharemix.db")
	if err != nil {
		log.Fatal(err)
	}

Two backends are supported:

  - sqlite (modernc.org/sqlite, pure Go): url is a file path
  - postgres (github.com/lib/pq): url is a connection string

# Migrations

Migrations live in migrations/*.sql, are embedded in the binary and are
applied with goose on every New. Safe to call multiple times.

# Tables

	kv (store_key TEXT PRIMARY KEY, store_value TEXT, updated_at TIMESTAMP)

Values are JSON strings; their shape is owned by the store and shares
packages, not by the schema.
*/
package db

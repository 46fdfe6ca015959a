// Package testsupport provides an in-memory SQLite store with the same
// logical schema as migrations/, for repository, service and handler
// tests.
package testsupport

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE users (
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  email         TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  full_name     TEXT NOT NULL DEFAULT '',
  is_active     BOOLEAN NOT NULL DEFAULT 1,
  created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE refresh_tokens (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id    INTEGER NOT NULL,
  token_hash TEXT NOT NULL UNIQUE,
  expires_at DATETIME NOT NULL,
  revoked_at DATETIME NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE caregivers (
  id               INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id          INTEGER NOT NULL,
  custom_id        INTEGER NOT NULL,
  name             TEXT NOT NULL,
  bank_name        TEXT NOT NULL,
  bank_account     TEXT NOT NULL,
  branch_number    TEXT NOT NULL,
  salary_price     REAL NOT NULL DEFAULT 0,
  salary_amount    INTEGER NOT NULL DEFAULT 0,
  salary_total     REAL NOT NULL DEFAULT 0,
  saturday_price   REAL NOT NULL DEFAULT 0,
  saturday_amount  INTEGER NOT NULL DEFAULT 0,
  saturday_total   REAL NOT NULL DEFAULT 0,
  allowance_price  REAL NOT NULL DEFAULT 0,
  allowance_amount INTEGER NOT NULL DEFAULT 0,
  allowance_total  REAL NOT NULL DEFAULT 0,
  total_bank       REAL NOT NULL DEFAULT 0,
  created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (user_id, custom_id)
);
CREATE TABLE elderly (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id    INTEGER NOT NULL,
  custom_id  INTEGER NOT NULL,
  name       TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (user_id, custom_id)
);
CREATE TABLE tasks (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id     INTEGER NOT NULL,
  elderly_id  INTEGER NOT NULL,
  description TEXT NOT NULL,
  status      TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','in progress','completed')),
  created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE medications (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id    INTEGER NOT NULL,
  elderly_id INTEGER NOT NULL,
  name       TEXT NOT NULL,
  dosage     TEXT NOT NULL,
  frequency  TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE caregiver_assignments (
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id      INTEGER NOT NULL,
  caregiver_id INTEGER NOT NULL,
  elderly_id   INTEGER NOT NULL,
  created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (user_id, caregiver_id, elderly_id)
);
`

// OpenDB returns a fresh in-memory database with the schema applied.
// The pool is pinned to one connection because every new SQLite
// ":memory:" connection starts empty.
func OpenDB(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SeedUser inserts an active user and returns its id.
func SeedUser(t testing.TB, db *sql.DB, email string) uint64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO users (email, password_hash, full_name) VALUES (?, ?, ?)", email, "x", email)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

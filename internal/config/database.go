package config

import (
	"errors"
	"os"
)

// DBConfig is the subset of Config needed by tools that only talk to
// the database, such as cmd/migrate.
type DBConfig struct {
	User, Pass, Host, Port, Name string
}

// LoadDB reads the DB_* variables.
func LoadDB() (DBConfig, error) {
	r := &reader{}
	cfg := DBConfig{
		User: r.must("DB_USER"),
		Pass: os.Getenv("DB_PASS"),
		Host: r.must("DB_HOST"),
		Port: envStr("DB_PORT", "3306"),
		Name: r.must("DB_NAME"),
	}
	return cfg, errors.Join(r.errs...)
}

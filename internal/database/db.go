package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DSN builds the MySQL connection string used by the server and the
// migration tool.
func DSN(user, pass, host, port, name string) string {
	return dsnConfig(user, pass, host, port, name).FormatDSN()
}

// MigrateURL is the golang-migrate database URL for the same database.
// Migration files hold several statements each.
func MigrateURL(user, pass, host, port, name string) string {
	c := dsnConfig(user, pass, host, port, name)
	c.MultiStatements = true
	return "mysql://" + c.FormatDSN()
}

func dsnConfig(user, pass, host, port, name string) *mysql.Config {
	c := mysql.NewConfig()
	c.User = user
	c.Passwd = pass
	c.Net = "tcp"
	c.Addr = host + ":" + port
	c.DBName = name
	c.ParseTime = true // DATETIME -> time.Time
	c.Loc = time.UTC // collation defaults to utf8mb4_general_ci
	return c
}

// Open connects to MySQL and verifies the connection.
func Open(ctx context.Context, user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

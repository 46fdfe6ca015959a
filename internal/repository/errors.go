// Package repository contains ownership-scoped data access separated from
// HTTP handlers.  Every method that reads or changes a tenant's records
// takes a model.OwnerID and filters on the user_id column; the error kinds
// returned are the ones defined in package model.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a unique-constraint violation
// from MySQL or SQLite.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// notFoundAs replaces sql.ErrNoRows with the entity-specific error.
func notFoundAs(err, entityErr error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return entityErr
	}
	return err
}

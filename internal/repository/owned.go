package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/eldercare-records/internal/model"
)

// querier is satisfied by *sql.DB and *sql.Tx so table helpers run
// inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// filter is an extra equality condition.  col is always a literal from
// this package, never caller input.
type filter struct {
	col string
	val any
}

func eq(col string, val any) filter { return filter{col: col, val: val} }

// ownedTable implements the owner-filtered queries shared by every
// tenant table.  The owner condition is built into each query, so no
// helper here can read or delete across tenants.
type ownedTable[E any] struct {
	name     string                   // table name
	columns  string                   // select list matching scan
	scan     func(scanner) (E, error) // row decoder
	notFound error                    // returned when the gate fails
}

// where renders "user_id = ? AND c1 = ? ..." and its arguments.
func (t ownedTable[E]) where(owner model.OwnerID, fs []filter) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(fs)+1)
	b.WriteString("user_id = ?")
	args = append(args, uint64(owner))
	for _, f := range fs {
		b.WriteString(" AND ")
		b.WriteString(f.col)
		b.WriteString(" = ?")
		args = append(args, f.val)
	}
	return b.String(), args
}

// get returns the row with id owned by owner, or t.notFound.
func (t ownedTable[E]) get(ctx context.Context, q querier, owner model.OwnerID, id uint64, fs ...filter) (E, error) {
	cond, args := t.where(owner, append([]filter{eq("id", id)}, fs...))
	row := q.QueryRowContext(ctx, "SELECT "+t.columns+" FROM "+t.name+" WHERE "+cond+" LIMIT 1", args...)
	e, err := t.scan(row)
	if err != nil {
		var zero E
		return zero, notFoundAs(err, t.notFound)
	}
	return e, nil
}

// list returns every matching row owned by owner, ordered by id, which
// is insertion order.
func (t ownedTable[E]) list(ctx context.Context, q querier, owner model.OwnerID, fs ...filter) ([]E, error) {
	cond, args := t.where(owner, fs)
	rows, err := q.QueryContext(ctx, "SELECT "+t.columns+" FROM "+t.name+" WHERE "+cond+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]E, 0)
	for rows.Next() {
		e, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// exists reports whether any row owned by owner matches fs.
func (t ownedTable[E]) exists(ctx context.Context, q querier, owner model.OwnerID, fs ...filter) (bool, error) {
	cond, args := t.where(owner, fs)
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+t.name+" WHERE "+cond+" LIMIT 1", args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// remove deletes the row with id owned by owner.  It returns t.notFound
// when nothing matched.
func (t ownedTable[E]) remove(ctx context.Context, q querier, owner model.OwnerID, id uint64, fs ...filter) error {
	n, err := t.removeWhere(ctx, q, owner, append([]filter{eq("id", id)}, fs...)...)
	if err != nil {
		return err
	}
	if n == 0 {
		return t.notFound
	}
	return nil
}

// removeWhere deletes every row owned by owner matching fs.
func (t ownedTable[E]) removeWhere(ctx context.Context, q querier, owner model.OwnerID, fs ...filter) (int64, error) {
	cond, args := t.where(owner, fs)
	res, err := q.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE "+cond, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// insert runs an INSERT and returns the generated id.  Unique-key
// violations are reported as conflictErr.
func insert(ctx context.Context, q querier, conflictErr error, query string, args ...any) (uint64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, conflictErr
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// withTx runs fn in a transaction, committing when fn returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}

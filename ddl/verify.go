package ddl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/signadot/jsc/shape"
)

var ErrVerify = errors.New("statement failed")

// Verify executes stmts in order against an empty in-memory SQLite
// database and reports the first which fails.
func Verify(ctx context.Context, stmts []string) error {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return err
	}
	defer db.Close()
	// one connection: each new connection would get its own database.
	db.SetMaxOpenConns(1)
	for i, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("%w: statement %d: %w\n%s", ErrVerify, i+1, err, s)
		}
	}
	return nil
}

// Statements returns the statements of the tables of roots, in order.
func (e *Emitter) Statements(roots []shape.Root) ([]string, error) {
	var res []string
	for _, r := range roots {
		t, err := e.Table(r.Doc, r.BaseID)
		if err != nil {
			return nil, err
		}
		res = append(res, t.Statements()...)
	}
	return res, nil
}

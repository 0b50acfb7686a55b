package booking

import (
    "context"
    "database/sql"
)

// TxRunner executes a function inside a database transaction.  The service
// depends on this small interface instead of *sql.DB directly so tests can
// run transitions against in-memory stores without a live database.
type TxRunner interface {
    WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// SQLTxRunner is the production TxRunner over a *sql.DB.  It commits when
// fn returns nil and rolls back otherwise, so a transition's dependent
// writes (status update, notification insert, proposal delete) apply
// atomically or not at all.
type SQLTxRunner struct {
    DB *sql.DB
}

// WithinTx begins a transaction, runs fn and commits or rolls back based on
// fn's error.
func (r SQLTxRunner) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(tx); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

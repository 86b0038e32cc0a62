package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// Pool supplies the live database handle. The connection manager in
// pkg/database satisfies it.
type Pool interface {
	DB() (*sqlx.DB, error)
	AcquireTimeout() time.Duration
}

// QueryObserver records statement timings.
type QueryObserver interface {
	ObserveDBQuery(name string, duration time.Duration)
}

// Executor runs parameterized statements against the shared pool. Every
// statement goes through scoped checkout with the configured acquire
// timeout; exceeding it surfaces the pool-exhausted connection error.
// Parameters are always bound positionally, never interpolated.
type Executor struct {
	pool     Pool
	observer QueryObserver
	logger   *zap.Logger
}

// NewExecutor constructs the executor.
func NewExecutor(pool Pool, observer QueryObserver, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{pool: pool, observer: observer, logger: logger}
}

// Get runs a single-row query into dest.
func (e *Executor) Get(ctx context.Context, name string, dest interface{}, query string, args ...interface{}) error {
	db, err := e.pool.DB()
	if err != nil {
		return err
	}
	ctx, cancel := e.scope(ctx)
	defer cancel()
	start := time.Now()
	err = db.GetContext(ctx, dest, query, args...)
	e.observe(name, start)
	return e.translate(ctx, name, err)
}

// Select runs a multi-row query into dest.
func (e *Executor) Select(ctx context.Context, name string, dest interface{}, query string, args ...interface{}) error {
	db, err := e.pool.DB()
	if err != nil {
		return err
	}
	ctx, cancel := e.scope(ctx)
	defer cancel()
	start := time.Now()
	err = db.SelectContext(ctx, dest, query, args...)
	e.observe(name, start)
	return e.translate(ctx, name, err)
}

// Exec runs a statement that returns no rows.
func (e *Executor) Exec(ctx context.Context, name string, query string, args ...interface{}) (sql.Result, error) {
	db, err := e.pool.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := e.scope(ctx)
	defer cancel()
	start := time.Now()
	res, err := db.ExecContext(ctx, query, args...)
	e.observe(name, start)
	return res, e.translate(ctx, name, err)
}

// InTransaction runs fn inside a single transaction. The transaction is
// rolled back on error or panic and committed otherwise; a failed
// transaction is never retried here, the error is surfaced to the caller.
func (e *Executor) InTransaction(ctx context.Context, name string, fn func(tx *sqlx.Tx) error) error {
	db, err := e.pool.DB()
	if err != nil {
		return err
	}
	ctx, cancel := e.scope(ctx)
	defer cancel()

	start := time.Now()
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		e.observe(name, start)
		return e.translate(ctx, name, err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
		e.observe(name, start)
	}()

	if err := fn(tx); err != nil {
		return e.translate(ctx, name, err)
	}
	if err := tx.Commit(); err != nil {
		return e.translate(ctx, name, err)
	}
	committed = true
	return nil
}

func (e *Executor) scope(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := e.pool.AcquireTimeout()
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (e *Executor) observe(name string, start time.Time) {
	if e.observer != nil {
		e.observer.ObserveDBQuery(name, time.Since(start))
	}
}

// translate maps driver failures onto the application error taxonomy.
// sql.ErrNoRows passes through untouched so repositories can keep their
// existence semantics.
func (e *Executor) translate(ctx context.Context, name string, err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		e.logger.Warn("pool acquire timed out", zap.String("query", name))
		return appErrors.Wrap(err, appErrors.ErrPoolExhausted.Code, appErrors.ErrPoolExhausted.Status, "pool exhausted")
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "store unavailable")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if translated := translateConstraint(pqErr); translated != nil {
			return translated
		}
	}

	e.logger.Error("statement failed", zap.String("query", name), zap.Error(err))
	return fmt.Errorf("%s: %w", name, err)
}

// translateConstraint converts foreign-key and uniqueness violations into
// validation errors naming the violated relation, so callers never see raw
// store error text.
func translateConstraint(pqErr *pq.Error) error {
	switch pqErr.Code {
	case "23503": // foreign_key_violation
		field, message := constraintTarget(pqErr)
		return appErrors.ValidationField(message, field, nil)
	case "23505": // unique_violation
		return appErrors.Validation("duplicate record violates uniqueness of " + relationName(pqErr))
	default:
		return nil
	}
}

func constraintTarget(pqErr *pq.Error) (string, string) {
	name := strings.ToLower(pqErr.Constraint)
	switch {
	case strings.Contains(name, "section"):
		return "section_id", "referenced section does not exist"
	case strings.Contains(name, "academic_year"):
		return "academic_year_id", "referenced academic year does not exist"
	case strings.Contains(name, "fee_type"):
		return "fee_type_id", "referenced fee type does not exist"
	case strings.Contains(name, "student"):
		return "student_id", "referenced student does not exist"
	default:
		return "", "referenced " + relationName(pqErr) + " does not exist"
	}
}

func relationName(pqErr *pq.Error) string {
	if pqErr.Table != "" {
		return pqErr.Table
	}
	if pqErr.Constraint != "" {
		return pqErr.Constraint
	}
	return "relation"
}

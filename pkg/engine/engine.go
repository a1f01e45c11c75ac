// Package engine is the Glue layer's entry point: it owns one Catalog and
// drives query text through sqlparse.Parse -> planner.CreatePlan ->
// executor.CreateExecutor -> Operator.Execute(), grounded on the teacher's
// pkg/database/db.go Database/ExecuteQuery shape, stripped of the WAL,
// page store, and transaction registry the spec's Non-goals exclude
// (persistence, transactions/concurrency control/recovery).
package engine

import (
	"sync"

	"storeql/pkg/catalog"
	"storeql/pkg/dberrors"
	"storeql/pkg/executor"
	"storeql/pkg/planner"
	"storeql/pkg/sqlparse"
)

// DefaultDegree is the B+-tree minimum degree used for CREATE INDEX when
// no explicit degree is configured.
const DefaultDegree = 3

// Config configures a Database. The zero value is a valid configuration:
// DefaultDegree is used when Degree is 0.
type Config struct {
	Degree int
}

// Database owns a single Catalog and executes queries against it one at a
// time. It carries no durability or transaction machinery: every CORE
// subsystem it wires together is purely in-memory and single-threaded, per
// the engine's concurrency model (§5).
type Database struct {
	catalog *catalog.Catalog
	degree  int

	mu    sync.Mutex
	stats Stats
}

// Stats tracks per-Database query counts, mirroring the teacher's
// DatabaseStats without the transaction counter (there are no
// transactions to count).
type Stats struct {
	QueriesExecuted int64
	ErrorCount      int64
}

// New constructs an empty Database.
func New(cfg Config) *Database {
	degree := cfg.Degree
	if degree == 0 {
		degree = DefaultDegree
	}
	return &Database{catalog: catalog.New(), degree: degree}
}

// Execute parses, plans, and runs one statement, returning a QueryResult.
// Errors are always *dberrors.DBError, following the engine's structured
// error contract (§7).
func (db *Database) Execute(queryText string) (QueryResult, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	parsed, err := sqlparse.Parse(queryText)
	if err != nil {
		db.recordError()
		return QueryResult{}, err
	}

	physical, err := planner.CreatePlan(parsed.Plan, db.catalog)
	if err != nil {
		db.recordError()
		return QueryResult{}, err
	}

	op, err := executor.CreateExecutor(physical, db.catalog, db.degree)
	if err != nil {
		db.recordError()
		return QueryResult{}, err
	}

	result, err := op.Execute()
	if err != nil {
		db.recordError()
		return QueryResult{}, err
	}

	if len(parsed.ProjectColumns) > 0 {
		result, err = executor.Project(result, parsed.ProjectColumns)
		if err != nil {
			db.recordError()
			return QueryResult{}, err
		}
	}

	db.recordSuccess()
	return formatResult(result), nil
}

// Stats returns a snapshot of the Database's query counters.
func (db *Database) Stats() Stats {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.stats
}

func (db *Database) recordError() {
	db.stats.ErrorCount++
}

func (db *Database) recordSuccess() {
	db.stats.QueriesExecuted++
}

// AsDBError narrows err to a *dberrors.DBError, wrapping it as an internal
// ParseError if some layer returned a plain error instead — every boundary
// in this engine is expected to return structured errors, so this only
// fires on a programmer mistake. The REPL in main.go uses it to print
// "Error: <message>" without a type assertion.
func AsDBError(err error) *dberrors.DBError {
	if de, ok := err.(*dberrors.DBError); ok {
		return de
	}
	return dberrors.Wrap(dberrors.ParseError, "engine", "Execute", err, "unstructured error")
}

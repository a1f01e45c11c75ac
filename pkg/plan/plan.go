// Package plan implements the plan-node sum type, grounded on the spec's
// design note preferring a tagged variant over a virtual hierarchy (the
// teacher's pkg/plan uses an interface-per-node-type hierarchy closer to
// this than its execution/query package's base-class style, but still
// relies on type assertions). The planner and executor each dispatch with
// a single type switch over the concrete node types; Kind() reports the
// variant tag for callers that want to inspect a node without a type
// assertion.
//
// A Node is "logical" as produced by the Glue parser and "physical" once
// the Planner has added index bindings to its Filter (and Delete/Update)
// nodes. The same Go types serve both stages; IndexName is simply unset
// until the Planner runs.
package plan

import (
	"storeql/pkg/schema"
	"storeql/pkg/types"
)

type Kind int

const (
	KindSelect Kind = iota
	KindInsert
	KindFilter
	KindSort
	KindAggregate
	KindCreateTable
	KindDelete
	KindUpdate
	KindDropTable
	KindDropIndex
	KindCreateIndex
	KindShowIndexes
	KindExplain
)

// Node is implemented by every plan variant.
type Node interface {
	Kind() Kind
}

// Select is a leaf node: SELECT cols FROM table.
type Select struct {
	Table   string
	Columns []string // nil or ["*"] means every column in schema order
}

func (*Select) Kind() Kind { return KindSelect }

// Insert is a leaf node: INSERT INTO table (cols) VALUES (literals).
type Insert struct {
	Table   string
	Columns []string
	Values  []types.Value
}

func (*Insert) Kind() Kind { return KindInsert }

// Filter wraps Child with a predicate string of the form "<col><op><lit>".
// IndexName is empty in the logical plan and set by the Planner when an
// eligible index exists; Filter always has exactly one child.
type Filter struct {
	Child     Node
	Predicate string
	IndexName string
	Table     string // the table the predicate's column is resolved against; set by the Planner
}

func (*Filter) Kind() Kind { return KindFilter }

// Sort materializes Child and orders it by Columns, primary first,
// ascending only.
type Sort struct {
	Child   Node
	Columns []string
}

func (*Sort) Kind() Kind { return KindSort }

// AggExpr is one aggregate expression: SUM(col), COUNT(col), or AVG(col).
type AggExpr struct {
	Func   string // "SUM", "COUNT", "AVG"
	Column string
}

// Aggregate groups Child's output by GroupColumns and computes Aggregates
// per group.
type Aggregate struct {
	Child        Node
	GroupColumns []string
	Aggregates   []AggExpr
}

func (*Aggregate) Kind() Kind { return KindAggregate }

// CreateTable is a leaf node: CREATE TABLE name (coldefs).
type CreateTable struct {
	Table   string
	Columns []schema.Column
}

func (*CreateTable) Kind() Kind { return KindCreateTable }

// Delete is a leaf node: DELETE FROM table [WHERE pred]. Predicate is
// empty when there is no WHERE clause, meaning delete every row.
type Delete struct {
	Table     string
	Predicate string
	IndexName string
}

func (*Delete) Kind() Kind { return KindDelete }

// Assignment is one SET clause of an UPDATE: column = literal.
type Assignment struct {
	Column  string
	Literal types.Value
}

// Update is a leaf node: UPDATE table SET assignments [WHERE pred].
type Update struct {
	Table       string
	Assignments []Assignment
	Predicate   string
	IndexName   string
}

func (*Update) Kind() Kind { return KindUpdate }

// DropTable is a leaf node: DROP TABLE name.
type DropTable struct {
	Table string
}

func (*DropTable) Kind() Kind { return KindDropTable }

// DropIndex is a leaf node: DROP INDEX name ON table.
type DropIndex struct {
	Table     string
	IndexName string
}

func (*DropIndex) Kind() Kind { return KindDropIndex }

// CreateIndex is a leaf node: CREATE INDEX name ON table (column).
type CreateIndex struct {
	IndexName string
	Table     string
	Column    string
}

func (*CreateIndex) Kind() Kind { return KindCreateIndex }

// ShowIndexes is a leaf node: SHOW INDEXES FROM table.
type ShowIndexes struct {
	Table string
}

func (*ShowIndexes) Kind() Kind { return KindShowIndexes }

// Explain wraps another plan node without executing it.
type Explain struct {
	Inner Node
}

func (*Explain) Kind() Kind { return KindExplain }

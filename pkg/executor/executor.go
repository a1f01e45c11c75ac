// Package executor implements the Volcano-style operator tree: one
// operator per plan variant, each exposing a single-shot, fully
// materialized Execute(). There is no incremental iteration or
// pipelining — a parent operator consumes its child's entire output in one
// call, a deliberate departure from the teacher's pull-based
// Open/HasNext/Next/Close iterator protocol in pkg/execution/iterator.go,
// per the spec's explicit executor contract (§4.6).
package executor

import (
	"storeql/pkg/catalog"
	"storeql/pkg/dberrors"
	"storeql/pkg/plan"
	"storeql/pkg/schema"
	"storeql/pkg/tuple"
)

// Result is the materialized output of an operator: a row batch plus its
// shared schema. Mutating operators (CreateTable, Insert, Delete, Update,
// DropTable, DropIndex, CreateIndex) return an empty Result with a nil
// Schema.
type Result struct {
	Schema *schema.Schema
	Rows   []*tuple.Tuple
}

// Operator is implemented by every executor node.
type Operator interface {
	Execute() (*Result, error)
}

// CreateExecutor materializes one Operator per physical plan node,
// recursing into children for Filter/Sort/Aggregate/Explain.
func CreateExecutor(n plan.Node, cat *catalog.Catalog, degree int) (Operator, error) {
	switch node := n.(type) {
	case *plan.CreateTable:
		return &CreateTableOp{plan: node, catalog: cat}, nil
	case *plan.Insert:
		return &InsertOp{plan: node, catalog: cat}, nil
	case *plan.Select:
		return &SelectOp{plan: node, catalog: cat}, nil
	case *plan.Filter:
		child, err := CreateExecutor(node.Child, cat, degree)
		if err != nil {
			return nil, err
		}
		return &FilterOp{plan: node, catalog: cat, child: child}, nil
	case *plan.Sort:
		child, err := CreateExecutor(node.Child, cat, degree)
		if err != nil {
			return nil, err
		}
		return &SortOp{plan: node, child: child}, nil
	case *plan.Aggregate:
		child, err := CreateExecutor(node.Child, cat, degree)
		if err != nil {
			return nil, err
		}
		return &AggregateOp{plan: node, child: child}, nil
	case *plan.Delete:
		return &DeleteOp{plan: node, catalog: cat}, nil
	case *plan.Update:
		return &UpdateOp{plan: node, catalog: cat}, nil
	case *plan.DropTable:
		return &DropTableOp{plan: node, catalog: cat}, nil
	case *plan.DropIndex:
		return &DropIndexOp{plan: node, catalog: cat}, nil
	case *plan.CreateIndex:
		return &CreateIndexOp{plan: node, catalog: cat, degree: degree}, nil
	case *plan.ShowIndexes:
		return &ShowIndexesOp{plan: node, catalog: cat}, nil
	case *plan.Explain:
		inner, err := CreateExecutor(node.Inner, cat, degree)
		if err != nil {
			return nil, err
		}
		return &ExplainOp{plan: node, inner: inner}, nil
	default:
		return nil, dberrors.Newf(dberrors.ParseError, "executor", "CreateExecutor", "unknown plan node type %T", n)
	}
}

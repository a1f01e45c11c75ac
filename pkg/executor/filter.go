package executor

import (
	"storeql/pkg/catalog"
	"storeql/pkg/dberrors"
	"storeql/pkg/plan"
	"storeql/pkg/predparse"
	"storeql/pkg/tuple"
	"storeql/pkg/types"
)

// FilterOp parses its predicate string and follows one of two paths: if
// the Planner bound an index, it fetches rids directly from the index and
// dereferences them, ignoring the child's output entirely; otherwise it
// iterates the child's output, evaluating the predicate per tuple and
// preserving child order.
//
// The index path's range queries are inclusive on both ends (the tree has
// no notion of an open bound), so `>` and `<` re-check the exact predicate
// against each dereferenced tuple to drop the boundary value itself — the
// source (original_source/src/executor/executor_nodes.h's PerformSearch)
// instead returns `index->RangeQuery(value, max)` untouched for `>`, which
// wrongly includes rows equal to value.
type FilterOp struct {
	plan    *plan.Filter
	catalog *catalog.Catalog
	child   Operator
}

func (op *FilterOp) Execute() (*Result, error) {
	column, pop, literal, err := predparse.Parse(op.plan.Predicate)
	if err != nil {
		return nil, err
	}

	if op.plan.IndexName != "" {
		return op.executeIndexPath(column, pop, literal)
	}
	return op.executeScanPath(column, pop, literal)
}

func (op *FilterOp) executeIndexPath(column, pop string, literal types.Value) (*Result, error) {
	table, err := op.catalog.GetTable(op.plan.Table)
	if err != nil {
		return nil, err
	}
	info, err := table.GetIndex(op.plan.IndexName)
	if err != nil {
		return nil, err
	}

	s := table.Schema()
	colIdx, err := s.IndexOf(column)
	if err != nil {
		return nil, err
	}
	col, err := s.ColumnAt(colIdx)
	if err != nil {
		return nil, err
	}
	if col.Type == types.VARCHAR && pop != "=" {
		return nil, dberrors.Newf(dberrors.UnsupportedOperator, "executor", "FilterOp",
			"operator %q is not supported on string column %q", pop, col.Name)
	}

	var rids []tuple.RID
	switch pop {
	case "=":
		rids = info.Index.Search(literal)
	case ">":
		rids = info.Index.RangeQuery(literal, types.MaxValue(info.DataType))
	case "<":
		rids = info.Index.RangeQuery(types.MinValue(info.DataType), literal)
	default:
		return nil, dberrors.Newf(dberrors.UnsupportedOperator, "executor", "FilterOp",
			"operator %q does not use the index path", pop)
	}

	var rows []*tuple.Tuple
	for _, rid := range rids {
		t, err := table.GetTuple(rid)
		if err != nil {
			return nil, err
		}
		if pop == ">" || pop == "<" {
			matches, err := evalPredicate(t, colIdx, pop, literal)
			if err != nil {
				return nil, err
			}
			if !matches {
				continue
			}
		}
		rows = append(rows, t)
	}
	return &Result{Schema: s, Rows: rows}, nil
}

func (op *FilterOp) executeScanPath(column, pop string, literal types.Value) (*Result, error) {
	childResult, err := op.child.Execute()
	if err != nil {
		return nil, err
	}
	if childResult.Schema == nil {
		return &Result{}, nil
	}

	colIdx, err := childResult.Schema.IndexOf(column)
	if err != nil {
		return nil, err
	}
	col, err := childResult.Schema.ColumnAt(colIdx)
	if err != nil {
		return nil, err
	}
	if col.Type == types.VARCHAR && pop != "=" {
		return nil, dberrors.Newf(dberrors.UnsupportedOperator, "executor", "FilterOp",
			"operator %q is not supported on string column %q", pop, col.Name)
	}

	var rows []*tuple.Tuple
	for _, t := range childResult.Rows {
		matches, err := evalPredicate(t, colIdx, pop, literal)
		if err != nil {
			return nil, err
		}
		if matches {
			rows = append(rows, t)
		}
	}
	return &Result{Schema: childResult.Schema, Rows: rows}, nil
}

func evalPredicate(t *tuple.Tuple, colIdx int, pop string, literal types.Value) (bool, error) {
	field, err := t.Field(colIdx)
	if err != nil {
		return false, err
	}
	c, err := field.Compare(literal)
	if err != nil {
		return false, dberrors.Wrap(dberrors.TypeMismatch, "executor", "evalPredicate", err,
			"predicate literal type does not match column type")
	}
	switch pop {
	case "=":
		return c == 0, nil
	case "<":
		return c < 0, nil
	case ">":
		return c > 0, nil
	case "<=":
		return c <= 0, nil
	case ">=":
		return c >= 0, nil
	default:
		return false, dberrors.Newf(dberrors.UnsupportedOperator, "executor", "evalPredicate", "unknown operator %q", pop)
	}
}

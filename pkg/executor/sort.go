package executor

import (
	"sort"

	"storeql/pkg/dberrors"
	"storeql/pkg/plan"
	"storeql/pkg/tuple"
)

// SortOp materializes its child and orders the result ascending by the
// configured columns, primary column first, stability preserving child
// order among equal keys.
type SortOp struct {
	plan  *plan.Sort
	child Operator
}

func (op *SortOp) Execute() (*Result, error) {
	childResult, err := op.child.Execute()
	if err != nil {
		return nil, err
	}
	if childResult.Schema == nil {
		return childResult, nil
	}

	colIndices := make([]int, len(op.plan.Columns))
	for i, name := range op.plan.Columns {
		idx, err := childResult.Schema.IndexOf(name)
		if err != nil {
			return nil, err
		}
		colIndices[i] = idx
	}

	rows := make([]*tuple.Tuple, len(childResult.Rows))
	copy(rows, childResult.Rows)

	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		less, err := rowLess(rows[i], rows[j], colIndices)
		if err != nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}

	return &Result{Schema: childResult.Schema, Rows: rows}, nil
}

func rowLess(a, b *tuple.Tuple, colIndices []int) (bool, error) {
	for _, idx := range colIndices {
		fa, err := a.Field(idx)
		if err != nil {
			return false, err
		}
		fb, err := b.Field(idx)
		if err != nil {
			return false, err
		}
		c, err := fa.Compare(fb)
		if err != nil {
			return false, dberrors.Wrap(dberrors.TypeMismatch, "executor", "rowLess", err,
				"sort columns must share a single type")
		}
		if c != 0 {
			return c < 0, nil
		}
	}
	return false, nil
}

package executor

import (
	"storeql/pkg/catalog"
	"storeql/pkg/plan"
	"storeql/pkg/types"
)

// UpdateOp resolves matching rids the same way DeleteOp does, then applies
// every SET assignment to each matched tuple's field vector before writing
// it back through Table.UpdateTuple, which keeps secondary indices
// consistent even when an indexed column's value doesn't change.
type UpdateOp struct {
	plan    *plan.Update
	catalog *catalog.Catalog
}

func (op *UpdateOp) Execute() (*Result, error) {
	table, err := op.catalog.GetTable(op.plan.Table)
	if err != nil {
		return nil, err
	}

	rids, err := matchingRids(table, op.plan.Predicate, op.plan.IndexName)
	if err != nil {
		return nil, err
	}

	s := table.Schema()
	assignIndices := make([]int, len(op.plan.Assignments))
	for i, a := range op.plan.Assignments {
		idx, err := s.IndexOf(a.Column)
		if err != nil {
			return nil, err
		}
		assignIndices[i] = idx
	}

	for _, rid := range rids {
		tup, err := table.GetTuple(rid)
		if err != nil {
			return nil, err
		}
		fields := append([]types.Value{}, tup.Fields()...)
		for i, a := range op.plan.Assignments {
			fields[assignIndices[i]] = a.Literal
		}
		if _, err := table.UpdateTuple(rid, fields); err != nil {
			return nil, err
		}
	}
	return &Result{}, nil
}

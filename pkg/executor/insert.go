package executor

import (
	"storeql/pkg/catalog"
	"storeql/pkg/dberrors"
	"storeql/pkg/plan"
	"storeql/pkg/types"
)

// InsertOp looks up the table, builds a fields vector of schema width
// positioning each supplied value at its column's index, defaults
// unspecified columns to the type's zero value, and inserts the tuple.
type InsertOp struct {
	plan    *plan.Insert
	catalog *catalog.Catalog
}

func (op *InsertOp) Execute() (*Result, error) {
	if len(op.plan.Columns) != len(op.plan.Values) {
		return nil, dberrors.Newf(dberrors.InvalidArguments, "executor", "InsertOp",
			"%d columns but %d values", len(op.plan.Columns), len(op.plan.Values))
	}

	table, err := op.catalog.GetTable(op.plan.Table)
	if err != nil {
		return nil, err
	}
	s := table.Schema()

	fields := make([]types.Value, s.Count())
	for i := 0; i < s.Count(); i++ {
		col, err := s.ColumnAt(i)
		if err != nil {
			return nil, err
		}
		fields[i] = types.Zero(col.Type)
	}

	for i, colName := range op.plan.Columns {
		idx, err := s.IndexOf(colName)
		if err != nil {
			return nil, err
		}
		fields[idx] = op.plan.Values[i]
	}

	if _, err := table.InsertTuple(fields); err != nil {
		return nil, err
	}
	return &Result{}, nil
}

package executor

import (
	"storeql/pkg/catalog"
	"storeql/pkg/plan"
	"storeql/pkg/schema"
	"storeql/pkg/tuple"
	"storeql/pkg/types"
)

// SelectOp looks up the table, resolves each selected column name against
// its schema ('*' expands to every column in schema order), and produces
// one output tuple per live rid.
type SelectOp struct {
	plan    *plan.Select
	catalog *catalog.Catalog
}

func (op *SelectOp) Execute() (*Result, error) {
	table, err := op.catalog.GetTable(op.plan.Table)
	if err != nil {
		return nil, err
	}
	inputSchema := table.Schema()

	indices, outCols, err := resolveProjection(inputSchema, op.plan.Columns)
	if err != nil {
		return nil, err
	}
	outSchema, err := schema.New(outCols)
	if err != nil {
		return nil, err
	}

	var rows []*tuple.Tuple
	for _, rid := range table.AllRids() {
		src, err := table.GetTuple(rid)
		if err != nil {
			return nil, err
		}
		projected, err := project(src, indices, outSchema)
		if err != nil {
			return nil, err
		}
		rows = append(rows, projected)
	}

	return &Result{Schema: outSchema, Rows: rows}, nil
}

// resolveProjection expands '*' and resolves each named column into its
// source index plus its output Column definition.
func resolveProjection(inputSchema *schema.Schema, columns []string) ([]int, []schema.Column, error) {
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		indices := make([]int, inputSchema.Count())
		cols := make([]schema.Column, inputSchema.Count())
		for i := 0; i < inputSchema.Count(); i++ {
			indices[i] = i
			col, err := inputSchema.ColumnAt(i)
			if err != nil {
				return nil, nil, err
			}
			cols[i] = col
		}
		return indices, cols, nil
	}

	indices := make([]int, len(columns))
	cols := make([]schema.Column, len(columns))
	for i, name := range columns {
		idx, err := inputSchema.IndexOf(name)
		if err != nil {
			return nil, nil, err
		}
		col, err := inputSchema.ColumnAt(idx)
		if err != nil {
			return nil, nil, err
		}
		indices[i] = idx
		cols[i] = col
	}
	return indices, cols, nil
}

func project(src *tuple.Tuple, indices []int, outSchema *schema.Schema) (*tuple.Tuple, error) {
	fields := make([]types.Value, len(indices))
	for i, idx := range indices {
		f, err := src.Field(idx)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return tuple.New(outSchema, fields)
}

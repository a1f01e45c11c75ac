package executor

import (
	"strings"

	"storeql/pkg/catalog"
	"storeql/pkg/plan"
	"storeql/pkg/schema"
	"storeql/pkg/tuple"
	"storeql/pkg/types"
)

// ShowIndexesOp lists every index defined on a table: name and the
// comma-joined column list it covers, one row per index.
type ShowIndexesOp struct {
	plan    *plan.ShowIndexes
	catalog *catalog.Catalog
}

func (op *ShowIndexesOp) Execute() (*Result, error) {
	descs, err := op.catalog.GetIndexesForTable(op.plan.Table)
	if err != nil {
		return nil, err
	}

	outSchema, err := schema.New([]schema.Column{
		{Name: "index_name", Type: types.VARCHAR},
		{Name: "columns", Type: types.VARCHAR},
	})
	if err != nil {
		return nil, err
	}

	var rows []*tuple.Tuple
	for _, d := range descs {
		row, err := tuple.New(outSchema, []types.Value{
			types.StringValue(d.Record.IndexName),
			types.StringValue(strings.Join(d.Columns, ",")),
		})
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return &Result{Schema: outSchema, Rows: rows}, nil
}

// ExplainOp runs its inner operator's plan through a textual description
// without executing it, returning the description as a single string row.
type ExplainOp struct {
	plan  *plan.Explain
	inner Operator
}

func (op *ExplainOp) Execute() (*Result, error) {
	outSchema, err := schema.New([]schema.Column{{Name: "plan", Type: types.VARCHAR}})
	if err != nil {
		return nil, err
	}
	row, err := tuple.New(outSchema, []types.Value{types.StringValue(describe(op.plan.Inner))})
	if err != nil {
		return nil, err
	}
	return &Result{Schema: outSchema, Rows: []*tuple.Tuple{row}}, nil
}

// describe renders a plan node as a single-line, indentation-free
// description, used only for EXPLAIN output. It never executes anything.
func describe(n plan.Node) string {
	switch node := n.(type) {
	case *plan.Select:
		return "Select(" + node.Table + ")"
	case *plan.Insert:
		return "Insert(" + node.Table + ")"
	case *plan.Filter:
		child := describe(node.Child)
		if node.IndexName != "" {
			return "Filter[index=" + node.IndexName + "](" + child + ")"
		}
		return "Filter[scan](" + child + ")"
	case *plan.Sort:
		return "Sort(" + describe(node.Child) + ")"
	case *plan.Aggregate:
		return "Aggregate(" + describe(node.Child) + ")"
	case *plan.CreateTable:
		return "CreateTable(" + node.Table + ")"
	case *plan.Delete:
		if node.IndexName != "" {
			return "Delete[index=" + node.IndexName + "](" + node.Table + ")"
		}
		return "Delete[scan](" + node.Table + ")"
	case *plan.Update:
		if node.IndexName != "" {
			return "Update[index=" + node.IndexName + "](" + node.Table + ")"
		}
		return "Update[scan](" + node.Table + ")"
	case *plan.DropTable:
		return "DropTable(" + node.Table + ")"
	case *plan.DropIndex:
		return "DropIndex(" + node.IndexName + ")"
	case *plan.CreateIndex:
		return "CreateIndex(" + node.IndexName + ")"
	case *plan.ShowIndexes:
		return "ShowIndexes(" + node.Table + ")"
	case *plan.Explain:
		return "Explain(" + describe(node.Inner) + ")"
	default:
		return "Unknown"
	}
}

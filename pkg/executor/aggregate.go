package executor

import (
	"fmt"

	"storeql/pkg/dberrors"
	"storeql/pkg/plan"
	"storeql/pkg/schema"
	"storeql/pkg/tuple"
	"storeql/pkg/types"
)

// AggregateOp groups its child's rows by GroupColumns and computes one
// SUM/COUNT/AVG per group. SUM and AVG always produce DOUBLE, COUNT always
// produces INTEGER, regardless of the aggregated column's declared type.
// With no GROUP BY, an empty child produces exactly one row of neutral
// aggregate values (COUNT 0, SUM/AVG 0.0); with GROUP BY, an empty child
// produces zero rows, since there are no groups to report.
type AggregateOp struct {
	plan  *plan.Aggregate
	child Operator
}

type aggState struct {
	count int64
	sum   float64
}

func (op *AggregateOp) Execute() (*Result, error) {
	childResult, err := op.child.Execute()
	if err != nil {
		return nil, err
	}
	inputSchema := childResult.Schema
	if inputSchema == nil {
		return nil, dberrors.Newf(dberrors.InvalidArguments, "executor", "AggregateOp",
			"aggregate input has no schema")
	}

	groupIndices := make([]int, len(op.plan.GroupColumns))
	for i, name := range op.plan.GroupColumns {
		idx, err := inputSchema.IndexOf(name)
		if err != nil {
			return nil, err
		}
		groupIndices[i] = idx
	}

	aggIndices := make([]int, len(op.plan.Aggregates))
	for i, a := range op.plan.Aggregates {
		idx, err := inputSchema.IndexOf(a.Column)
		if err != nil {
			return nil, err
		}
		aggIndices[i] = idx
	}

	outSchema, err := buildAggregateSchema(inputSchema, op.plan.GroupColumns, groupIndices, op.plan.Aggregates)
	if err != nil {
		return nil, err
	}

	if len(childResult.Rows) == 0 {
		if len(groupIndices) > 0 {
			return &Result{Schema: outSchema, Rows: nil}, nil
		}
		fields := make([]types.Value, 0, len(op.plan.Aggregates))
		for _, a := range op.plan.Aggregates {
			fields = append(fields, neutralValue(a.Func))
		}
		row, err := tuple.New(outSchema, fields)
		if err != nil {
			return nil, err
		}
		return &Result{Schema: outSchema, Rows: []*tuple.Tuple{row}}, nil
	}

	type group struct {
		keyFields []types.Value
		states    []aggState
	}
	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, row := range childResult.Rows {
		keyFields := make([]types.Value, len(groupIndices))
		keyStr := ""
		for i, idx := range groupIndices {
			f, err := row.Field(idx)
			if err != nil {
				return nil, err
			}
			keyFields[i] = f
			keyStr += f.DataType().String() + ":" + f.String() + "\x00"
		}

		g, ok := groups[keyStr]
		if !ok {
			g = &group{keyFields: keyFields, states: make([]aggState, len(op.plan.Aggregates))}
			groups[keyStr] = g
			order = append(order, keyStr)
		}

		for i, idx := range aggIndices {
			f, err := row.Field(idx)
			if err != nil {
				return nil, err
			}
			v, ok := numericValue(f)
			if !ok {
				return nil, dberrors.Newf(dberrors.TypeMismatch, "executor", "AggregateOp",
					"column %q is not numeric", op.plan.Aggregates[i].Column)
			}
			g.states[i].count++
			g.states[i].sum += v
		}
	}

	var rows []*tuple.Tuple
	for _, key := range order {
		g := groups[key]
		fields := append([]types.Value{}, g.keyFields...)
		for i, a := range op.plan.Aggregates {
			fields = append(fields, aggregateResult(a.Func, g.states[i]))
		}
		row, err := tuple.New(outSchema, fields)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &Result{Schema: outSchema, Rows: rows}, nil
}

func buildAggregateSchema(inputSchema *schema.Schema, groupNames []string, groupIndices []int, aggs []plan.AggExpr) (*schema.Schema, error) {
	cols := make([]schema.Column, 0, len(groupNames)+len(aggs))
	for i, name := range groupNames {
		col, err := inputSchema.ColumnAt(groupIndices[i])
		if err != nil {
			return nil, err
		}
		cols = append(cols, schema.Column{Name: name, Type: col.Type})
	}
	for _, a := range aggs {
		outType := types.DOUBLE
		if a.Func == "COUNT" {
			outType = types.INTEGER
		}
		cols = append(cols, schema.Column{Name: fmt.Sprintf("%s(%s)", a.Func, a.Column), Type: outType})
	}
	return schema.New(cols)
}

func numericValue(v types.Value) (float64, bool) {
	switch v.Kind() {
	case types.IntKind:
		return float64(v.Int()), true
	case types.FloatKind:
		return v.Float(), true
	default:
		return 0, false
	}
}

func neutralValue(fn string) types.Value {
	if fn == "COUNT" {
		return types.IntValue(0)
	}
	return types.FloatValue(0)
}

func aggregateResult(fn string, s aggState) types.Value {
	switch fn {
	case "COUNT":
		return types.IntValue(s.count)
	case "SUM":
		return types.FloatValue(s.sum)
	case "AVG":
		if s.count == 0 {
			return types.FloatValue(0)
		}
		return types.FloatValue(s.sum / float64(s.count))
	default:
		return types.FloatValue(0)
	}
}

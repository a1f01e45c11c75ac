package executor

import (
	"storeql/pkg/catalog"
	"storeql/pkg/dberrors"
	"storeql/pkg/plan"
	"storeql/pkg/predparse"
	"storeql/pkg/rtable"
	"storeql/pkg/tuple"
	"storeql/pkg/types"
)

// DeleteOp resolves the rids matching its predicate exactly as FilterOp
// would (index path when the Planner bound one, full scan otherwise), then
// removes each from the table. An empty predicate deletes every row.
type DeleteOp struct {
	plan    *plan.Delete
	catalog *catalog.Catalog
}

func (op *DeleteOp) Execute() (*Result, error) {
	table, err := op.catalog.GetTable(op.plan.Table)
	if err != nil {
		return nil, err
	}

	rids, err := matchingRids(table, op.plan.Predicate, op.plan.IndexName)
	if err != nil {
		return nil, err
	}

	for _, rid := range rids {
		if _, err := table.RemoveTuple(rid); err != nil {
			return nil, err
		}
	}
	return &Result{}, nil
}

// matchingRids implements the shared predicate-resolution logic used by
// DeleteOp and UpdateOp: an empty predicate matches every live rid;
// otherwise it follows the index path when indexName is set, the full
// scan path otherwise.
func matchingRids(table *rtable.Table, predicate, indexName string) ([]tuple.RID, error) {
	if predicate == "" {
		return table.AllRids(), nil
	}

	column, pop, literal, err := predparse.Parse(predicate)
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
		return nil, dberrors.Newf(dberrors.UnsupportedOperator, "executor", "matchingRids",
			"operator %q is not supported on string column %q", pop, col.Name)
	}

	if indexName != "" {
		info, err := table.GetIndex(indexName)
		if err != nil {
			return nil, err
		}
		var candidates []tuple.RID
		switch pop {
		case "=":
			candidates = info.Index.Search(literal)
		case ">":
			candidates = info.Index.RangeQuery(literal, types.MaxValue(info.DataType))
		case "<":
			candidates = info.Index.RangeQuery(types.MinValue(info.DataType), literal)
		default:
			return nil, dberrors.Newf(dberrors.UnsupportedOperator, "executor", "matchingRids",
				"operator %q does not use the index path", pop)
		}
		var rids []tuple.RID
		for _, rid := range candidates {
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
			rids = append(rids, rid)
		}
		return rids, nil
	}

	var rids []tuple.RID
	for _, rid := range table.AllRids() {
		t, err := table.GetTuple(rid)
		if err != nil {
			return nil, err
		}
		matches, err := evalPredicate(t, colIdx, pop, literal)
		if err != nil {
			return nil, err
		}
		if matches {
			rids = append(rids, rid)
		}
	}
	return rids, nil
}

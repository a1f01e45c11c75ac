package executor

import (
	"storeql/pkg/schema"
	"storeql/pkg/tuple"
)

// Project cuts res down to columns, in the order given. It is exported for
// the Glue layer (pkg/engine): a named-column SELECT that had to widen its
// scan to cover a WHERE/ORDER BY column runs the full operator tree first,
// then calls Project to produce the column set actually requested. A nil
// or empty columns list is a no-op, matching plan.Select's own '*'
// convention.
func Project(res *Result, columns []string) (*Result, error) {
	if len(columns) == 0 {
		return res, nil
	}

	indices, outCols, err := resolveProjection(res.Schema, columns)
	if err != nil {
		return nil, err
	}
	outSchema, err := schema.New(outCols)
	if err != nil {
		return nil, err
	}

	rows := make([]*tuple.Tuple, len(res.Rows))
	for i, r := range res.Rows {
		p, err := project(r, indices, outSchema)
		if err != nil {
			return nil, err
		}
		rows[i] = p
	}
	return &Result{Schema: outSchema, Rows: rows}, nil
}

package engine

import (
	"fmt"

	"storeql/pkg/executor"
)

// QueryResult is the host-facing answer to one Execute call, grounded on
// the teacher's pkg/database QueryResult: a column header plus
// stringified rows, so a REPL or any other caller never has to know about
// tuple.Tuple or types.Value.
type QueryResult struct {
	Columns []string
	Rows    [][]string
	Message string
}

// formatResult turns an operator Result into a QueryResult. A nil Schema
// marks a mutating statement (INSERT/UPDATE/DELETE/DDL), which carries no
// columns or rows, only the message "OK".
func formatResult(res *executor.Result) QueryResult {
	if res == nil || res.Schema == nil {
		return QueryResult{Message: "OK"}
	}

	columns := make([]string, res.Schema.Count())
	for i := range columns {
		col, _ := res.Schema.ColumnAt(i)
		columns[i] = col.Name
	}

	rows := make([][]string, 0, len(res.Rows))
	for _, t := range res.Rows {
		row := make([]string, len(columns))
		for i := range columns {
			f, err := t.Field(i)
			if err != nil {
				row[i] = ""
				continue
			}
			row[i] = f.String()
		}
		rows = append(rows, row)
	}

	return QueryResult{
		Columns: columns,
		Rows:    rows,
		Message: fmt.Sprintf("%d row(s) returned", len(rows)),
	}
}

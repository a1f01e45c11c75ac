package sqlparse

import (
	"strconv"
	"strings"

	"storeql/pkg/dberrors"
	"storeql/pkg/plan"
	"storeql/pkg/schema"
	"storeql/pkg/types"
)

// ParsedStatement is what Parse hands back to the Glue layer (pkg/engine):
// the logical plan tree, plus the final output projection to apply after
// execution. ProjectColumns is nil when the executed result's own schema
// is already the final answer — '*' selects and GROUP BY queries (whose
// output schema is exactly group-columns-plus-aggregates) both fall into
// that case; a named-column SELECT that had to widen its scan to cover a
// WHERE/ORDER BY column needs the explicit final cut.
type ParsedStatement struct {
	Plan           plan.Node
	ProjectColumns []string
}

// Parse turns query text into a ParsedStatement. It never looks at the
// catalog; table validation and index binding are the Planner's job
// (§4.5), and column names are resolved by the operators at execute time.
func Parse(text string) (*ParsedStatement, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")

	q, err := sqlParser.ParseString("", text)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.ParseError, "sqlparse", "Parse", err, "malformed SQL statement")
	}

	if q.Explain != nil {
		inner, _, err := buildStmt(q.Explain.Inner)
		if err != nil {
			return nil, err
		}
		return &ParsedStatement{Plan: &plan.Explain{Inner: inner}}, nil
	}

	node, proj, err := buildStmt(q.Stmt)
	if err != nil {
		return nil, err
	}
	return &ParsedStatement{Plan: node, ProjectColumns: proj}, nil
}

func buildStmt(s *Stmt) (plan.Node, []string, error) {
	switch {
	case s.Select != nil:
		return buildSelect(s.Select)
	case s.Insert != nil:
		n, err := buildInsert(s.Insert)
		return n, nil, err
	case s.CreateIndex != nil:
		return &plan.CreateIndex{IndexName: s.CreateIndex.IndexName, Table: s.CreateIndex.Table, Column: s.CreateIndex.Column}, nil, nil
	case s.Create != nil:
		n, err := buildCreate(s.Create)
		return n, nil, err
	case s.DropIndex != nil:
		return &plan.DropIndex{Table: s.DropIndex.Table, IndexName: s.DropIndex.IndexName}, nil, nil
	case s.Drop != nil:
		return &plan.DropTable{Table: s.Drop.Table}, nil, nil
	case s.Delete != nil:
		return buildDelete(s.Delete), nil, nil
	case s.Update != nil:
		n, err := buildUpdate(s.Update)
		return n, nil, err
	case s.ShowIndexes != nil:
		return &plan.ShowIndexes{Table: s.ShowIndexes.Table}, nil, nil
	default:
		return nil, nil, dberrors.Newf(dberrors.ParseError, "sqlparse", "buildStmt", "empty statement")
	}
}

// buildSelect compiles a SELECT into a plan tree. A GROUP BY (or any
// aggregate expression) takes the aggregate path: the leaf scan is widened
// to cover every column the group/aggregate/filter clauses reference, and
// the Aggregate operator's own output schema is the final answer — no
// further projection. Otherwise the leaf is widened only as needed for
// WHERE/ORDER BY, and the caller projects down to the requested columns
// afterward.
func buildSelect(s *SelectStmt) (plan.Node, []string, error) {
	var plainCols []string
	var aggs []plan.AggExpr
	star := false
	for _, c := range s.Columns {
		switch {
		case c.Agg != nil:
			aggs = append(aggs, plan.AggExpr{Func: strings.ToUpper(c.Agg.Func), Column: c.Agg.Column})
		case c.Star:
			star = true
		default:
			plainCols = append(plainCols, c.Column)
		}
	}

	var filterCol string
	if s.Where != nil {
		filterCol = s.Where.Column
	}

	if len(s.GroupBy) > 0 || len(aggs) > 0 {
		leafCols := append([]string{}, s.GroupBy...)
		for _, a := range aggs {
			leafCols = appendUnique(leafCols, a.Column)
		}
		if filterCol != "" {
			leafCols = appendUnique(leafCols, filterCol)
		}

		var child plan.Node = &plan.Select{Table: s.Table, Columns: leafCols}
		if s.Where != nil {
			child = &plan.Filter{Child: child, Predicate: renderPredicate(s.Where)}
		}
		child = &plan.Aggregate{Child: child, GroupColumns: s.GroupBy, Aggregates: aggs}
		if len(s.OrderBy) > 0 {
			child = &plan.Sort{Child: child, Columns: s.OrderBy}
		}
		return child, nil, nil
	}

	var leafCols []string
	if !star {
		leafCols = append([]string{}, plainCols...)
		if filterCol != "" {
			leafCols = appendUnique(leafCols, filterCol)
		}
		for _, c := range s.OrderBy {
			leafCols = appendUnique(leafCols, c)
		}
	}

	var child plan.Node = &plan.Select{Table: s.Table, Columns: leafCols}
	if s.Where != nil {
		child = &plan.Filter{Child: child, Predicate: renderPredicate(s.Where)}
	}
	if len(s.OrderBy) > 0 {
		child = &plan.Sort{Child: child, Columns: s.OrderBy}
	}

	if star {
		return child, nil, nil
	}
	return child, plainCols, nil
}

func buildInsert(s *InsertStmt) (plan.Node, error) {
	if len(s.Columns) != len(s.Values) {
		return nil, dberrors.Newf(dberrors.InvalidArguments, "sqlparse", "buildInsert",
			"%d columns but %d values", len(s.Columns), len(s.Values))
	}
	values := make([]types.Value, len(s.Values))
	for i, lit := range s.Values {
		values[i] = literalValue(lit)
	}
	return &plan.Insert{Table: s.Table, Columns: s.Columns, Values: values}, nil
}

func buildCreate(s *CreateStmt) (plan.Node, error) {
	cols := make([]schema.Column, len(s.Columns))
	for i, cd := range s.Columns {
		dt, ok := types.ParseDataType(strings.ToUpper(cd.Type))
		if !ok {
			return nil, dberrors.Newf(dberrors.ParseError, "sqlparse", "buildCreate", "unknown column type %q", cd.Type)
		}
		cols[i] = schema.Column{Name: cd.Name, Type: dt}
	}
	return &plan.CreateTable{Table: s.Table, Columns: cols}, nil
}

func buildDelete(s *DeleteStmt) plan.Node {
	pred := ""
	if s.Where != nil {
		pred = renderPredicate(s.Where)
	}
	return &plan.Delete{Table: s.Table, Predicate: pred}
}

func buildUpdate(s *UpdateStmt) (plan.Node, error) {
	assignments := make([]plan.Assignment, len(s.Set))
	for i, a := range s.Set {
		assignments[i] = plan.Assignment{Column: a.Column, Literal: literalValue(a.Literal)}
	}
	pred := ""
	if s.Where != nil {
		pred = renderPredicate(s.Where)
	}
	return &plan.Update{Table: s.Table, Assignments: assignments, Predicate: pred}, nil
}

// renderPredicate rebuilds the "<col><op><literal>" string form FilterOp
// (and Delete/Update) re-parse at execute time, per the spec's choice of
// keeping that predicate untyped until the operator runs.
func renderPredicate(p *Predicate) string {
	return p.Column + p.Op + literalText(p.Literal)
}

// literalText renders a Literal back to its source text, quotes included
// for strings — predparse.TypeLiteral expects the surrounding quotes to
// detect the string case.
func literalText(l *Literal) string {
	switch {
	case l.Str != nil:
		return *l.Str
	case l.Int != nil:
		return strconv.FormatInt(*l.Int, 10)
	case l.Float != nil:
		s := strconv.FormatFloat(*l.Float, 'g', -1, 64)
		if !strings.Contains(s, ".") && !strings.ContainsAny(s, "eE") {
			s += ".0"
		}
		return s
	case l.Bare != nil:
		return *l.Bare
	default:
		return ""
	}
}

// literalValue types a Literal directly, for INSERT VALUES and UPDATE SET
// where the grammar already distinguishes the literal kind at parse time
// (unlike a WHERE predicate, which stays an untyped string until
// FilterOp/DeleteOp/UpdateOp parse it).
func literalValue(l *Literal) types.Value {
	switch {
	case l.Str != nil:
		return types.StringValue(strings.Trim(*l.Str, "'"))
	case l.Int != nil:
		return types.IntValue(*l.Int)
	case l.Float != nil:
		return types.FloatValue(*l.Float)
	case l.Bare != nil:
		return types.StringValue(*l.Bare)
	default:
		return types.StringValue("")
	}
}

func appendUnique(list []string, item string) []string {
	for _, x := range list {
		if x == item {
			return list
		}
	}
	return append(list, item)
}

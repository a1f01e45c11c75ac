// Package planner transforms a logical plan tree into a physical one,
// validating table references (column names are resolved later, by the
// operators at execute time) and adding index bindings to Filter
// (and the supplemented Delete/Update) nodes, grounded on the teacher's
// pkg/planner/{create,insert,select,delete,update,drop}.go per-node-type
// validate-then-pass-through shape.
package planner

import (
	"storeql/pkg/catalog"
	"storeql/pkg/dberrors"
	"storeql/pkg/plan"
	"storeql/pkg/predparse"
)

// CreatePlan validates a logical plan tree against the catalog and returns
// an isomorphic physical plan tree with index bindings added to eligible
// Filter/Delete/Update nodes.
func CreatePlan(n plan.Node, cat *catalog.Catalog) (plan.Node, error) {
	physical, _, err := transform(n, cat)
	return physical, err
}

// transform returns the physical node plus the name of the table it
// ultimately operates over, so a wrapping Filter/Sort/Aggregate can look up
// that table's indices without re-deriving it.
func transform(n plan.Node, cat *catalog.Catalog) (plan.Node, string, error) {
	switch node := n.(type) {

	case *plan.Select:
		if !cat.HasTable(node.Table) {
			return nil, "", notFound(node.Table)
		}
		return node, node.Table, nil

	case *plan.Insert:
		if !cat.HasTable(node.Table) {
			return nil, "", notFound(node.Table)
		}
		return node, node.Table, nil

	case *plan.CreateTable:
		// No catalog check: the create is the point.
		return node, node.Table, nil

	case *plan.Delete:
		if !cat.HasTable(node.Table) {
			return nil, "", notFound(node.Table)
		}
		indexName := bindIndex(cat, node.Table, node.Predicate)
		return &plan.Delete{Table: node.Table, Predicate: node.Predicate, IndexName: indexName}, node.Table, nil

	case *plan.Update:
		if !cat.HasTable(node.Table) {
			return nil, "", notFound(node.Table)
		}
		indexName := bindIndex(cat, node.Table, node.Predicate)
		return &plan.Update{
			Table: node.Table, Assignments: node.Assignments,
			Predicate: node.Predicate, IndexName: indexName,
		}, node.Table, nil

	case *plan.DropTable:
		if !cat.HasTable(node.Table) {
			return nil, "", notFound(node.Table)
		}
		return node, node.Table, nil

	case *plan.DropIndex:
		if !cat.HasTable(node.Table) {
			return nil, "", notFound(node.Table)
		}
		return node, node.Table, nil

	case *plan.CreateIndex:
		if !cat.HasTable(node.Table) {
			return nil, "", notFound(node.Table)
		}
		return node, node.Table, nil

	case *plan.ShowIndexes:
		if !cat.HasTable(node.Table) {
			return nil, "", notFound(node.Table)
		}
		return node, node.Table, nil

	case *plan.Filter:
		childPhysical, tableName, err := transform(node.Child, cat)
		if err != nil {
			return nil, "", err
		}
		indexName := bindIndex(cat, tableName, node.Predicate)
		return &plan.Filter{
			Child: childPhysical, Predicate: node.Predicate, IndexName: indexName, Table: tableName,
		}, tableName, nil

	case *plan.Sort:
		childPhysical, tableName, err := transform(node.Child, cat)
		if err != nil {
			return nil, "", err
		}
		return &plan.Sort{Child: childPhysical, Columns: node.Columns}, tableName, nil

	case *plan.Aggregate:
		childPhysical, tableName, err := transform(node.Child, cat)
		if err != nil {
			return nil, "", err
		}
		return &plan.Aggregate{
			Child: childPhysical, GroupColumns: node.GroupColumns, Aggregates: node.Aggregates,
		}, tableName, nil

	case *plan.Explain:
		inner, _, err := transform(node.Inner, cat)
		if err != nil {
			return nil, "", err
		}
		return &plan.Explain{Inner: inner}, "", nil

	default:
		return nil, "", dberrors.Newf(dberrors.ParseError, "planner", "transform", "unknown plan node type %T", n)
	}
}

// bindIndex implements the Filter index-binding rule: enumerate the
// table's indices; if one has a single-column key list matching the
// predicate's column and the operator is one of =, <, >, bind its name.
// <= and >= never bind — this asymmetry is deliberate (§4.5) and must be
// observable in tests.
func bindIndex(cat *catalog.Catalog, tableName, predicate string) string {
	if predicate == "" {
		return ""
	}
	column, op, _, err := predparse.Split(predicate)
	if err != nil {
		return ""
	}
	if op != "=" && op != "<" && op != ">" {
		return ""
	}
	descs, err := cat.GetIndexesForTable(tableName)
	if err != nil {
		return ""
	}
	for _, d := range descs {
		if len(d.Columns) == 1 && d.Columns[0] == column {
			return d.Record.IndexName
		}
	}
	return ""
}

func notFound(table string) error {
	return dberrors.Newf(dberrors.NotFound, "planner", "transform", "table %q not found", table)
}

package executor

import (
	"storeql/pkg/catalog"
	"storeql/pkg/plan"
)

const defaultIndexDegree = 4

// CreateTableOp calls catalog.CreateTable with the payload schema and
// returns an empty result set.
type CreateTableOp struct {
	plan    *plan.CreateTable
	catalog *catalog.Catalog
}

func (op *CreateTableOp) Execute() (*Result, error) {
	if _, err := op.catalog.CreateTable(op.plan.Table, op.plan.Columns); err != nil {
		return nil, err
	}
	return &Result{}, nil
}

// DropTableOp drops a table and its indexes/index_columns rows.
type DropTableOp struct {
	plan    *plan.DropTable
	catalog *catalog.Catalog
}

func (op *DropTableOp) Execute() (*Result, error) {
	if err := op.catalog.DropTable(op.plan.Table); err != nil {
		return nil, err
	}
	return &Result{}, nil
}

// DropIndexOp drops a single named index from a table.
type DropIndexOp struct {
	plan    *plan.DropIndex
	catalog *catalog.Catalog
}

func (op *DropIndexOp) Execute() (*Result, error) {
	if err := op.catalog.DropIndex(op.plan.Table, op.plan.IndexName); err != nil {
		return nil, err
	}
	return &Result{}, nil
}

// CreateIndexOp builds and populates a new secondary index. DDL
// partial-failure must roll back: Catalog.CreateIndex only records the
// indexes/index_columns rows after the table's CreateIndex (which builds
// and populates the index) has already succeeded, so a populate failure
// never leaves a partially-registered index behind.
type CreateIndexOp struct {
	plan    *plan.CreateIndex
	catalog *catalog.Catalog
	degree  int
}

func (op *CreateIndexOp) Execute() (*Result, error) {
	table, err := op.catalog.GetTable(op.plan.Table)
	if err != nil {
		return nil, err
	}
	columnIndex, err := table.Schema().IndexOf(op.plan.Column)
	if err != nil {
		return nil, err
	}

	degree := op.degree
	if degree <= 0 {
		degree = defaultIndexDegree
	}

	if err := op.catalog.CreateIndex(op.plan.IndexName, op.plan.Table, columnIndex, degree); err != nil {
		return nil, err
	}
	return &Result{}, nil
}

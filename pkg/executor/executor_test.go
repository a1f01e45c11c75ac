package executor

import (
	"testing"

	"storeql/pkg/catalog"
	"storeql/pkg/plan"
	"storeql/pkg/planner"
	"storeql/pkg/schema"
	"storeql/pkg/types"
)

const testDegree = 2

func newCatalogWithRows(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	tbl, err := c.CreateTable("t", []schema.Column{
		{Name: "id", Type: types.INTEGER},
		{Name: "name", Type: types.VARCHAR},
	})
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	for i := int64(1); i <= 5; i++ {
		if _, err := tbl.InsertTuple([]types.Value{types.IntValue(i), types.StringValue("row")}); err != nil {
			t.Fatalf("InsertTuple: %v", err)
		}
	}
	return c
}

func run(t *testing.T, c *catalog.Catalog, logical plan.Node) *Result {
	t.Helper()
	physical, err := planner.CreatePlan(logical, c)
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	op, err := CreateExecutor(physical, c, testDegree)
	if err != nil {
		t.Fatalf("CreateExecutor: %v", err)
	}
	res, err := op.Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return res
}

func TestSelectStarReturnsAllColumnsAndRows(t *testing.T) {
	c := newCatalogWithRows(t)
	res := run(t, c, &plan.Select{Table: "t"})
	if res.Schema.Count() != 2 {
		t.Fatalf("Schema.Count() = %d, want 2", res.Schema.Count())
	}
	if len(res.Rows) != 5 {
		t.Fatalf("len(Rows) = %d, want 5", len(res.Rows))
	}
}

func TestFilterScanPathExcludesNonMatches(t *testing.T) {
	c := newCatalogWithRows(t)
	res := run(t, c, &plan.Filter{Child: &plan.Select{Table: "t"}, Predicate: "id=3"})
	if len(res.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(res.Rows))
	}
	f, err := res.Rows[0].Field(0)
	if err != nil || f.Int() != 3 {
		t.Errorf("matched row id = %v, want 3", f)
	}
}

func TestFilterIndexPathExcludesBoundaryOnGreaterThan(t *testing.T) {
	c := newCatalogWithRows(t)
	if err := c.CreateIndex("idx_id", "t", 0, testDegree); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	res := run(t, c, &plan.Filter{Child: &plan.Select{Table: "t"}, Predicate: "id>3"})
	if len(res.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2 (ids 4,5)", len(res.Rows))
	}
	for _, row := range res.Rows {
		f, _ := row.Field(0)
		if f.Int() == 3 {
			t.Error("boundary value 3 leaked through exclusive '>' index path")
		}
	}
}

func TestFilterIndexPathExcludesBoundaryOnLessThan(t *testing.T) {
	c := newCatalogWithRows(t)
	if err := c.CreateIndex("idx_id", "t", 0, testDegree); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	res := run(t, c, &plan.Filter{Child: &plan.Select{Table: "t"}, Predicate: "id<3"})
	if len(res.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2 (ids 1,2)", len(res.Rows))
	}
	for _, row := range res.Rows {
		f, _ := row.Field(0)
		if f.Int() == 3 {
			t.Error("boundary value 3 leaked through exclusive '<' index path")
		}
	}
}

func TestFilterIndexPathReturnsFullTableSchema(t *testing.T) {
	c := newCatalogWithRows(t)
	if err := c.CreateIndex("idx_id", "t", 0, testDegree); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	res := run(t, c, &plan.Filter{Child: &plan.Select{Table: "t", Columns: []string{"id"}}, Predicate: "id=3"})
	if res.Schema.Count() != 2 {
		t.Fatalf("index path Schema.Count() = %d, want 2 (full table schema, child output ignored)", res.Schema.Count())
	}
}

func TestFilterRejectsNonEqualityOnIndexedVarcharColumn(t *testing.T) {
	c := newCatalogWithRows(t)
	if err := c.CreateIndex("idx_name", "t", 1, testDegree); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	physical, err := planner.CreatePlan(&plan.Filter{Child: &plan.Select{Table: "t"}, Predicate: "name>'m'"}, c)
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if physical.(*plan.Filter).IndexName == "" {
		t.Fatal("expected the planner to bind idx_name for '>' regardless of column type")
	}

	op, err := CreateExecutor(physical, c, testDegree)
	if err != nil {
		t.Fatalf("CreateExecutor: %v", err)
	}
	if _, err := op.Execute(); err == nil {
		t.Fatal("expected UnsupportedOperator executing '>' against an indexed VARCHAR column")
	}

	scanPhysical := &plan.Filter{Child: &plan.Select{Table: "t"}, Predicate: "name>'m'"}
	scanOp, err := CreateExecutor(scanPhysical, c, testDegree)
	if err != nil {
		t.Fatalf("CreateExecutor (scan): %v", err)
	}
	if _, err := scanOp.Execute(); err == nil {
		t.Fatal("expected UnsupportedOperator on the scan path too, for parity with the index path")
	}
}

func TestDeleteRejectsNonEqualityOnIndexedVarcharColumn(t *testing.T) {
	c := newCatalogWithRows(t)
	if err := c.CreateIndex("idx_name", "t", 1, testDegree); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	physical, err := planner.CreatePlan(&plan.Delete{Table: "t", Predicate: "name<'m'"}, c)
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if physical.(*plan.Delete).IndexName == "" {
		t.Fatal("expected the planner to bind idx_name for '<' regardless of column type")
	}
	op, err := CreateExecutor(physical, c, testDegree)
	if err != nil {
		t.Fatalf("CreateExecutor: %v", err)
	}
	if _, err := op.Execute(); err == nil {
		t.Fatal("expected UnsupportedOperator deleting with '<' against an indexed VARCHAR column")
	}
}

func TestUpdateRejectsNonEqualityOnIndexedVarcharColumn(t *testing.T) {
	c := newCatalogWithRows(t)
	if err := c.CreateIndex("idx_name", "t", 1, testDegree); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	physical, err := planner.CreatePlan(&plan.Update{
		Table:       "t",
		Predicate:   "name>'m'",
		Assignments: []plan.Assignment{{Column: "name", Literal: types.StringValue("z")}},
	}, c)
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if physical.(*plan.Update).IndexName == "" {
		t.Fatal("expected the planner to bind idx_name for '>' regardless of column type")
	}
	op, err := CreateExecutor(physical, c, testDegree)
	if err != nil {
		t.Fatalf("CreateExecutor: %v", err)
	}
	if _, err := op.Execute(); err == nil {
		t.Fatal("expected UnsupportedOperator updating with '>' against an indexed VARCHAR column")
	}
}

func TestSortOrdersAscendingByColumn(t *testing.T) {
	c := newCatalogWithRows(t)
	res := run(t, c, &plan.Sort{Child: &plan.Select{Table: "t", Columns: []string{"id"}}, Columns: []string{"id"}})
	if len(res.Rows) != 5 {
		t.Fatalf("len(Rows) = %d, want 5", len(res.Rows))
	}
	prev := int64(-1)
	for _, row := range res.Rows {
		f, _ := row.Field(0)
		if f.Int() < prev {
			t.Fatalf("rows not ascending: %d after %d", f.Int(), prev)
		}
		prev = f.Int()
	}
}

func TestDeleteRemovesMatchingRowsOnly(t *testing.T) {
	c := newCatalogWithRows(t)
	run(t, c, &plan.Delete{Table: "t", Predicate: "id=3"})

	res := run(t, c, &plan.Select{Table: "t"})
	if len(res.Rows) != 4 {
		t.Fatalf("len(Rows) after delete = %d, want 4", len(res.Rows))
	}
	for _, row := range res.Rows {
		f, _ := row.Field(0)
		if f.Int() == 3 {
			t.Error("deleted row id 3 is still present")
		}
	}
}

func TestDeleteWithEmptyPredicateRemovesEverything(t *testing.T) {
	c := newCatalogWithRows(t)
	run(t, c, &plan.Delete{Table: "t"})
	res := run(t, c, &plan.Select{Table: "t"})
	if len(res.Rows) != 0 {
		t.Fatalf("len(Rows) after unconditional delete = %d, want 0", len(res.Rows))
	}
}

func TestUpdateAppliesAssignmentsToMatchedRows(t *testing.T) {
	c := newCatalogWithRows(t)
	run(t, c, &plan.Update{
		Table:       "t",
		Predicate:   "id=2",
		Assignments: []plan.Assignment{{Column: "name", Literal: types.StringValue("updated")}},
	})

	res := run(t, c, &plan.Filter{Child: &plan.Select{Table: "t"}, Predicate: "id=2"})
	f, err := res.Rows[0].Field(1)
	if err != nil || f.Raw() != "updated" {
		t.Errorf("updated name = %v, want updated", f)
	}
}

func TestUpdateKeepsIndexConsistentAfterChangingIndexedColumn(t *testing.T) {
	c := newCatalogWithRows(t)
	if err := c.CreateIndex("idx_id", "t", 0, testDegree); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	run(t, c, &plan.Update{
		Table:       "t",
		Predicate:   "id=2",
		Assignments: []plan.Assignment{{Column: "id", Literal: types.IntValue(200)}},
	})

	res := run(t, c, &plan.Filter{Child: &plan.Select{Table: "t"}, Predicate: "id=200"})
	if len(res.Rows) != 1 {
		t.Fatalf("expected updated row findable via new indexed value, got %d rows", len(res.Rows))
	}
	res = run(t, c, &plan.Filter{Child: &plan.Select{Table: "t"}, Predicate: "id=2"})
	if len(res.Rows) != 0 {
		t.Fatalf("old indexed value should no longer resolve, got %d rows", len(res.Rows))
	}
}

func TestAggregateCountAndSumPerGroup(t *testing.T) {
	c := catalog.New()
	tbl, _ := c.CreateTable("sales", []schema.Column{
		{Name: "k", Type: types.VARCHAR},
		{Name: "v", Type: types.INTEGER},
	})
	_, _ = tbl.InsertTuple([]types.Value{types.StringValue("a"), types.IntValue(10)})
	_, _ = tbl.InsertTuple([]types.Value{types.StringValue("a"), types.IntValue(20)})
	_, _ = tbl.InsertTuple([]types.Value{types.StringValue("b"), types.IntValue(5)})

	res := run(t, c, &plan.Aggregate{
		Child:        &plan.Select{Table: "sales"},
		GroupColumns: []string{"k"},
		Aggregates: []plan.AggExpr{
			{Func: "COUNT", Column: "v"},
			{Func: "SUM", Column: "v"},
		},
	})
	if len(res.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2 groups", len(res.Rows))
	}
}

func TestAggregateNoGroupByOnEmptyTableProducesOneNeutralRow(t *testing.T) {
	c := catalog.New()
	_, _ = c.CreateTable("empty", []schema.Column{{Name: "v", Type: types.INTEGER}})

	res := run(t, c, &plan.Aggregate{
		Child:      &plan.Select{Table: "empty"},
		Aggregates: []plan.AggExpr{{Func: "COUNT", Column: "v"}, {Func: "SUM", Column: "v"}},
	})
	if len(res.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1 neutral row", len(res.Rows))
	}
	countField, _ := res.Rows[0].Field(0)
	sumField, _ := res.Rows[0].Field(1)
	if countField.Int() != 0 || sumField.Float() != 0 {
		t.Errorf("neutral row = (%v, %v), want (0, 0.0)", countField, sumField)
	}
}

func TestAggregateWithGroupByOnEmptyTableProducesZeroRows(t *testing.T) {
	c := catalog.New()
	_, _ = c.CreateTable("empty", []schema.Column{{Name: "k", Type: types.VARCHAR}, {Name: "v", Type: types.INTEGER}})

	res := run(t, c, &plan.Aggregate{
		Child:        &plan.Select{Table: "empty"},
		GroupColumns: []string{"k"},
		Aggregates:   []plan.AggExpr{{Func: "COUNT", Column: "v"}},
	})
	if len(res.Rows) != 0 {
		t.Fatalf("len(Rows) = %d, want 0 groups on an empty grouped input", len(res.Rows))
	}
}

func TestShowIndexesListsRegisteredIndexes(t *testing.T) {
	c := newCatalogWithRows(t)
	if err := c.CreateIndex("idx_id", "t", 0, testDegree); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	res := run(t, c, &plan.ShowIndexes{Table: "t"})
	if len(res.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(res.Rows))
	}
	name, _ := res.Rows[0].Field(0)
	if name.Raw() != "idx_id" {
		t.Errorf("index_name = %v, want idx_id", name)
	}
}

func TestExplainDescribesWithoutExecuting(t *testing.T) {
	c := newCatalogWithRows(t)
	res := run(t, c, &plan.Explain{Inner: &plan.Filter{Child: &plan.Select{Table: "t"}, Predicate: "id=1"}})
	if len(res.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(res.Rows))
	}
	text, _ := res.Rows[0].Field(0)
	if text.Raw() != "Filter[scan](Select(t))" {
		t.Errorf("describe() = %q", text.Raw())
	}
}

func TestExplainDescribesIndexBoundFilter(t *testing.T) {
	c := newCatalogWithRows(t)
	if err := c.CreateIndex("idx_id", "t", 0, testDegree); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	res := run(t, c, &plan.Explain{Inner: &plan.Filter{Child: &plan.Select{Table: "t"}, Predicate: "id=1"}})
	text, _ := res.Rows[0].Field(0)
	if text.Raw() != "Filter[index=idx_id](Select(t))" {
		t.Errorf("describe() = %q", text.Raw())
	}
}

func TestProjectNarrowsToRequestedColumns(t *testing.T) {
	c := newCatalogWithRows(t)
	res := run(t, c, &plan.Select{Table: "t"})
	projected, err := Project(res, []string{"name"})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if projected.Schema.Count() != 1 {
		t.Fatalf("projected Schema.Count() = %d, want 1", projected.Schema.Count())
	}
	if len(projected.Rows) != len(res.Rows) {
		t.Fatalf("Project should not change row count")
	}
}

func TestProjectWithNoColumnsIsNoop(t *testing.T) {
	c := newCatalogWithRows(t)
	res := run(t, c, &plan.Select{Table: "t"})
	same, err := Project(res, nil)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if same != res {
		t.Error("Project(res, nil) should return res unchanged")
	}
}

func TestInsertDefaultsUnspecifiedColumnsToZeroValue(t *testing.T) {
	c := catalog.New()
	_, _ = c.CreateTable("u", []schema.Column{
		{Name: "id", Type: types.INTEGER},
		{Name: "age", Type: types.INTEGER},
	})
	run(t, c, &plan.Insert{Table: "u", Columns: []string{"id"}, Values: []types.Value{types.IntValue(1)}})

	res := run(t, c, &plan.Select{Table: "u"})
	age, _ := res.Rows[0].Field(1)
	if age.Int() != 0 {
		t.Errorf("unspecified column age = %v, want zero value 0", age)
	}
}

func TestCreateTableDropTableRoundTrip(t *testing.T) {
	c := catalog.New()
	run(t, c, &plan.CreateTable{Table: "x", Columns: []schema.Column{{Name: "a", Type: types.INTEGER}}})
	if !c.HasTable("x") {
		t.Fatal("table x should exist after CreateTableOp")
	}
	run(t, c, &plan.DropTable{Table: "x"})
	if c.HasTable("x") {
		t.Fatal("table x should be gone after DropTableOp")
	}
}

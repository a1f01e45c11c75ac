package catalog

import (
	"testing"

	"storeql/pkg/dberrors"
	"storeql/pkg/schema"
	"storeql/pkg/types"
)

func cols() []schema.Column {
	return []schema.Column{
		{Name: "id", Type: types.INTEGER},
		{Name: "name", Type: types.VARCHAR},
	}
}

func TestCreateTableAndGetTable(t *testing.T) {
	c := New()
	tbl, err := c.CreateTable("users", cols())
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if !c.HasTable("users") {
		t.Error("HasTable(users) = false after create")
	}
	got, err := c.GetTable("users")
	if err != nil || got != tbl {
		t.Errorf("GetTable returned different table instance")
	}
}

func TestCreateTableRejectsDuplicateName(t *testing.T) {
	c := New()
	if _, err := c.CreateTable("users", cols()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if _, err := c.CreateTable("users", cols()); !dberrors.Is(err, dberrors.AlreadyExists) {
		t.Errorf("expected AlreadyExists, got %v", err)
	}
}

func TestGetTableNotFound(t *testing.T) {
	c := New()
	if _, err := c.GetTable("nope"); !dberrors.Is(err, dberrors.NotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestDropTableRemovesIndexesAndIndexColumns(t *testing.T) {
	c := New()
	if _, err := c.CreateTable("t", cols()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if err := c.CreateIndex("idx_id", "t", 0, 2); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	if err := c.DropTable("t"); err != nil {
		t.Fatalf("DropTable: %v", err)
	}
	if c.HasTable("t") {
		t.Error("table should be gone after DropTable")
	}
	if descs, err := c.GetIndexesForTable("t"); err == nil {
		t.Errorf("GetIndexesForTable on dropped table should fail, got %v", descs)
	}
}

func TestDropTableOnlyAffectsItsOwnIndexes(t *testing.T) {
	c := New()
	if _, err := c.CreateTable("a", cols()); err != nil {
		t.Fatalf("CreateTable a: %v", err)
	}
	if _, err := c.CreateTable("b", cols()); err != nil {
		t.Fatalf("CreateTable b: %v", err)
	}
	if err := c.CreateIndex("idx_a", "a", 0, 2); err != nil {
		t.Fatalf("CreateIndex a: %v", err)
	}
	if err := c.CreateIndex("idx_b", "b", 0, 2); err != nil {
		t.Fatalf("CreateIndex b: %v", err)
	}

	if err := c.DropTable("a"); err != nil {
		t.Fatalf("DropTable a: %v", err)
	}

	descs, err := c.GetIndexesForTable("b")
	if err != nil {
		t.Fatalf("GetIndexesForTable b: %v", err)
	}
	if len(descs) != 1 || descs[0].Record.IndexName != "idx_b" {
		t.Errorf("table b's index should survive dropping table a, got %+v", descs)
	}
}

func TestCreateIndexAndGetIndexesForTable(t *testing.T) {
	c := New()
	if _, err := c.CreateTable("t", cols()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if err := c.CreateIndex("idx_id", "t", 0, 2); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	descs, err := c.GetIndexesForTable("t")
	if err != nil {
		t.Fatalf("GetIndexesForTable: %v", err)
	}
	if len(descs) != 1 {
		t.Fatalf("got %d index descriptors, want 1", len(descs))
	}
	if descs[0].Record.IndexName != "idx_id" || len(descs[0].Columns) != 1 || descs[0].Columns[0] != "id" {
		t.Errorf("unexpected descriptor: %+v", descs[0])
	}
}

func TestDropIndexRemovesJustTheOneIndex(t *testing.T) {
	c := New()
	if _, err := c.CreateTable("t", cols()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if err := c.CreateIndex("idx_id", "t", 0, 2); err != nil {
		t.Fatalf("CreateIndex idx_id: %v", err)
	}
	if err := c.CreateIndex("idx_name", "t", 1, 2); err != nil {
		t.Fatalf("CreateIndex idx_name: %v", err)
	}

	if err := c.DropIndex("t", "idx_id"); err != nil {
		t.Fatalf("DropIndex: %v", err)
	}
	descs, err := c.GetIndexesForTable("t")
	if err != nil {
		t.Fatalf("GetIndexesForTable: %v", err)
	}
	if len(descs) != 1 || descs[0].Record.IndexName != "idx_name" {
		t.Errorf("expected only idx_name to remain, got %+v", descs)
	}
}

func TestDropIndexNotFound(t *testing.T) {
	c := New()
	if _, err := c.CreateTable("t", cols()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if err := c.DropIndex("t", "nope"); !dberrors.Is(err, dberrors.NotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

// Package catalog implements the named-table registry plus the four system
// tables (tables, columns, indexes, index_columns), grounded on the
// teacher's pkg/catalog/systable naming and pkg/catalog/catalogmanager's
// CreateTable/DropTable/CreateIndex shape, rebuilt as plain in-memory
// record slices rather than page-backed system tables (no persistence, per
// the spec's Non-goals) — system tables are private catalog state with no
// inheritance relationship to user tables, per the spec's design note.
package catalog

import (
	"storeql/pkg/dberrors"
	"storeql/pkg/rtable"
	"storeql/pkg/schema"
	"storeql/pkg/types"
)

// TableRecord is one row of the tables system table.
type TableRecord struct {
	TableID   int64
	TableName string
}

// ColumnRecord is one row of the columns system table.
type ColumnRecord struct {
	ColumnID   int64
	TableID    int64
	ColumnName string
	DataType   types.DataType
}

// IndexRecord is one row of the indexes system table.
type IndexRecord struct {
	IndexID   int64
	IndexName string
	TableID   int64
}

// IndexColumnRecord is one row of the index_columns system table.
type IndexColumnRecord struct {
	IndexID         int64
	ColumnID        int64
	OrdinalPosition int
}

// IndexDescriptor pairs an IndexRecord with the ordered column names it
// covers, as returned by GetIndexesForTable.
type IndexDescriptor struct {
	Record  IndexRecord
	Columns []string
}

// Catalog owns the name->table map and the four system tables. Ids are
// allocated from independent monotonic counters that are never reset.
type Catalog struct {
	tables map[string]*rtable.Table

	tableRecords       []TableRecord
	columnRecords      []ColumnRecord
	indexRecords       []IndexRecord
	indexColumnRecords []IndexColumnRecord

	nextTableID  int64
	nextColumnID int64
	nextIndexID  int64
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{tables: make(map[string]*rtable.Table)}
}

// HasTable reports whether name is a registered table.
func (c *Catalog) HasTable(name string) bool {
	_, ok := c.tables[name]
	return ok
}

// GetTable returns the registered table, failing with NotFound if absent.
func (c *Catalog) GetTable(name string) (*rtable.Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, dberrors.Newf(dberrors.NotFound, "catalog", "GetTable", "table %q not found", name)
	}
	return t, nil
}

// CreateTable allocates a table_id, appends one tables row and one columns
// row per column, then creates and registers the empty table. Fails with
// AlreadyExists if name is taken.
func (c *Catalog) CreateTable(name string, cols []schema.Column) (*rtable.Table, error) {
	if c.HasTable(name) {
		return nil, dberrors.Newf(dberrors.AlreadyExists, "catalog", "CreateTable", "table %q already exists", name)
	}
	s, err := schema.New(cols)
	if err != nil {
		return nil, err
	}

	tableID := c.nextTableID
	c.nextTableID++
	c.tableRecords = append(c.tableRecords, TableRecord{TableID: tableID, TableName: name})

	for _, col := range cols {
		columnID := c.nextColumnID
		c.nextColumnID++
		c.columnRecords = append(c.columnRecords, ColumnRecord{
			ColumnID: columnID, TableID: tableID, ColumnName: col.Name, DataType: col.Type,
		})
	}

	t := rtable.New(name, s)
	c.tables[name] = t
	return t, nil
}

// DropTable removes the table's tables row, its indexes rows, and the
// index_columns rows belonging to those indexes, then releases the table.
// Fails with NotFound if name is absent.
//
// The index_columns deletion is keyed on the set of index_ids that belong
// to this table — not on comparing index_id to table_id, which is the bug
// the source implementation has (see original_source/src/catalog/
// catalog.cpp's DropTable, which filters index_columns by
// `record.index_id == table_id`).
func (c *Catalog) DropTable(name string) error {
	tableID, err := c.tableIDByName(name)
	if err != nil {
		return err
	}

	droppedIndexIDs := make(map[int64]bool)
	keptIndexes := c.indexRecords[:0:0]
	for _, ir := range c.indexRecords {
		if ir.TableID == tableID {
			droppedIndexIDs[ir.IndexID] = true
			continue
		}
		keptIndexes = append(keptIndexes, ir)
	}
	c.indexRecords = keptIndexes

	keptIndexColumns := c.indexColumnRecords[:0:0]
	for _, icr := range c.indexColumnRecords {
		if droppedIndexIDs[icr.IndexID] {
			continue
		}
		keptIndexColumns = append(keptIndexColumns, icr)
	}
	c.indexColumnRecords = keptIndexColumns

	keptTables := c.tableRecords[:0:0]
	for _, tr := range c.tableRecords {
		if tr.TableID == tableID {
			continue
		}
		keptTables = append(keptTables, tr)
	}
	c.tableRecords = keptTables

	delete(c.tables, name)
	return nil
}

// CreateIndex validates the table exists, delegates to the table's
// CreateIndex, then allocates an index_id and appends the indexes and
// index_columns rows describing it.
func (c *Catalog) CreateIndex(indexName, tableName string, columnIndex int, degree int) error {
	t, err := c.GetTable(tableName)
	if err != nil {
		return err
	}
	col, err := t.Schema().ColumnAt(columnIndex)
	if err != nil {
		return err
	}

	if err := t.CreateIndex(indexName, columnIndex, col.Type, degree); err != nil {
		return err
	}

	tableID, err := c.tableIDByName(tableName)
	if err != nil {
		return err
	}
	columnID, err := c.columnIDByName(tableID, col.Name)
	if err != nil {
		return err
	}

	indexID := c.nextIndexID
	c.nextIndexID++
	c.indexRecords = append(c.indexRecords, IndexRecord{IndexID: indexID, IndexName: indexName, TableID: tableID})
	c.indexColumnRecords = append(c.indexColumnRecords, IndexColumnRecord{
		IndexID: indexID, ColumnID: columnID, OrdinalPosition: 1,
	})
	return nil
}

// DropIndex removes indexName from tableName's table and drops its
// indexes/index_columns rows.
func (c *Catalog) DropIndex(tableName, indexName string) error {
	t, err := c.GetTable(tableName)
	if err != nil {
		return err
	}
	tableID, err := c.tableIDByName(tableName)
	if err != nil {
		return err
	}

	var indexID int64 = -1
	keptIndexes := c.indexRecords[:0:0]
	for _, ir := range c.indexRecords {
		if ir.TableID == tableID && ir.IndexName == indexName {
			indexID = ir.IndexID
			continue
		}
		keptIndexes = append(keptIndexes, ir)
	}
	if indexID == -1 {
		return dberrors.Newf(dberrors.NotFound, "catalog", "DropIndex", "index %q not found on table %q", indexName, tableName)
	}
	c.indexRecords = keptIndexes

	keptIndexColumns := c.indexColumnRecords[:0:0]
	for _, icr := range c.indexColumnRecords {
		if icr.IndexID == indexID {
			continue
		}
		keptIndexColumns = append(keptIndexColumns, icr)
	}
	c.indexColumnRecords = keptIndexColumns

	t.DropIndex(indexName)
	return nil
}

// GetIndexesForTable returns the indexes defined on name, each with its
// ordered column-name list, joining indexes ⋈ index_columns ⋈ columns on
// their ids and preserving ordinal order.
func (c *Catalog) GetIndexesForTable(name string) ([]IndexDescriptor, error) {
	tableID, err := c.tableIDByName(name)
	if err != nil {
		return nil, err
	}

	var out []IndexDescriptor
	for _, ir := range c.indexRecords {
		if ir.TableID != tableID {
			continue
		}
		var cols []indexColumnWithOrdinal
		for _, icr := range c.indexColumnRecords {
			if icr.IndexID != ir.IndexID {
				continue
			}
			colName := c.columnNameByID(icr.ColumnID)
			cols = append(cols, indexColumnWithOrdinal{name: colName, ordinal: icr.OrdinalPosition})
		}
		sortByOrdinal(cols)

		names := make([]string, len(cols))
		for i, col := range cols {
			names[i] = col.name
		}
		out = append(out, IndexDescriptor{Record: ir, Columns: names})
	}
	return out, nil
}

type indexColumnWithOrdinal struct {
	name    string
	ordinal int
}

func sortByOrdinal(cols []indexColumnWithOrdinal) {
	for i := 1; i < len(cols); i++ {
		for j := i; j > 0 && cols[j].ordinal < cols[j-1].ordinal; j-- {
			cols[j], cols[j-1] = cols[j-1], cols[j]
		}
	}
}

func (c *Catalog) tableIDByName(name string) (int64, error) {
	for _, tr := range c.tableRecords {
		if tr.TableName == name {
			return tr.TableID, nil
		}
	}
	return 0, dberrors.Newf(dberrors.NotFound, "catalog", "tableIDByName", "table %q not found", name)
}

func (c *Catalog) columnIDByName(tableID int64, columnName string) (int64, error) {
	for _, cr := range c.columnRecords {
		if cr.TableID == tableID && cr.ColumnName == columnName {
			return cr.ColumnID, nil
		}
	}
	return 0, dberrors.Newf(dberrors.NotFound, "catalog", "columnIDByName", "column %q not found", columnName)
}

func (c *Catalog) columnNameByID(columnID int64) string {
	for _, cr := range c.columnRecords {
		if cr.ColumnID == columnID {
			return cr.ColumnName
		}
	}
	return ""
}

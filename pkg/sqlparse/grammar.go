// Package sqlparse is the Glue-layer SQL parser: it turns query text into
// the logical plan tree the Planner consumes, sitting outside the four
// CORE subsystems per the spec's placement of "the SQL lexer/parser
// producing the logical plan" as an external collaborator. Grounded on
// other_examples/r-ef-fasty__engine.go's struct-tag grammar (a top-level
// command sum type, WhereClause/Condition shape, typed literal union).
package sqlparse

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Float", Pattern: `[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "String", Pattern: `'[^']*'`},
	{Name: "Punct", Pattern: `<=|>=|[(),;=<>*]`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
})

var sqlParser = participle.MustBuild[Query](
	participle.Lexer(sqlLexer),
	participle.CaseInsensitive("Ident"),
	participle.Elide("Whitespace"),
)

// Query is the top-level grammar sum type: EXPLAIN wraps any other
// statement, so it is tried first to keep the recursion one level deep.
type Query struct {
	Explain *ExplainStmt `parser:"  @@"`
	Stmt    *Stmt        `parser:"| @@"`
}

// Stmt is every statement EXPLAIN can wrap.
type Stmt struct {
	Select      *SelectStmt      `parser:"  @@"`
	Insert      *InsertStmt      `parser:"| @@"`
	CreateIndex *CreateIndexStmt `parser:"| @@"`
	Create      *CreateStmt      `parser:"| @@"`
	DropIndex   *DropIndexStmt   `parser:"| @@"`
	Drop        *DropStmt        `parser:"| @@"`
	Delete      *DeleteStmt      `parser:"| @@"`
	Update      *UpdateStmt      `parser:"| @@"`
	ShowIndexes *ShowIndexesStmt `parser:"| @@"`
}

type ExplainStmt struct {
	Inner *Stmt `parser:"'EXPLAIN' @@"`
}

// ColExpr is one projection expression: a bare column, '*', or an
// aggregate call. Any aggregate call puts the statement on the aggregate
// path; without a GROUP BY clause the whole table forms one group.
type ColExpr struct {
	Agg    *AggCall `parser:"  @@"`
	Star   bool     `parser:"| @'*'"`
	Column string   `parser:"| @Ident"`
}

type AggCall struct {
	Func   string `parser:"@('SUM'|'COUNT'|'AVG')"`
	Column string `parser:"'(' @Ident ')'"`
}

type SelectStmt struct {
	Columns []*ColExpr `parser:"'SELECT' @@ (',' @@)*"`
	Table   string     `parser:"'FROM' @Ident"`
	Where   *Predicate `parser:"('WHERE' @@)?"`
	GroupBy []string   `parser:"('GROUP' 'BY' @Ident (',' @Ident)*)?"`
	OrderBy []string   `parser:"('ORDER' 'BY' @Ident (',' @Ident)*)?"`
}

// Predicate is the grammar's single comparison predicate: ident op literal.
type Predicate struct {
	Column  string   `parser:"@Ident"`
	Op      string   `parser:"@('<='|'>='|'='|'<'|'>')"`
	Literal *Literal `parser:"@@"`
}

// Literal types by lexer token class, which already encodes the spec's
// precedence: quoted strings and bare identifiers lex separately from
// numbers, and Float is tried before Int so "3.5" lexes whole.
type Literal struct {
	Float  *float64 `parser:"(  @Float"`
	Int    *int64   `parser:" | @Int"`
	Str    *string  `parser:" | @String"`
	Bare   *string  `parser:" | @Ident )"`
}

type InsertStmt struct {
	Table   string     `parser:"'INSERT' 'INTO' @Ident"`
	Columns []string   `parser:"'(' @Ident (',' @Ident)* ')'"`
	Values  []*Literal `parser:"'VALUES' '(' @@ (',' @@)* ')'"`
}

type ColDef struct {
	Name string `parser:"@Ident"`
	Type string `parser:"@('INT'|'INTEGER'|'DOUBLE'|'VARCHAR')"`
}

type CreateStmt struct {
	Table   string    `parser:"'CREATE' 'TABLE' @Ident"`
	Columns []*ColDef `parser:"'(' @@ (',' @@)* ')'"`
}

type DeleteStmt struct {
	Table string     `parser:"'DELETE' 'FROM' @Ident"`
	Where *Predicate `parser:"('WHERE' @@)?"`
}

type Assignment struct {
	Column  string   `parser:"@Ident '='"`
	Literal *Literal `parser:"@@"`
}

type UpdateStmt struct {
	Table string        `parser:"'UPDATE' @Ident 'SET'"`
	Set   []*Assignment `parser:"@@ (',' @@)*"`
	Where *Predicate    `parser:"('WHERE' @@)?"`
}

type DropStmt struct {
	Table string `parser:"'DROP' 'TABLE' @Ident"`
}

type DropIndexStmt struct {
	IndexName string `parser:"'DROP' 'INDEX' @Ident"`
	Table     string `parser:"'ON' @Ident"`
}

type CreateIndexStmt struct {
	IndexName string `parser:"'CREATE' 'INDEX' @Ident"`
	Table     string `parser:"'ON' @Ident"`
	Column    string `parser:"'(' @Ident ')'"`
}

type ShowIndexesStmt struct {
	Table string `parser:"'SHOW' 'INDEXES' 'FROM' @Ident"`
}

// storeql is a plain bufio.Scanner REPL over pkg/engine, replacing the
// teacher's bubbletea/lipgloss TUI — the interactive shell's line-editing
// and history are explicitly out of scope, and nothing in this engine has
// a terminal-rendering surface to bind a TUI library to.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"storeql/pkg/engine"
)

type Configuration struct {
	Degree     int
	ImportFile string
}

func main() {
	config := parseArguments()
	db := engine.New(engine.Config{Degree: config.Degree})

	if config.ImportFile != "" {
		if err := importData(db, config.ImportFile); err != nil {
			fmt.Fprintf(os.Stderr, "failed to import data: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("storeql - type EXIT or QUIT to leave")
	runREPL(db, os.Stdin, os.Stdout)
}

// parseArguments processes command-line flags.
func parseArguments() Configuration {
	var config Configuration
	flag.IntVar(&config.Degree, "degree", engine.DefaultDegree, "B+-tree minimum degree for CREATE INDEX")
	flag.StringVar(&config.ImportFile, "import", "", "SQL file to import on startup")
	flag.Parse()
	return config
}

// runREPL reads one statement per line until EOF or EXIT/QUIT
// (case-insensitive), printing "Error: <message>" on failure and
// continuing — a parse or execution error never terminates the REPL (§7).
func runREPL(db *engine.Database, in *os.File, out *os.File) {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "storeql> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, "storeql> ")
			continue
		}

		upper := strings.ToUpper(line)
		if upper == "EXIT" || upper == "QUIT" {
			return
		}

		result, err := db.Execute(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %s\n", engine.AsDBError(err).Error())
			fmt.Fprint(out, "storeql> ")
			continue
		}
		printResult(out, result)
		fmt.Fprint(out, "storeql> ")
	}
}

func printResult(out *os.File, result engine.QueryResult) {
	if len(result.Columns) == 0 {
		fmt.Fprintln(out, result.Message)
		return
	}

	fmt.Fprintln(out, strings.Join(result.Columns, "\t"))
	for _, row := range result.Rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
	fmt.Fprintln(out, result.Message)
}

// importData loads ';'-separated statements from a file and runs each
// through db, reporting per-statement failures without aborting the import.
func importData(db *engine.Database, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read import file: %v", err)
	}

	statements := strings.Split(string(content), ";")
	successCount := 0
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Execute(stmt); err != nil {
			fmt.Printf("failed to execute: %s\n  error: %v\n", truncateString(stmt, 50), err)
		} else {
			successCount++
		}
	}

	fmt.Printf("import completed: %d/%d statements successful\n", successCount, len(statements))
	return nil
}

func truncateString(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

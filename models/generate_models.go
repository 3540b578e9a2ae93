package models

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Query helpers & column report

Set GENERATE_MODELS=true and start the server to write typed query helpers for every model
into ./generated (gorm.io/gen) and print a report of table columns that no model field maps to.

Example report:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
  - legacy_slug
=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All lists every persisted model, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Project{},
		&ProjectTag{},
		&Forum{},
		&Comment{},
		&Reaction{},
		&Rating{},
		&Consultation{},
	}
}

// GenerateModels writes gorm/gen query helpers for All() into outPath.
func GenerateModels(db *gorm.DB, outPath string) {
	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()
}

// ColumnMismatches returns, per table, the columns present in the database that no model
// field maps to. Tables that do not exist yet are skipped.
func ColumnMismatches(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)
	migrator := db.Migrator()

	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table
		if !migrator.HasTable(table) {
			continue
		}

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("column types for %s: %w", table, err)
		}

		known := modelColumns(stmt.Schema)
		var missing []string
		for _, ct := range columnTypes {
			if _, ok := known[ct.Name()]; !ok {
				missing = append(missing, ct.Name())
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			report[table] = missing
		}
	}
	return report, nil
}

// FormatColumnReport renders ColumnMismatches output the way it is printed at startup.
func FormatColumnReport(report map[string][]string) string {
	var b strings.Builder
	b.WriteString("=== COLUMN MISMATCH REPORT ===\n")

	tables := make([]string, 0, len(report))
	for table := range report {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	total := 0
	for _, table := range tables {
		fmt.Fprintf(&b, "--- Table: %s ---\n", table)
		for _, col := range report[table] {
			fmt.Fprintf(&b, "  - %s\n", col)
		}
		total += len(report[table])
	}
	b.WriteString("=== SUMMARY ===\n")
	fmt.Fprintf(&b, "Total mismatched columns across all tables: %d\n", total)
	return b.String()
}

func modelColumns(s *schema.Schema) map[string]struct{} {
	cols := make(map[string]struct{}, len(s.DBNames))
	for _, name := range s.DBNames {
		cols[name] = struct{}{}
	}
	return cols
}

// Package dbtools backs the operational CLIs: SQL export, statement-wise
// import, and connectivity diagnosis. Every operation is a single attempt;
// retries are the operator's call.
package dbtools

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"
)

// exportTables is the dump order. Parents precede children so the dump
// can be replayed against a schema with foreign keys enforced.
var exportTables = []string{
	"roles",
	"users",
	"user_languages",
	"waves",
	"customer_wave_permissions",
	"properties",
	"property_images",
	"property_amenities",
	"property_features",
	"favorites",
	"inquiries",
	"search_histories",
	"search_filters",
	"customer_activities",
	"activity_metadata",
	"customer_points",
	"currency_rates",
	"client_locations",
}

// ExportFileName builds the timestamped dump name.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("aimrealty_export_%s.sql", now.Format("20060102_150405"))
}

// Export writes the full database content as INSERT statements. Empty
// tables produce a comment line so the dump documents what was inspected.
func Export(db *gorm.DB, w io.Writer) error {
	fmt.Fprintf(w, "-- AIMRealty database export\n-- Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339))

	for _, table := range exportTables {
		if err := exportTable(db, w, table); err != nil {
			return fmt.Errorf("export %s: %w", table, err)
		}
	}

	return nil
}

func exportTable(db *gorm.DB, w io.Writer, table string) error {
	rows, err := db.Raw("SELECT * FROM " + table).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "-- Table: %s\n", table)

	count := 0
	for rows.Next() {
		values := make([]interface{}, len(columns))
		scanTargets := make([]interface{}, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}

		if err := rows.Scan(scanTargets...); err != nil {
			return err
		}

		fmt.Fprintf(w, "INSERT INTO %s (%s) VALUES (%s);\n",
			table,
			strings.Join(columns, ", "),
			renderValues(values))
		count++
	}

	if count == 0 {
		fmt.Fprintf(w, "-- (no rows)\n")
	}
	fmt.Fprintln(w)

	return rows.Err()
}

func renderValues(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = renderValue(v)
	}
	return strings.Join(parts, ", ")
}

func renderValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case time.Time:
		return "'" + val.UTC().Format("2006-01-02 15:04:05.999999") + "'"
	case []byte:
		return quoteString(string(val))
	case string:
		return quoteString(val)
	default:
		return quoteString(fmt.Sprintf("%v", val))
	}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

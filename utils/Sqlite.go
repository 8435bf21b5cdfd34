package utils

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/reaandrew/rewritestats/core"
)

// InitializeSQLiteDB opens (or creates) the SQLite DB and applies the schema
// for per-function error counts. Any existing database at the path is removed
// first so every run starts from a clean slate.
func InitializeSQLiteDB(dbPath string) (*sql.DB, error) {
	if err := DeleteDatabaseFileIfExists(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// One-shot bulk load; durability of intermediate state does not matter.
	_, _ = db.Exec("PRAGMA journal_mode = WAL;")
	_, _ = db.Exec("PRAGMA synchronous = OFF;")

	createStmt := `CREATE TABLE IF NOT EXISTS FunctionErrors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		Log TEXT,
		Name TEXT,
		Errors INTEGER
	);`

	if _, err := db.Exec(createStmt); err != nil {
		return nil, fmt.Errorf("failed to create FunctionErrors table: %w", err)
	}

	return db, nil
}

func InsertFunctionRecords(db *sql.DB, records []core.FunctionRecord) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO FunctionErrors (Log, Name, Errors)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, execErr := stmt.Exec(record.Log, record.Name, record.Errors); execErr != nil {
			return fmt.Errorf("failed to insert record for '%s': %w", record.Name, execErr)
		}
	}

	return nil
}

// ExecuteSQLQuery runs a SQL query and returns the results as a slice of maps.
func ExecuteSQLQuery(db *sql.DB, query string) ([]map[string]interface{}, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query '%s': %w", query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve columns for query '%s': %w", query, err)
	}

	var results []map[string]interface{}

	for rows.Next() {
		columnValues := make([]interface{}, len(columns))
		columnPointers := make([]interface{}, len(columns))
		for i := range columnValues {
			columnPointers[i] = &columnValues[i]
		}

		if err := rows.Scan(columnPointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row for query '%s': %w", query, err)
		}

		rowData := make(map[string]interface{})
		for i, colName := range columns {
			value := columnValues[i]
			// Convert []byte to string for text columns
			if b, ok := value.([]byte); ok {
				rowData[colName] = string(b)
			} else {
				rowData[colName] = value
			}
		}

		results = append(results, rowData)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error for query '%s': %w", query, err)
	}

	return results, nil
}

func DeleteDatabaseFileIfExists(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to check if file exists at path %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("path %s is a directory, not a file", path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete database file at path %s: %w", path, err)
	}

	return nil
}

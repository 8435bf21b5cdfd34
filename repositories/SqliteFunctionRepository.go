package repositories

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/reaandrew/rewritestats/core"
	"github.com/reaandrew/rewritestats/utils"
)

// SqliteFunctionRepository implements core.FunctionRepository on SQLite so
// that reporters can run aggregate queries over per-function rows.
type SqliteFunctionRepository struct {
	db     *sql.DB
	dbPath string
}

// NewSqliteFunctionRepository creates a new SQLite-backed repository.
// dbPath is the filename/path for the database (e.g. "functions.db").
func NewSqliteFunctionRepository(dbPath string) (*SqliteFunctionRepository, error) {
	db, err := utils.InitializeSQLiteDB(dbPath)
	if err != nil {
		return nil, err
	}

	return &SqliteFunctionRepository{db: db, dbPath: dbPath}, nil
}

func (r *SqliteFunctionRepository) Store(records []core.FunctionRecord) error {
	return utils.InsertFunctionRecords(r.db, records)
}

func (r *SqliteFunctionRepository) NewIterator() core.FunctionIterator {
	return &sqliteFunctionIterator{repo: r}
}

// DBPath exposes the database location so query-driven reporters can open
// their own read connection.
func (r *SqliteFunctionRepository) DBPath() string {
	return r.dbPath
}

func (r *SqliteFunctionRepository) Close() error {
	return r.db.Close()
}

// sqliteFunctionIterator walks the FunctionErrors rows in insertion order.
type sqliteFunctionIterator struct {
	repo      *SqliteFunctionRepository
	currentID int
	current   *core.FunctionRecord
}

func (it *sqliteFunctionIterator) HasNext() bool {
	row := it.repo.db.QueryRow(`
		SELECT id, Log, Name, Errors
		FROM FunctionErrors
		WHERE id > ?
		ORDER BY id ASC
		LIMIT 1
	`, it.currentID)

	var id int
	var record core.FunctionRecord
	if err := row.Scan(&id, &record.Log, &record.Name, &record.Errors); err != nil {
		it.current = nil
		return false
	}

	it.currentID = id
	it.current = &record
	return true
}

func (it *sqliteFunctionIterator) Next() (core.FunctionRecord, error) {
	if it.current == nil {
		return core.FunctionRecord{}, fmt.Errorf("no more records available")
	}
	return *it.current, nil
}

func (it *sqliteFunctionIterator) Reset() error {
	it.currentID = 0
	it.current = nil
	return nil
}

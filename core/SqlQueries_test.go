package core

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadSqlQueries(t *testing.T) {
	dir, err := os.MkdirTemp("", "prefix")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	queriesPath := path.Join(dir, "queries.yaml")
	content := `queries:
  - name: Failing functions
    query: SELECT Name FROM FunctionErrors WHERE Errors > 0
`
	err = os.WriteFile(queriesPath, []byte(content), 0644)
	assert.Nil(t, err)

	queries, err := LoadSqlQueries(queriesPath)
	assert.Nil(t, err)
	assert.Len(t, queries.Queries, 1)
	assert.Equal(t, "Failing functions", queries.Queries[0].Name)
	assert.Equal(t, "SELECT Name FROM FunctionErrors WHERE Errors > 0", queries.Queries[0].Query)
}

func TestLoadSqlQueriesMissingFileFails(t *testing.T) {
	_, err := LoadSqlQueries("does-not-exist.yaml")
	assert.NotNil(t, err)
}

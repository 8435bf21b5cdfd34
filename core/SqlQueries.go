package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SqlQuery struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
}

// SqlQueries holds a collection of SqlQuery instances.
type SqlQueries struct {
	Queries []SqlQuery `yaml:"queries"`
}

// LoadSqlQueries reads summary queries from a YAML file.
func LoadSqlQueries(path string) (SqlQueries, error) {
	var queries SqlQueries

	fileData, err := os.ReadFile(path)
	if err != nil {
		return queries, fmt.Errorf("failed to read YAML file '%s': %w", path, err)
	}

	err = yaml.Unmarshal(fileData, &queries)
	if err != nil {
		return queries, fmt.Errorf("failed to unmarshal YAML data: %w", err)
	}

	return queries, nil
}

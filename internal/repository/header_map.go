package repository

import (
	"fmt"
	"strings"
)

// createHeaderMap creates a map of column names to their indices.
// Every required column must be present; optional columns are mapped when found.
func createHeaderMap(header []string, required []string, optional ...string) (map[string]int, error) {
	columnMap := make(map[string]int)

	for _, column := range required {
		i, found := findColumn(header, column)
		if !found {
			return nil, fmt.Errorf("required field '%s' not found in CSV header", column)
		}
		columnMap[column] = i
	}

	for _, column := range optional {
		if i, found := findColumn(header, column); found {
			columnMap[column] = i
		}
	}

	return columnMap, nil
}

func findColumn(header []string, column string) (int, bool) {
	for i, field := range header {
		if strings.EqualFold(column, field) {
			return i, true
		}
	}
	return -1, false
}

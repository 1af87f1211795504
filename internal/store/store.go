package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultDBFile = "apprater.db"
)

// CheckExists verifies if the datastore file exists at the given path.
// Returns true if the store exists, false otherwise.
func CheckExists(dbPath string) (bool, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check store existence: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("datastore path is a directory, expected file: %s", dbPath)
	}
	return true, nil
}

// GetDBPath resolves a configured location to a database file.
// An empty location means DefaultDBFile in the current working directory;
// an existing directory gets DefaultDBFile appended.
func GetDBPath(location string) string {
	if location == "" {
		return DefaultDBFile
	}
	if info, err := os.Stat(location); err == nil && info.IsDir() {
		return filepath.Join(location, DefaultDBFile)
	}
	return location
}

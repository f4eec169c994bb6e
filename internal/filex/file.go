// Package filex holds small filesystem helpers shared by the storage layer.
package filex

import (
	"fmt"
	"os"
)

// EnsureDir creates dir and any missing parents. The vault keeps account,
// credential and history documents there, so the directory is private to the
// owning user.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// Package seeders provides a registry of database seed functions.
//
// Define a seeder in any file in this package:
//
//	func init() {
//	    seeders.Register("admin", SeedAdmin)
//	}
//
// Then run via CLI (`vendora seed`) or at server startup.
package seeders

import (
	"context"
	"fmt"
	"sync"

	"github.com/vendora/vendora/pkg/database"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, db *database.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order.
// It stops on the first error.
func RunAll(ctx context.Context, db *database.DB) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	for _, e := range current {
		if err := e.fn(ctx, db); err != nil {
			return fmt.Errorf("seeder %s: %w", e.name, err)
		}
	}
	return nil
}

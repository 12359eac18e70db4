package storage

import "fmt"

// Open constructs the configured Store backend. location is the data
// directory for "file", the database file for "sqlite", and the DSN for
// "postgres"; it is ignored for "memory".
func Open(backend, location string) (Store, error) {
	switch backend {
	case "", "file":
		return NewFileStore(location)
	case "sqlite":
		return NewSQLiteStore(location)
	case "postgres":
		return NewPostgresStore(location)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

package store

import (
	"fmt"
	"log"
)

// Open selects the backend: the remote database when a DSN is configured,
// otherwise (or when it is unreachable and strict is off) the local SQLite
// file. In strict mode a remote failure aborts instead of falling back.
func Open(postgresDSN, sqlitePath string, strict bool) (Store, error) {
	if postgresDSN != "" {
		s, err := OpenPostgres(postgresDSN)
		if err == nil {
			return s, nil
		}
		if strict {
			return nil, fmt.Errorf("connect remote store (strict mode): %w", err)
		}
		log.Printf("[WARN] remote store unavailable, falling back to local sqlite: %v", err)
	} else {
		log.Println("[INFO] no MARKETDB_DSN configured, using local sqlite")
	}
	return OpenSQLite(sqlitePath)
}

package reportstore

import (
	"database/sql"

	"codeberg.org/mutker/syshealth/internal/errors"
)

// initSchema creates the single-row report table. The fixed id column
// enforces the mailbox shape at the schema level.
func initSchema(db *sql.DB) error {
	errFactory := errors.New()

	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS report (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            computed_at INTEGER NOT NULL,
            health_score INTEGER NOT NULL,
            payload TEXT NOT NULL
        )
    `)
	if err != nil {
		return errFactory.Wrap(ErrStorageInit, err)
	}

	return nil
}

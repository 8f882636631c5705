package db

import (
	"fmt"
	"log"
)

// RunMigrations applies any pending database migrations
func (db *DB) RunMigrations() error {
	if err := db.runUpdatedAtMigration(); err != nil {
		return err
	}

	return nil
}

// runUpdatedAtMigration adds the updated_at column to stores created before it existed
func (db *DB) runUpdatedAtMigration() error {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('kv_store')
		WHERE name = 'updated_at'
	`).Scan(&count)

	if err != nil {
		return fmt.Errorf("checking for updated_at column: %w", err)
	}

	if count > 0 {
		return nil
	}

	log.Println("Running migration: Adding updated_at column...")

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	// SQLite rejects a non-constant default in ADD COLUMN; Set fills the value in
	_, err = tx.Exec(`ALTER TABLE kv_store ADD COLUMN updated_at DATETIME`)
	if err != nil && err.Error() != "duplicate column name: updated_at" {
		return fmt.Errorf("adding updated_at column: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}

	log.Println("Migration completed successfully")
	return nil
}

package metrics

import (
	"database/sql"

	"codeberg.org/vintar/cpuctl/internal/errors"
	"codeberg.org/vintar/cpuctl/internal/logger"
)

const (
	SchemaVersion = 1

	// SQL statements derived from schema
	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS samples (
	       timestamp      INTEGER NOT NULL,
	       core           INTEGER NOT NULL,
	       freq_current   INTEGER NOT NULL CHECK (typeof(freq_current) = 'integer'),
	       freq_min       INTEGER NOT NULL CHECK (typeof(freq_min) = 'integer'),
	       freq_max       INTEGER NOT NULL CHECK (typeof(freq_max) = 'integer'),
	       temp_milli     INTEGER NOT NULL CHECK (typeof(temp_milli) = 'integer'),
	       usage_percent  REAL NOT NULL CHECK (usage_percent >= 0.0 AND usage_percent <= 100.0),
	       governor       TEXT NOT NULL,
	       turbo          INTEGER NOT NULL CHECK (turbo IN (0, 1)),
	       PRIMARY KEY (timestamp, core)
	   );`

	insertSampleSQL = `
    INSERT INTO samples (
        timestamp, core,
        freq_current, freq_min, freq_max,
        temp_milli, usage_percent, governor, turbo
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT(timestamp, core) DO UPDATE SET
        freq_current = excluded.freq_current,
        freq_min = excluded.freq_min,
        freq_max = excluded.freq_max,
        temp_milli = excluded.temp_milli,
        usage_percent = excluded.usage_percent,
        governor = excluded.governor,
        turbo = excluded.turbo`
)

// InitSchema creates a new database schema with the current version
func InitSchema(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	// Track transaction state
	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				if !errors.Is(err, sql.ErrTxDone) {
					log.Debug().Err(err).Msg("Failed to rollback transaction")
				}
			}
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			SQL   string
		}{
			Error: err.Error(),
			SQL:   createTablesSQL,
		})
	}

	if _, err := tx.Exec(`
        INSERT INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			Phase string
		}{
			Error: err.Error(),
			Phase: "record_version",
		})
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}
	committed = true

	log.Info().
		Int("version", SchemaVersion).
		Msg("Schema initialized successfully")

	return nil
}

// GetSchemaVersion returns the current schema version
func GetSchemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	exists, err := TableExists(db, "schema_versions")
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = db.QueryRow(`
        SELECT version
        FROM schema_versions
        ORDER BY version DESC
        LIMIT 1
    `).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Error string
		}{
			Phase: "get_version",
			Error: err.Error(),
		})
	}

	return version, nil
}

// TableExists checks if a table exists
func TableExists(db *sql.DB, tableName string) (bool, error) {
	errFactory := errors.New()
	var exists bool
	err := db.QueryRow(`
        SELECT EXISTS (
            SELECT 1 FROM sqlite_master
            WHERE type='table' AND name=?
        )
    `, tableName).Scan(&exists)
	if err != nil {
		return false, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Table string
			Error string
		}{
			Phase: "check_table_exists",
			Table: tableName,
			Error: err.Error(),
		})
	}

	return exists, nil
}

// ValidateAndUpdateSchema initializes the schema on an empty database and
// rejects databases written by a newer version.
func ValidateAndUpdateSchema(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	version, err := GetSchemaVersion(db)
	if err != nil {
		return err
	}

	switch {
	case version == 0:
		return InitSchema(db, log)
	case version == SchemaVersion:
		return nil
	case version > SchemaVersion:
		return errFactory.WithData(ErrSchemaValidationFailed, struct {
			Found    int
			Expected int
		}{
			Found:    version,
			Expected: SchemaVersion,
		})
	default:
		// No migrations defined yet below the current version
		return errFactory.WithData(ErrSchemaValidationFailed, struct {
			Found    int
			Expected int
		}{
			Found:    version,
			Expected: SchemaVersion,
		})
	}
}

// GetInsertSampleSQL returns the SQL to insert a sample
func GetInsertSampleSQL() string {
	return insertSampleSQL
}

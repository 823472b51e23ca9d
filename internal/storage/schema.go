// ABOUTME: SQLite schema for daily metrics and readiness scores.
// ABOUTME: date is the PRIMARY KEY of both tables; uniqueness holds by construction.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_metrics (
		date TEXT PRIMARY KEY,
		hrv REAL NOT NULL DEFAULT 0,
		resting_heart_rate REAL NOT NULL DEFAULT 0,
		sleep_hours REAL NOT NULL DEFAULT 0,
		sleep_quality REAL NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS readiness_scores (
		date TEXT PRIMARY KEY,
		score REAL NOT NULL,
		category TEXT NOT NULL,
		hrv_baseline REAL NOT NULL,
		hrv_deviation_percent REAL NOT NULL,
		rhr_adjustment REAL NOT NULL,
		sleep_adjustment REAL NOT NULL,
		mode TEXT NOT NULL,
		window_length_days INTEGER NOT NULL,
		calculated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scores_calculated ON readiness_scores(calculated_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}

package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Colors table - one row per saved color
		`CREATE TABLE IF NOT EXISTS colors (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			hex TEXT NOT NULL,
			r INTEGER NOT NULL CHECK(r BETWEEN 0 AND 255),
			g INTEGER NOT NULL CHECK(g BETWEEN 0 AND 255),
			b INTEGER NOT NULL CHECK(b BETWEEN 0 AND 255),
			hsv_h INTEGER NOT NULL,
			hsv_s INTEGER NOT NULL,
			hsv_v INTEGER NOT NULL,
			hsl_h INTEGER NOT NULL,
			hsl_s INTEGER NOT NULL,
			hsl_l INTEGER NOT NULL,
			mode TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_colors_created_at ON colors(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_colors_hex ON colors(hex)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

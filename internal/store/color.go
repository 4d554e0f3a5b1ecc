package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/chromatip/internal/chroma"
)

// Color is a saved color with the position and mode it was detected with.
type Color struct {
	ID             string                `json:"id"`
	Classification chroma.Classification `json:"classification"`
	Mode           string                `json:"mode"`
	X              int                   `json:"x"`
	Y              int                   `json:"y"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ColorRepository provides CRUD operations for saved colors.
type ColorRepository struct {
	db *sql.DB
}

// Colors returns the color repository for this store.
func (s *Store) Colors() *ColorRepository {
	return &ColorRepository{db: s.db}
}

const colorColumns = `id, name, hex, r, g, b, hsv_h, hsv_s, hsv_v, hsl_h, hsl_s, hsl_l, mode, x, y, created_at`

// Create inserts a new color into the database.
func (r *ColorRepository) Create(c *Color) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	cl := c.Classification
	_, err := r.db.Exec(
		`INSERT INTO colors (`+colorColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, cl.Name, cl.Hex, cl.RGB.R, cl.RGB.G, cl.RGB.B,
		cl.HSV.H, cl.HSV.S, cl.HSV.V, cl.HSL.H, cl.HSL.S, cl.HSL.L,
		c.Mode, c.X, c.Y, c.CreatedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanColor(row rowScanner) (*Color, error) {
	c := &Color{}
	cl := &c.Classification
	var r, g, b int

	err := row.Scan(&c.ID, &cl.Name, &cl.Hex, &r, &g, &b,
		&cl.HSV.H, &cl.HSV.S, &cl.HSV.V, &cl.HSL.H, &cl.HSL.S, &cl.HSL.L,
		&c.Mode, &c.X, &c.Y, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	cl.RGB = chroma.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
	return c, nil
}

// GetByID retrieves a color by its ID.
func (r *ColorRepository) GetByID(id string) (*Color, error) {
	c, err := scanColor(r.db.QueryRow(
		`SELECT `+colorColumns+` FROM colors WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List retrieves saved colors, newest first. A limit of 0 or less returns all.
func (r *ColorRepository) List(limit int) ([]*Color, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(
		`SELECT `+colorColumns+` FROM colors
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colors := []*Color{}
	for rows.Next() {
		c, err := scanColor(rows)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return colors, nil
}

// Count returns the number of saved colors.
func (r *ColorRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM colors`).Scan(&n)
	return n, err
}

// Delete removes a color by its ID.
func (r *ColorRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM colors WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAll removes every saved color and returns how many were removed.
func (r *ColorRepository) DeleteAll() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM colors`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

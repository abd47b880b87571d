package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"polynomial-residence/internal/residence/catalog"
	"polynomial-residence/internal/residence/models"
	"polynomial-residence/internal/residence/repository/migrations"
)

// ErrEmptyStore is returned by Load before the store was seeded.
var ErrEmptyStore = errors.New("catalog store is empty")

// ============================================================
// SQLite Repository
// ============================================================

// Repository keeps the room catalog feed in SQLite.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the embedded migrations and seeds the store with the
// default feed when it holds no house yet.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	empty, err := r.IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}
	return r.Seed(ctx, catalog.DefaultHouse(), catalog.DefaultRooms())
}

func (r *Repository) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM house`).Scan(&n); err != nil {
		return false, fmt.Errorf("count house: %w", err)
	}
	return n == 0, nil
}

// Seed replaces the stored feed with house and rooms, keeping room order.
func (r *Repository) Seed(ctx context.Context, house models.House, rooms []models.RoomSpec) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"room_costs", "room_features", "rooms", "house"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO house (id, name, width_polynomial, height_polynomial, area_polynomial,
            perimeter_polynomial, hallway_width_polynomial, check_value, estimate_date)
        VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
    `, house.Name, house.WidthPolynomial, house.HeightPolynomial, house.AreaPolynomial,
		house.PerimeterPolynomial, house.HallwayWidthPolynomial, house.CheckValue, house.EstimateDate)
	if err != nil {
		return fmt.Errorf("insert house: %w", err)
	}

	for i, room := range rooms {
		if err := insertRoom(ctx, tx, i, room); err != nil {
			return fmt.Errorf("insert room %q: %w", room.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func insertRoom(ctx context.Context, tx *sql.Tx, position int, room models.RoomSpec) error {
	_, err := tx.ExecContext(ctx, `
        INSERT INTO rooms (id, position, name, wing, dimensions, area_polynomial,
            perimeter_polynomial, verification, description)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, room.ID, position, room.Name, string(room.Wing), room.Dimensions, room.AreaPolynomial,
		room.PerimeterPolynomial, room.Verification, room.Description)
	if err != nil {
		return err
	}

	for i, feature := range room.Features {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO room_features (room_id, position, feature) VALUES (?, ?, ?)
        `, room.ID, i, feature); err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
	}

	cb := room.CostBreakdown
	if cb == nil {
		return nil
	}

	var carpetArea, carpetRate, carpetTotal, moldingPerimeter, moldingRate, moldingTotal, installation sql.NullFloat64
	if cb.Carpet != nil {
		carpetArea = sql.NullFloat64{Float64: cb.Carpet.Area, Valid: true}
		carpetRate = sql.NullFloat64{Float64: cb.Carpet.Rate, Valid: true}
		carpetTotal = sql.NullFloat64{Float64: cb.Carpet.Total, Valid: true}
	}
	if cb.Molding != nil {
		moldingPerimeter = sql.NullFloat64{Float64: cb.Molding.Perimeter, Valid: true}
		moldingRate = sql.NullFloat64{Float64: cb.Molding.Rate, Valid: true}
		moldingTotal = sql.NullFloat64{Float64: cb.Molding.Total, Valid: true}
	}
	if cb.Installation != nil {
		installation = sql.NullFloat64{Float64: *cb.Installation, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO room_costs (room_id, carpet_area, carpet_rate, carpet_total,
            molding_perimeter, molding_rate, molding_total, installation, total)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, room.ID, carpetArea, carpetRate, carpetTotal, moldingPerimeter, moldingRate, moldingTotal, installation, cb.Total)
	if err != nil {
		return fmt.Errorf("cost: %w", err)
	}
	return nil
}

// ============================================================
// Loading
// ============================================================

// Load reads the feed back in stored room order.
func (r *Repository) Load(ctx context.Context) (models.House, []models.RoomSpec, error) {
	var h models.House
	row := r.db.QueryRowContext(ctx, `
        SELECT name, width_polynomial, height_polynomial, area_polynomial, perimeter_polynomial,
            hallway_width_polynomial, check_value, estimate_date
        FROM house
        WHERE id = 1
    `)
	if err := row.Scan(&h.Name, &h.WidthPolynomial, &h.HeightPolynomial, &h.AreaPolynomial,
		&h.PerimeterPolynomial, &h.HallwayWidthPolynomial, &h.CheckValue, &h.EstimateDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.House{}, nil, ErrEmptyStore
		}
		return models.House{}, nil, fmt.Errorf("load house: %w", err)
	}

	rooms, err := r.loadRooms(ctx)
	if err != nil {
		return models.House{}, nil, err
	}
	return h, rooms, nil
}

// LoadCatalog reads the feed and validates it into a Catalog.
func (r *Repository) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	house, rooms, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(house, rooms)
}

func (r *Repository) loadRooms(ctx context.Context) ([]models.RoomSpec, error) {
	rooms, err := r.queryRooms(ctx)
	if err != nil {
		return nil, err
	}

	// features are read after the room cursor is closed; the pool holds
	// a single connection.
	for i := range rooms {
		features, err := r.loadFeatures(ctx, rooms[i].ID)
		if err != nil {
			return nil, err
		}
		rooms[i].Features = features
	}
	return rooms, nil
}

func (r *Repository) queryRooms(ctx context.Context) ([]models.RoomSpec, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT r.id, r.name, r.wing, r.dimensions, r.area_polynomial, r.perimeter_polynomial,
            r.verification, r.description,
            c.carpet_area, c.carpet_rate, c.carpet_total,
            c.molding_perimeter, c.molding_rate, c.molding_total,
            c.installation, c.total
        FROM rooms r
        LEFT JOIN room_costs c ON c.room_id = r.id
        ORDER BY r.position
    `)
	if err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.RoomSpec
	for rows.Next() {
		var (
			room                                        models.RoomSpec
			wing                                        string
			carpetArea, carpetRate, carpetTotal         sql.NullFloat64
			moldingPerimeter, moldingRate, moldingTotal sql.NullFloat64
			installation, total                         sql.NullFloat64
		)
		if err := rows.Scan(&room.ID, &room.Name, &wing, &room.Dimensions, &room.AreaPolynomial,
			&room.PerimeterPolynomial, &room.Verification, &room.Description,
			&carpetArea, &carpetRate, &carpetTotal,
			&moldingPerimeter, &moldingRate, &moldingTotal,
			&installation, &total); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		room.Wing = models.Wing(wing)

		if total.Valid {
			cb := &models.CostBreakdown{Total: total.Float64}
			if carpetTotal.Valid {
				cb.Carpet = &models.CarpetCost{Area: carpetArea.Float64, Rate: carpetRate.Float64, Total: carpetTotal.Float64}
			}
			if moldingTotal.Valid {
				cb.Molding = &models.MoldingCost{Perimeter: moldingPerimeter.Float64, Rate: moldingRate.Float64, Total: moldingTotal.Float64}
			}
			if installation.Valid {
				fee := installation.Float64
				cb.Installation = &fee
			}
			room.CostBreakdown = cb
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}
	return rooms, nil
}

func (r *Repository) loadFeatures(ctx context.Context, roomID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT feature FROM room_features WHERE room_id = ? ORDER BY position
    `, roomID)
	if err != nil {
		return nil, fmt.Errorf("query features of %q: %w", roomID, err)
	}
	defer rows.Close()

	var features []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		features = append(features, f)
	}
	return features, rows.Err()
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            name TEXT PRIMARY KEY,
            applied_at INTEGER NOT NULL
        )
    `); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		var n int
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE name = ?`, name).Scan(&n); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if n > 0 {
			continue
		}

		content, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, `INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`,
			name, time.Now().Unix()); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	return nil
}

// OpenSQLite opens the sqlite database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

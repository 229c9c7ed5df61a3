// Package persistence provides SQLite-based storage for the charted sea,
// the raid log and voyage metadata.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/plunder/internal/engine"
	"github.com/talgya/plunder/internal/island"
)

// ErrNoMeta is returned by GetMeta for an unknown key.
var ErrNoMeta = errors.New("meta key not found")

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS islands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		money REAL NOT NULL,
		marines INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS raids (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		voyage_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		round INTEGER NOT NULL,
		island TEXT NOT NULL,
		crew INTEGER NOT NULL,
		loot REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS voyage_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_raids_voyage ON raids(voyage_id, day, round);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type islandRow struct {
	ID      int64   `db:"id"`
	Name    string  `db:"name"`
	Money   float64 `db:"money"`
	Marines int     `db:"marines"`
}

// SaveIslands writes the whole sea (full replace, order preserved).
func (db *DB) SaveIslands(islands []*island.Island) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveIslands(tx, islands); err != nil {
		return err
	}
	return tx.Commit()
}

func saveIslands(tx *sqlx.Tx, islands []*island.Island) error {
	if _, err := tx.Exec("DELETE FROM islands"); err != nil {
		return err
	}

	stmt, err := tx.Preparex("INSERT INTO islands (name, money, marines) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, isl := range islands {
		if _, err := stmt.Exec(isl.Name, isl.Money(), isl.Marines()); err != nil {
			return fmt.Errorf("insert island %s: %w", isl.Name, err)
		}
	}
	return nil
}

// LoadIslands reads the sea in the order it was saved.
func (db *DB) LoadIslands() ([]*island.Island, error) {
	var rows []islandRow
	if err := db.conn.Select(&rows, "SELECT id, name, money, marines FROM islands ORDER BY id"); err != nil {
		return nil, err
	}
	out := make([]*island.Island, 0, len(rows))
	for _, r := range rows {
		isl, err := island.New(r.Name, r.Money, r.Marines)
		if err != nil {
			return nil, fmt.Errorf("load island %d: %w", r.ID, err)
		}
		out = append(out, isl)
	}
	return out, nil
}

// HasIslands reports whether a sea has been saved.
func (db *DB) HasIslands() bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM islands"); err != nil {
		return false
	}
	return n > 0
}

// SaveRaids appends raid rounds to the log.
func (db *DB) SaveRaids(raids []engine.Raid) error {
	if len(raids) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveRaids(tx, raids); err != nil {
		return err
	}
	return tx.Commit()
}

func saveRaids(tx *sqlx.Tx, raids []engine.Raid) error {
	for _, r := range raids {
		_, err := tx.NamedExec(`INSERT INTO raids (voyage_id, day, round, island, crew, loot)
			VALUES (:voyage_id, :day, :round, :island, :crew, :loot)`, r)
		if err != nil {
			return fmt.Errorf("insert raid %s/%d/%d: %w", r.VoyageID, r.Day, r.Round, err)
		}
	}
	return nil
}

// RecentRaids returns the most recent raids, newest first.
func (db *DB) RecentRaids(limit int) ([]engine.Raid, error) {
	var raids []engine.Raid
	err := db.conn.Select(&raids,
		"SELECT voyage_id, day, round, island, crew, loot FROM raids ORDER BY id DESC LIMIT ?",
		limit,
	)
	return raids, err
}

// RaidsForVoyage returns one voyage's raids in day and round order.
func (db *DB) RaidsForVoyage(voyageID string) ([]engine.Raid, error) {
	var raids []engine.Raid
	err := db.conn.Select(&raids,
		"SELECT voyage_id, day, round, island, crew, loot FROM raids WHERE voyage_id = ? ORDER BY day, round",
		voyageID,
	)
	return raids, err
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	return saveMeta(db.conn, key, value)
}

func saveMeta(e sqlx.Execer, key, value string) error {
	_, err := e.Exec(
		"INSERT OR REPLACE INTO voyage_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM voyage_meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNoMeta, key)
	}
	return value, err
}

// SaveVoyage persists the sea, the voyage's unsaved raids and its stats in
// one transaction. Pending raids are cleared only after commit.
func (db *DB) SaveVoyage(v *engine.Voyage, sea []*island.Island) error {
	slog.Info("saving voyage", "voyage", v.ID, "islands", len(sea), "raids", len(v.Pending))

	stats, err := json.Marshal(v.Stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveIslands(tx, sea); err != nil {
		return fmt.Errorf("save islands: %w", err)
	}
	if err := saveRaids(tx, v.Pending); err != nil {
		return fmt.Errorf("save raids: %w", err)
	}
	if err := saveMeta(tx, "voyage:"+v.ID+":stats", string(stats)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := saveMeta(tx, "last_voyage", v.ID); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit voyage: %w", err)
	}
	v.ClearPending()

	slog.Info("voyage saved", "voyage", v.ID, "day", v.LastDay)
	return nil
}

// VoyageStats loads the stats stored for a voyage.
func (db *DB) VoyageStats(voyageID string) (engine.VoyageStats, error) {
	var stats engine.VoyageStats
	raw, err := db.GetMeta("voyage:" + voyageID + ":stats")
	if err != nil {
		return stats, err
	}
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return stats, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}

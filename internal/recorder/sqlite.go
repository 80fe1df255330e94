package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reads don't block the bot's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT,
			price         REAL,
			rsi           REAL,
			macd          REAL,
			macd_signal   REAL,
			confidence    INTEGER,
			bias          TEXT,
			entry         REAL,
			stop_loss     REAL,
			user_id       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,

		`CREATE TABLE IF NOT EXISTS auth_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			user_id     TEXT,
			event_type  TEXT,
			authorized  INTEGER,
			usage_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_auth_ts ON auth_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(rec *AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, symbol, price, rsi, macd, macd_signal, confidence, bias, entry, stop_loss, user_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.CurrentPrice,
		rec.RSI, rec.MACD, rec.MACDSignal,
		rec.Confidence, string(rec.Bias), rec.Entry, rec.StopLoss, rec.UserID,
	)
	return err
}

func (r *SQLiteRecorder) RecordAuthEvent(evt *AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	authorized := 0
	if evt.Authorized {
		authorized = 1
	}
	_, err := r.db.Exec(`INSERT INTO auth_events
		(timestamp, user_id, event_type, authorized, usage_count)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.UserID, evt.EventType, authorized, evt.UsageCount,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

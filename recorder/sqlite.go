// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"goldchart/chartval"
)

// SqliteRecorder persists trade and sweep history to a SQLite file.
type SqliteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSqliteRecorder opens (or creates) the database and runs migrations.
func NewSqliteRecorder(dbPath string) (*SqliteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so history reads do not block the recording path.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SqliteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SqliteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			position_id INTEGER NOT NULL,
			type        TEXT NOT NULL,
			entry_price REAL NOT NULL,
			exit_price  REAL NOT NULL,
			stop_loss   REAL,
			take_profit REAL,
			size        REAL NOT NULL,
			pnl         REAL NOT NULL,
			open_time   INTEGER NOT NULL,
			close_time  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_close ON trades(close_time)`,

		`CREATE TABLE IF NOT EXISTS sweeps (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timeframe TEXT NOT NULL,
			price     REAL NOT NULL,
			high      INTEGER NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sweeps_ts ON sweeps(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SqliteRecorder) RecordTrade(trade *chartval.ClosedTrade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO trades
		(position_id, type, entry_price, exit_price, stop_loss, take_profit,
		 size, pnl, open_time, close_time)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		trade.Id, trade.Type.String(), trade.EntryPrice, trade.ExitPrice,
		trade.StopLoss, trade.TakeProfit, trade.Size, trade.ClosedPnl,
		trade.OpenTime.Unix(), trade.CloseTime.Unix(),
	)
	return err
}

func (r *SqliteRecorder) RecordSweep(evt *SweepEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	high := 0
	if evt.High {
		high = 1
	}
	_, err := r.db.Exec(`INSERT INTO sweeps (timeframe, price, high, timestamp)
		VALUES (?,?,?,?)`,
		evt.Timeframe, evt.Price, high, evt.Timestamp.Unix(),
	)
	return err
}

// TradeHistory returns the most recently closed trades, newest first.
func (r *SqliteRecorder) TradeHistory(limit int) ([]TradeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT position_id, type, entry_price, exit_price,
		size, pnl, open_time, close_time
		FROM trades ORDER BY close_time DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		var typeName string
		var openUnix, closeUnix int64
		err = rows.Scan(&rec.Id, &typeName, &rec.EntryPrice, &rec.ExitPrice,
			&rec.Size, &rec.Pnl, &openUnix, &closeUnix)
		if err != nil {
			return nil, err
		}
		rec.Type, _ = chartval.ParsePositionType(typeName)
		rec.OpenTime = time.Unix(openUnix, 0)
		rec.CloseTime = time.Unix(closeUnix, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SqliteRecorder) Close() error {
	return r.db.Close()
}

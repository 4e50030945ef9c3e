// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/wfunc/chaos-server/models"
)

// uniqueViolation is the postgres error code for a duplicate key.
const uniqueViolation = "23505"

// PostgreSQL 原生SQL实现，与GORM实现共用 match_records 表
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(ctx, db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化表结构
func initTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS match_records (
            id SERIAL PRIMARY KEY,
            match_id VARCHAR(64) UNIQUE NOT NULL,
            room_id VARCHAR(64) NOT NULL,
            players JSONB NOT NULL,
            winners JSONB NOT NULL,
            rounds INTEGER DEFAULT 0,
            started_at TIMESTAMPTZ,
            finished_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
        CREATE INDEX IF NOT EXISTS idx_match_records_room_id ON match_records(room_id);
        CREATE INDEX IF NOT EXISTS idx_match_records_finished_at ON match_records(finished_at);
    `)
	return err
}

func (p *PostgreSQL) SaveMatchRecord(ctx context.Context, record *models.MatchRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}
	winners, err := json.Marshal(record.Winners)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
        INSERT INTO match_records (match_id, room_id, players, winners, rounds, started_at, finished_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	err = p.db.QueryRowContext(ctx, query,
		record.MatchID, record.RoomID, players, winners, record.Rounds, record.StartedAt, record.FinishedAt,
	).Scan(&record.ID, &record.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateMatch
	}
	return err
}

const selectRecords = `
    SELECT id, match_id, room_id, players, winners, rounds, started_at, finished_at, created_at
    FROM match_records
`

func (p *PostgreSQL) RecentMatches(ctx context.Context, limit int) ([]models.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}
	rows, err := p.db.QueryContext(ctx, selectRecords+` ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func (p *PostgreSQL) PlayerStats(ctx context.Context, name string) (*models.PlayerStats, error) {
	filter, err := nameFilter(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, selectRecords+` WHERE players @> $1::jsonb`, filter)
	if err != nil {
		return nil, err
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return statsFor(name, records)
}

func scanRecords(rows *sql.Rows) ([]models.MatchRecord, error) {
	defer rows.Close()
	var records []models.MatchRecord
	for rows.Next() {
		var (
			r                models.MatchRecord
			players, winners []byte
		)
		if err := rows.Scan(&r.ID, &r.MatchID, &r.RoomID, &players, &winners,
			&r.Rounds, &r.StartedAt, &r.FinishedAt, &r.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(players, &r.Players); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(winners, &r.Winners); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// nameFilter is the jsonb array a players column must contain.
func nameFilter(name string) (string, error) {
	b, err := json.Marshal([]string{name})
	return string(b), err
}

// Close 关闭数据库连接
func (p *PostgreSQL) Close() error {
	return p.db.Close()
}

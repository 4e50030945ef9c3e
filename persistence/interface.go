// persistence/interface.go
package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/wfunc/chaos-server/models"
)

// Database 对局记录存储接口
type Database interface {
	SaveMatchRecord(ctx context.Context, record *models.MatchRecord) error
	// RecentMatches returns up to limit records, newest first.
	RecentMatches(ctx context.Context, limit int) ([]models.MatchRecord, error)
	// PlayerStats aggregates every record that lists name as a player.
	PlayerStats(ctx context.Context, name string) (*models.PlayerStats, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateMatch = errors.New("match already recorded")
)

// Open picks a backend by driver name: gorm, postgres or memory.
func Open(driver, host string, port int, user, password, dbname string) (Database, error) {
	switch driver {
	case "gorm":
		return NewGormPostgreSQL(host, port, user, password, dbname)
	case "postgres":
		return NewPostgreSQL(host, port, user, password, dbname)
	case "", "memory":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("persistence: unknown driver %q", driver)
}

// statsFor folds the records of one player. No records is ErrRecordNotFound.
func statsFor(name string, records []models.MatchRecord) (*models.PlayerStats, error) {
	stats := &models.PlayerStats{Name: name}
	for _, r := range records {
		if !contains(r.Players, name) {
			continue
		}
		stats.TotalGames++
		if contains(r.Winners, name) {
			stats.Wins++
		} else {
			stats.Losses++
		}
		stats.PlayTime += r.Duration()
	}
	if stats.TotalGames == 0 {
		return nil, ErrRecordNotFound
	}
	return stats, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func newestFirst(records []models.MatchRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FinishedAt.After(records[j].FinishedAt)
	})
}

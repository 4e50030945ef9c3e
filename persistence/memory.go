package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/wfunc/chaos-server/models"
)

// Memory keeps records in process. Used when no database is configured.
type Memory struct {
	mutex   sync.RWMutex
	records []models.MatchRecord
	nextID  uint
}

func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

func (m *Memory) SaveMatchRecord(_ context.Context, record *models.MatchRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, r := range m.records {
		if r.MatchID == record.MatchID {
			return ErrDuplicateMatch
		}
	}
	record.ID = m.nextID
	m.nextID++
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *Memory) RecentMatches(_ context.Context, limit int) ([]models.MatchRecord, error) {
	m.mutex.RLock()
	out := make([]models.MatchRecord, len(m.records))
	copy(out, m.records)
	m.mutex.RUnlock()

	newestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) PlayerStats(_ context.Context, name string) (*models.PlayerStats, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return statsFor(name, m.records)
}

func (m *Memory) Close() error {
	return nil
}

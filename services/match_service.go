package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wfunc/chaos-server/game"
	"github.com/wfunc/chaos-server/logger"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/persistence"
)

// DefaultRecentLimit caps RecentMatches when the caller asks for everything.
const DefaultRecentLimit = 50

type MatchService struct {
	db  persistence.Database
	log *zap.SugaredLogger
}

func NewMatchService(db persistence.Database) *MatchService {
	return &MatchService{db: db, log: logger.Log.With("component", "matches")}
}

// RecordMatch 保存一局结果
func (s *MatchService) RecordMatch(ctx context.Context, roomID string, result game.Result) error {
	record := &models.MatchRecord{
		MatchID:    uuid.NewString(),
		RoomID:     roomID,
		Players:    names(result.Players),
		Winners:    names(result.Winners),
		Rounds:     result.Rounds,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
	}
	if err := s.db.SaveMatchRecord(ctx, record); err != nil {
		return fmt.Errorf("record match of room %s: %w", roomID, err)
	}
	s.log.Infof("recorded match %s of room %s, winners %v", record.MatchID, roomID, record.Winners)
	return nil
}

func (s *MatchService) RecentMatches(ctx context.Context, limit int) ([]models.MatchRecord, error) {
	if limit <= 0 || limit > DefaultRecentLimit {
		limit = DefaultRecentLimit
	}
	return s.db.RecentMatches(ctx, limit)
}

func (s *MatchService) PlayerStats(ctx context.Context, name string) (*models.PlayerStats, error) {
	return s.db.PlayerStats(ctx, name)
}

func names(players []models.Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.Name)
	}
	return out
}

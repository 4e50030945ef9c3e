// models/gorm_models.go
package models

import (
	"time"
)

// MatchRecord 对局记录，每局结束时写入一条
type MatchRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MatchID    string    `gorm:"uniqueIndex;not null" json:"match_id"`
	RoomID     string    `gorm:"index;not null" json:"room_id"`
	Players    []string  `gorm:"type:jsonb;serializer:json;not null" json:"players"`
	Winners    []string  `gorm:"type:jsonb;serializer:json;not null" json:"winners"`
	Rounds     int       `gorm:"default:0" json:"rounds"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName 固定表名，与原生SQL实现共用
func (MatchRecord) TableName() string {
	return "match_records"
}

// Duration 对局时长
func (r MatchRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// PlayerStats 玩家统计信息
type PlayerStats struct {
	Name       string        `json:"name"`
	TotalGames int           `json:"total_games"`
	Wins       int           `json:"wins"`
	Losses     int           `json:"losses"`
	PlayTime   time.Duration `json:"play_time"`
}

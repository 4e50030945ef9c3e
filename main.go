package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wfunc/chaos-server/config"
	"github.com/wfunc/chaos-server/game"
	"github.com/wfunc/chaos-server/logger"
	"github.com/wfunc/chaos-server/monitor"
	"github.com/wfunc/chaos-server/persistence"
	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/room"
	"github.com/wfunc/chaos-server/rules"
	"github.com/wfunc/chaos-server/server"
	"github.com/wfunc/chaos-server/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Init("info", false)
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Development)
	defer logger.Sync()

	codec, err := protocol.NewCodec(cfg.Server.Codec)
	if err != nil {
		logger.Log.Fatalf("Invalid codec: %v", err)
	}

	// Initialize Database
	pg := cfg.Database.Postgres
	db, err := persistence.Open(cfg.Database.Driver, pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Log.Infof("Match records stored in %s", cfg.Database.Driver)

	metrics := monitor.NewMetrics(cfg.Game.MetricsName, prometheus.NewRegistry())
	matches := services.NewMatchService(db)

	// 每个房间一颗独立的骰子；固定种子时按房间序号偏移，便于复现
	var rooms atomic.Int64
	newRoller := func() rules.Roller {
		n := rooms.Add(1)
		if cfg.Game.Seed == 0 {
			return rules.NewRoller(0)
		}
		return rules.NewRoller(cfg.Game.Seed + n - 1)
	}
	roomManager := room.NewRoomManager(cfg.Game.MaxRooms, room.Options{
		Codec: codec,
		Engine: game.Config{
			Linger:   cfg.Game.Linger,
			Log:      logger.Log,
			Observer: metrics,
		},
		NewRoller: newRoller,
		Recorder:  matches,
	})

	// Initialize Game Server
	gameServer := server.NewGameServer(server.Options{
		HTTPAddress:   cfg.Server.HTTPAddress,
		RPCAddress:    cfg.Server.RPCAddress,
		Codec:         codec,
		Heartbeat:     cfg.Server.HeartbeatInterval,
		OutboxSize:    cfg.Server.OutboxSize,
		MaxPacketSize: cfg.Server.MaxPacketSize,
		IdleTimeout:   cfg.Server.IdleTimeout,
		ReapEvery:     cfg.Game.ReapEvery,
	}, roomManager, matches, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(ctx); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
	logger.Log.Info("Server stopped")
}

package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"squadbattlego/internal/config"
	"squadbattlego/internal/database/db_client"
	"squadbattlego/internal/http/http_server"
	"squadbattlego/internal/redis/redis_client"
	"squadbattlego/internal/roomwatch"
	"squadbattlego/internal/services/arena"
	"squadbattlego/internal/services/squaddie"
	"squadbattlego/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Redis (room event fan-out + stats mirror)
	redisClient, err := redis_client.NewRedisClient(cfg.RedisArenaHost, int(cfg.RedisArenaPort))
	if err != nil {
		Log.Fatal("Failed to create Redis client", zap.Error(err))
	}
	defer redisClient.Close()

	// 4. Postgres (squaddie roster)
	pgDb, err := db_client.Open(cfg.PostgresHost, cfg.PostgresPort,
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDb)
	if err != nil {
		Log.Fatal("pg-open", zap.Error(err))
	}
	defer pgDb.Close()

	// 5. WebSockets hub + Redis-backed broadcast channel
	hub := ws.NewHub()
	broadcaster := ws.NewRedisBroadcaster(redisClient, hub)

	// 6. Services
	seed, err := newSeed()
	if err != nil {
		Log.Fatal("rng-seed", zap.Error(err))
	}
	arenaSvc := arena.NewArenaService(broadcaster, cfg.RoomNameAttempts, seed)
	squadSvc := squaddie.NewSquaddieService(pgDb)

	// 7. Background: room stats mirror
	roomwatch.Run(ctx, redisClient, arenaSvc)

	// 8. WS server (event routing on top of the hub)
	wsSrv := ws.NewWsServer(hub, arenaSvc)

	// 9. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv, arenaSvc, squadSvc)
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}

// newSeed draws the arena RNG seed from crypto/rand; the seed parameter on
// the service exists so tests can pin it.
func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

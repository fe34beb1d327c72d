package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"squadbattlego/internal/services/arena"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must be < pongWait
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Identity trust is established upstream; the coordinator accepts any
	// origin and treats display names as opaque client data.
	CheckOrigin: func(*http.Request) bool { return true },
}

type WsServer struct {
	hub      *Hub
	router   *Router
	arenaSvc arena.IArenaService
}

func NewWsServer(hub *Hub, arenaSvc arena.IArenaService) *WsServer {
	srv := &WsServer{
		hub:      hub,
		router:   NewRouter(),
		arenaSvc: arenaSvc,
	}
	srv.registerHandlers() // ← all WS events configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}

	// Connection IDs are transport-assigned and unique per lifetime.
	connID := uuid.NewString()
	conn := &clientConn{rawConn: rawConn}

	s.hub.Track(connID, conn)
	if err := s.arenaSvc.Register(connID); err != nil {
		zap.L().Error("ws.register", zap.String("conn_id", connID), zap.Error(err))
		s.hub.Drop(connID)
		return
	}
	zap.L().Debug("ws.connected", zap.String("conn_id", connID))

	go s.reader(connID, conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

// Handlers return nil results: success is observable through the room
// broadcast (or targeted emit) the arena performs, never through an ack.
// Broadcasts reach local members before the arena call returns, so a host
// learns its room name from the "hosting" frame itself.
func (s *WsServer) registerHandlers() {
	Register(s.router, "host",
		func(_ context.Context, cc *ConnContext, req HostRequest) (any, error) {
			_, err := s.arenaSvc.Host(req.DisplayName, cc.ConnID)
			return nil, err
		})

	Register(s.router, "join",
		func(_ context.Context, cc *ConnContext, req JoinRequest) (any, error) {
			_, err := s.arenaSvc.Join(req.DisplayName, cc.ConnID)
			return nil, err
		})

	Register(s.router, "fighter picked",
		func(_ context.Context, cc *ConnContext, req PickFighterRequest) (any, error) {
			return nil, s.arenaSvc.PickFighter(req.RoomName, cc.ConnID, req.Squaddie)
		})

	Register(s.router, "attack",
		func(_ context.Context, cc *ConnContext, req AttackRequest) (any, error) {
			_, err := s.arenaSvc.Attack(req.RoomName, cc.ConnID, req.Damage, req.Defense, req.MonID)
			return nil, err
		})

	Register(s.router, "defend",
		func(_ context.Context, cc *ConnContext, req DefendRequest) (any, error) {
			return nil, s.arenaSvc.Defend(req.RoomName, cc.ConnID, req.MonID)
		})

	Register(s.router, "surrender",
		func(_ context.Context, cc *ConnContext, req SurrenderRequest) (any, error) {
			return nil, s.arenaSvc.Surrender(req.RoomName, cc.ConnID)
		})
}

func (s *WsServer) reader(connID string, conn *clientConn) {
	defer func() {
		// Departure order matters: the arena clears room state (and notifies
		// the peer) before the transport forgets the socket.
		s.arenaSvc.Unregister(connID)
		s.hub.Drop(connID)
		zap.L().Debug("ws.disconnected", zap.String("conn_id", connID))
	}()

	conn.rawConn.SetReadLimit(maxMessageSize)
	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{ConnID: connID, Server: s}

	for {
		var env Envelope
		if err := conn.rawConn.ReadJSON(&env); err != nil {
			return // client closed or errored
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1900*time.Millisecond)
		res, err := s.router.dispatch(ctx, cc, env)
		cancel()

		// Errors go back to the originating connection only; the event is
		// otherwise dropped, never retried.
		if err != nil {
			zap.L().Debug("ws.event_rejected",
				zap.String("conn_id", connID),
				zap.String("event", env.Event),
				zap.Error(err))
			_ = conn.writeJSON(outboundEnvelope{
				Event: "error",
				Body:  ErrorBody{Error: err.Error()},
			})
			continue
		}

		if res != nil {
			_ = conn.writeJSON(outboundEnvelope{Event: env.Event + "-reply", Body: res})
		}
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.write(websocket.PingMessage, nil); err != nil {
			return // reader loop handles the teardown
		}
	}
}

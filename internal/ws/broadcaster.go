package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"squadbattlego/internal/services/arena"
)

// localHub is the slice of the hub the broadcaster drives.
type localHub interface {
	Join(roomName, connID string)
	Leave(roomName, connID string)
	Broadcast(roomName string, msg []byte)
	Send(connID string, v any) error
}

// RedisBroadcaster implements arena.Broadcaster on top of the in-process hub
// and one Redis pub/sub channel per room. Local members receive every frame
// synchronously on the publishing goroutine: the arena publishes while
// holding its lock, so delivery order matches acceptance order and a room's
// terminal event lands before the Leave teardown that follows it. Redis
// carries frames to other coordinator instances only; each frame is tagged
// with the origin instance so the subscription loop drops its own.
//
// Exactly one Redis subscription exists per room channel no matter how many
// local connections occupy the room; Join/Leave keep a ref-count.
type RedisBroadcaster struct {
	rdb        *redis.Client
	hub        localHub
	instanceID string

	// listen runs the per-room Redis subscription loop; a field so tests can
	// observe the lifecycle without a server.
	listen func(ctx context.Context, room string)

	mu   sync.Mutex
	subs map[string]*subEntry // roomName -> subscription data
}

type subEntry struct {
	refCnt int
	cancel context.CancelFunc
}

// busFrame is the shape published to Redis: the wire envelope plus the
// publishing instance's identity.
type busFrame struct {
	Origin string          `json:"origin"`
	Frame  json.RawMessage `json:"frame"`
}

func NewRedisBroadcaster(rdb *redis.Client, hub localHub) *RedisBroadcaster {
	b := &RedisBroadcaster{
		rdb:        rdb,
		hub:        hub,
		instanceID: uuid.NewString(),
		subs:       make(map[string]*subEntry),
	}
	b.listen = b.listenRoom
	return b
}

var _ arena.Broadcaster = (*RedisBroadcaster)(nil)

func roomChannel(room string) string { return "room:" + room + ":events" }

// Publish serializes the event into the public WS envelope, hands it to local
// room members directly, and mirrors it to the room's Redis channel for any
// other instance. Local delivery never depends on the Redis round-trip.
func (b *RedisBroadcaster) Publish(room, event string, payload any) {
	frame, err := json.Marshal(outboundEnvelope{Event: event, Body: payload})
	if err != nil {
		zap.L().Error("ws.publish_marshal", zap.String("event", event), zap.Error(err))
		return
	}

	b.hub.Broadcast(room, frame)

	data, err := json.Marshal(busFrame{Origin: b.instanceID, Frame: frame})
	if err != nil {
		zap.L().Error("ws.publish_marshal", zap.String("event", event), zap.Error(err))
		return
	}
	if err := b.rdb.Publish(context.Background(), roomChannel(room), data).Err(); err != nil {
		zap.L().Warn("ws.publish",
			zap.String("room", room), zap.String("event", event), zap.Error(err))
	}
}

// EmitTo targets one connection only (nojoin replies, departure notices); it
// bypasses the room channel entirely.
func (b *RedisBroadcaster) EmitTo(connID, event string, payload any) {
	if err := b.hub.Send(connID, outboundEnvelope{Event: event, Body: payload}); err != nil {
		zap.L().Warn("ws.emit",
			zap.String("conn_id", connID), zap.String("event", event), zap.Error(err))
	}
}

// Join attaches the connection to the room's local member set and ensures the
// room's Redis subscription exists.
func (b *RedisBroadcaster) Join(connID, room string) {
	b.hub.Join(room, connID)
	b.subscribe(room)
}

// Leave detaches the connection and tears the subscription down when the last
// local member is gone.
func (b *RedisBroadcaster) Leave(connID, room string) {
	b.hub.Leave(room, connID)
	b.unsubscribe(room)
}

func (b *RedisBroadcaster) subscribe(room string) {
	b.mu.Lock()
	if e, ok := b.subs[room]; ok {
		e.refCnt++
		b.mu.Unlock()
		return
	}

	// First local member: open the Redis SUB and the fan-out loop.
	ctx, cancel := context.WithCancel(context.Background())
	b.subs[room] = &subEntry{refCnt: 1, cancel: cancel}
	b.mu.Unlock()

	go b.listen(ctx, room)
}

func (b *RedisBroadcaster) unsubscribe(room string) {
	b.mu.Lock()
	e, ok := b.subs[room]
	if !ok {
		b.mu.Unlock()
		return
	}
	e.refCnt--
	if e.refCnt > 0 {
		b.mu.Unlock()
		return
	}
	delete(b.subs, room)
	b.mu.Unlock()

	// Outside the lock: stop the fan-out goroutine. Local members already got
	// every frame this instance published; only foreign frames ride the SUB.
	e.cancel()
}

func (b *RedisBroadcaster) listenRoom(ctx context.Context, room string) {
	ps := b.rdb.Subscribe(ctx, roomChannel(room))
	defer ps.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ps.Channel():
			if !ok { // Redis connection closed
				return
			}
			b.forward(room, []byte(m.Payload))
		}
	}
}

// forward relays a frame from the Redis channel to local members, dropping
// frames this instance originated (those were delivered synchronously).
func (b *RedisBroadcaster) forward(room string, payload []byte) {
	var bf busFrame
	if err := json.Unmarshal(payload, &bf); err != nil {
		zap.L().Warn("ws.forward_decode", zap.String("room", room), zap.Error(err))
		return
	}
	if bf.Origin == b.instanceID {
		return
	}
	b.hub.Broadcast(room, []byte(bf.Frame))
}

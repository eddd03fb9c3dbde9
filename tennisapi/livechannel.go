package tennisapi

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"tennis-score-service/logger"
	"tennis-score-service/scoreboard"
)

// DeltaHandler is invoked for every delta pushed for the subscribed match.
type DeltaHandler func(matchID string, delta scoreboard.Delta)

// LiveChannel opens push-channel subscriptions scoped to single matches.
// The connection model is one connection per watched match: the consumer
// subscribes when it starts caring about a match and unsubscribes when it
// stops. A dropped connection is not redialed; the consumer re-subscribes
// on its next mount.
type LiveChannel struct {
	url    string
	dialer *websocket.Dialer
}

// NewLiveChannel creates a live channel client for the given WebSocket URL.
func NewLiveChannel(url string) *LiveChannel {
	return &LiveChannel{
		url:    url,
		dialer: websocket.DefaultDialer,
	}
}

// Subscription is one open per-match push connection.
type Subscription struct {
	matchID string
	conn    *websocket.Conn

	mu     sync.Mutex
	closed bool
	once   sync.Once
}

// Subscribe opens a connection scoped to matchID, sends the join message
// and invokes onDelta for every pushed update addressed to this match.
func (lc *LiveChannel) Subscribe(matchID string, onDelta DeltaHandler) (*Subscription, error) {
	conn, _, err := lc.dialer.Dial(lc.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// Register for this match immediately; the server scopes all further
	// pushes on this connection to the joined match.
	join := PushMessage{Event: EventJoinMatch, MatchID: matchID}
	if err := conn.WriteJSON(join); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to join match %s: %w", matchID, err)
	}

	sub := &Subscription{
		matchID: matchID,
		conn:    conn,
	}
	go sub.readLoop(onDelta)

	return sub, nil
}

// MatchID returns the match this subscription is scoped to.
func (s *Subscription) MatchID() string {
	return s.matchID
}

// Unsubscribe closes the connection. It is idempotent, and once it returns
// no further onDelta invocation will be made.
func (s *Subscription) Unsubscribe() error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		err := s.conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			logger.Errorf("[LiveChannel] Error sending close message: %v", err)
		}
		s.conn.Close()
	})
	return nil
}

// readLoop reads pushed frames until the connection closes. Deltas are
// dispatched serially in arrival order; malformed frames are logged and
// dropped without touching the model.
func (s *Subscription) readLoop(onDelta DeltaHandler) {
	for {
		var msg PushMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if !closed && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Errorf("[LiveChannel] Read error for match %s: %v", s.matchID, err)
			}
			return
		}

		if msg.MatchID != "" && msg.MatchID != s.matchID {
			continue
		}
		if len(msg.Data) == 0 {
			// Control frames (connection acks, pings) carry no payload.
			continue
		}

		delta, err := ParseDelta(msg.Data)
		if err != nil {
			logger.Errorf("[LiveChannel] Dropping malformed delta for match %s: %v", s.matchID, err)
			continue
		}

		// Holding the lock over the dispatch guarantees that once
		// Unsubscribe has returned, no further delivery reaches the
		// consumer.
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		onDelta(s.matchID, delta)
		s.mu.Unlock()
	}
}

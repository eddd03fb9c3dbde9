package services

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"tennis-score-service/logger"
	"tennis-score-service/tennisapi"
)

// AMQPSource is an alternative delta ingest path: it consumes push-message
// envelopes from a broker queue and feeds them into the same reconciliation
// pipeline as the live channel. Useful where the upstream publishes its feed
// to a broker instead of holding per-match sockets.
type AMQPSource struct {
	url   string
	queue string
	feed  *FeedManager

	conn    *amqp.Connection
	channel *amqp.Channel
	done    chan struct{}
}

// NewAMQPSource creates an AMQP delta source consuming the given queue.
func NewAMQPSource(url, queue string, feed *FeedManager) *AMQPSource {
	return &AMQPSource{
		url:   url,
		queue: queue,
		feed:  feed,
		done:  make(chan struct{}),
	}
}

// Start connects, declares the queue and consumes it until Stop is called.
func (s *AMQPSource) Start() error {
	conn, err := amqp.Dial(s.url)
	if err != nil {
		return fmt.Errorf("failed to connect to AMQP: %w", err)
	}
	s.conn = conn

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	s.channel = channel

	queue, err := channel.QueueDeclare(s.queue, true, false, false, false, nil)
	if err != nil {
		s.close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	deliveries, err := channel.Consume(queue.Name, "", true, false, false, false, nil)
	if err != nil {
		s.close()
		return fmt.Errorf("failed to consume queue: %w", err)
	}

	logger.Printf("[AMQP] Consuming deltas from queue %s", queue.Name)

	go s.consume(deliveries)
	return nil
}

// consume processes deliveries serially, keeping the per-match arrival
// order the broker hands us.
func (s *AMQPSource) consume(deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-s.done:
			return
		case delivery, ok := <-deliveries:
			if !ok {
				logger.Errorln("[AMQP] Delivery channel closed")
				return
			}
			s.handleDelivery(delivery.Body)
		}
	}
}

func (s *AMQPSource) handleDelivery(body []byte) {
	var msg tennisapi.PushMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		logger.Errorf("[AMQP] Dropping malformed envelope: %v", err)
		return
	}
	if msg.MatchID == "" {
		logger.Errorln("[AMQP] Dropping envelope without match id")
		return
	}

	delta, err := tennisapi.ParseDelta(msg.Data)
	if err != nil {
		logger.Errorf("[AMQP] Dropping malformed delta for match %s: %v", msg.MatchID, err)
		return
	}

	s.feed.ApplyDelta(msg.MatchID, delta)
}

// Stop closes the consumer and the connection.
func (s *AMQPSource) Stop() {
	close(s.done)
	s.close()
}

func (s *AMQPSource) close() {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}

package tennisapi

import (
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"tennis-score-service/logger"
)

const (
	// MatchTopicPrefix is the topic prefix under which per-match deltas are
	// published, e.g. matches/m1.
	MatchTopicPrefix = "matches/"

	// QoSAtLeastOnce is the QoS level used for match subscriptions.
	QoSAtLeastOnce = 1
)

// MQTTFeed is an alternative live-delta transport over MQTT. It carries the
// same payloads as the WebSocket channel, one topic per match.
type MQTTFeed struct {
	broker string
	client mqtt.Client

	mu       sync.RWMutex
	handlers map[string]DeltaHandler // topic -> handler
}

// NewMQTTFeed creates an MQTT feed client for the given broker address.
func NewMQTTFeed(broker string) *MQTTFeed {
	return &MQTTFeed{
		broker:   broker,
		handlers: make(map[string]DeltaHandler),
	}
}

// Connect establishes the connection to the MQTT broker.
func (f *MQTTFeed) Connect() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(f.broker)
	opts.SetClientID(fmt.Sprintf("tennis_score_%d", time.Now().Unix()))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(10 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetCleanSession(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Errorf("[MQTT] Connection lost: %v", err)
	})

	f.client = mqtt.NewClient(opts)

	token := f.client.Connect()
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect: %w", token.Error())
	}
	return nil
}

// Disconnect closes the connection to the MQTT broker.
func (f *MQTTFeed) Disconnect() {
	if f.client != nil && f.client.IsConnected() {
		f.client.Disconnect(250)
	}
}

// IsConnected returns whether the feed is connected.
func (f *MQTTFeed) IsConnected() bool {
	return f.client != nil && f.client.IsConnected()
}

// SubscribeMatch subscribes to the delta topic of one match.
func (f *MQTTFeed) SubscribeMatch(matchID string, onDelta DeltaHandler) error {
	if !f.IsConnected() {
		return fmt.Errorf("not connected")
	}

	topic := MatchTopicPrefix + matchID

	f.mu.Lock()
	f.handlers[topic] = onDelta
	f.mu.Unlock()

	token := f.client.Subscribe(topic, QoSAtLeastOnce, func(_ mqtt.Client, msg mqtt.Message) {
		f.handleMessage(matchID, msg.Topic(), msg.Payload())
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, token.Error())
	}

	logger.Printf("[MQTT] Subscribed to topic: %s", topic)
	return nil
}

// UnsubscribeMatch drops the subscription for one match. Idempotent.
func (f *MQTTFeed) UnsubscribeMatch(matchID string) error {
	topic := MatchTopicPrefix + matchID

	f.mu.Lock()
	delete(f.handlers, topic)
	f.mu.Unlock()

	if !f.IsConnected() {
		return nil
	}
	token := f.client.Unsubscribe(topic)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to unsubscribe from %s: %w", topic, token.Error())
	}
	return nil
}

// handleMessage parses one payload and dispatches it, unless the match was
// unsubscribed in the meantime.
func (f *MQTTFeed) handleMessage(matchID, topic string, payload []byte) {
	f.mu.RLock()
	handler, ok := f.handlers[topic]
	f.mu.RUnlock()
	if !ok {
		return
	}

	delta, err := ParseDelta(payload)
	if err != nil {
		logger.Errorf("[MQTT] Dropping malformed delta on %s: %v", topic, err)
		return
	}
	handler(matchID, delta)
}

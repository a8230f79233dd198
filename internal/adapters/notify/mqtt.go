package notify

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/example/fleetdesk/internal/ports/secondary"
)

// mqttPublisher is the subset of mqtt.Client the sink uses.
type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTSink publishes each notification at QoS 1 on "<prefix>/<kind>/<id>",
// so a driver's handset can subscribe to its own topic.
type MQTTSink struct {
	client  mqttPublisher
	prefix  string
	timeout time.Duration
}

// NewMQTTSink connects to broker (tcp://host:port).
func NewMQTTSink(broker, clientID, prefix string, timeout time.Duration) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt connect: timed out after %s", timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTSink{client: client, prefix: prefix, timeout: timeout}, nil
}

// Name implements secondary.NotificationSink.
func (s *MQTTSink) Name() string { return "mqtt" }

// Publish implements secondary.NotificationSink.
func (s *MQTTSink) Publish(ctx context.Context, n *secondary.NotificationRecord) error {
	data, err := Encode(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	token := s.client.Publish(address(s.prefix, "/", n), 1, false, data)
	select {
	case <-token.Done():
	case <-time.After(s.timeout):
		return fmt.Errorf("mqtt publish: timed out after %s", s.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
	return token.Error()
}

// Close implements secondary.NotificationSink.
func (s *MQTTSink) Close() error {
	s.client.Disconnect(250)
	return nil
}

var _ secondary.NotificationSink = (*MQTTSink)(nil)

package notify

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

const topicPrefix = "showroom/writes/"

// MQTTBus broadcasts write notifications over an MQTT broker so that multiple
// service instances sharing the same durable medium stay in sync. Delivery is
// fire-and-forget: a broker outage downgrades to a warning and the local
// in-memory state keeps serving.
type MQTTBus struct {
	client mqtt.Client
}

// NewMQTTBus connects to the broker and returns a bus backed by it.
func NewMQTTBus(broker, clientID string) (*MQTTBus, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", token.Error())
	}
	return &MQTTBus{client: client}, nil
}

// Publish signals a write of the entity to every subscribed instance,
// including this one.
func (b *MQTTBus) Publish(entity string) {
	token := b.client.Publish(topicPrefix+entity, 1, false, []byte(entity))
	go func() {
		if token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).WithField("entity", entity).
				Warn("Failed to publish write notification")
		}
	}()
}

// Subscribe registers a handler for writes of the entity.
func (b *MQTTBus) Subscribe(entity string, fn func()) {
	token := b.client.Subscribe(topicPrefix+entity, 1, func(_ mqtt.Client, _ mqtt.Message) {
		fn()
	})
	if token.Wait() && token.Error() != nil {
		log.WithError(token.Error()).WithField("entity", entity).
			Warn("Failed to subscribe to write notifications")
	}
}

// Close disconnects from the broker.
func (b *MQTTBus) Close() {
	b.client.Disconnect(250)
}

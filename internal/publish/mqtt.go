// Package publish pushes fix records to an MQTT broker as retained JSON
// messages, one per fix update.
package publish

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"neogps/internal/gps"
)

// Publisher holds a connected MQTT client bound to one topic.
type Publisher struct {
	client mqtt.Client
	topic  string
}

// Connect dials the broker and returns a ready publisher.
func Connect(broker, clientID, topic string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	log.Printf("mqtt connected broker=%s topic=%s", broker, topic)
	return &Publisher{client: client, topic: topic}, nil
}

// Publish sends one fix. The message is retained so late subscribers see
// the last known fix immediately.
func (p *Publisher) Publish(fix gps.Fix) error {
	payload, err := json.Marshal(fix)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.topic, 0, true, payload)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

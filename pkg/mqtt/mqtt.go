// Package mqtt is a thin publisher on top of the paho client. Readings are
// sent to channel C and published asynchronously, a lost broker connection
// is re-established on demand.
package mqtt

import (
	mqttlib "github.com/eclipse/paho.mqtt.golang"
	"github.com/womat/debug"
)

// quiesce is the number of milliseconds to wait for pending work on disconnect.
const quiesce = 250

// Handler is the client of the mqtt broker.
type Handler struct {
	handler mqttlib.Client

	// C receives the messages to publish.
	C chan Message
}

// Message is one mqtt publication.
type Message struct {
	Topic    string
	Payload  []byte
	Qos      byte
	Retained bool
}

// New creates an unconnected mqtt handler.
func New() *Handler {
	return &Handler{
		C: make(chan Message),
	}
}

// Connect connects to the broker. An empty broker string disables mqtt, the
// handler then silently drops all messages.
func (m *Handler) Connect(broker string) error {
	if broker == "" {
		return nil
	}

	opts := mqttlib.NewClientOptions().AddBroker(broker)
	m.handler = mqttlib.NewClient(opts)

	return m.ReConnect()
}

// ReConnect re-establishes the broker connection.
func (m *Handler) ReConnect() error {
	t := m.handler.Connect()
	<-t.Done()
	return t.Error()
}

// Disconnect ends the broker connection.
func (m *Handler) Disconnect() error {
	if m.handler == nil {
		return nil
	}

	m.handler.Disconnect(quiesce)
	return nil
}

// Service consumes channel C and publishes each message. Messages without a
// topic or without a configured broker are dropped.
func (m *Handler) Service() {
	for msg := range m.C {
		if m.handler == nil || msg.Topic == "" {
			continue
		}

		go m.publish(msg)
	}
}

func (m *Handler) publish(msg Message) {
	if !m.handler.IsConnected() {
		debug.DebugLog.Print("mqtt broker isn't connected, reconnect it")

		if err := m.ReConnect(); err != nil {
			debug.ErrorLog.Printf("can't reconnect to mqtt broker: %v", err)
			return
		}
	}

	debug.TraceLog.Printf("publishing %v bytes to topic %v", len(msg.Payload), msg.Topic)

	t := m.handler.Publish(msg.Topic, msg.Qos, msg.Retained, msg.Payload)

	// publishing is asynchronous, surface the error when the token resolves
	go func() {
		<-t.Done()
		if err := t.Error(); err != nil {
			debug.ErrorLog.Printf("publishing topic %v: %v", msg.Topic, err)
		}
	}()
}

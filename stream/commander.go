package stream

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/keyframer/anim"
)

// Command types accepted on the control topic.
const (
	CommandPlay      = "play"
	CommandCrossfade = "crossfade"
	CommandPause     = "pause"
	CommandResume    = "resume"
	CommandStop      = "stop"
	CommandSpeed     = "speed"
)

// CommandMessage is a control message for one output.
type CommandMessage struct {
	Type    string        `json:"type"`
	Output  string        `json:"output"`
	Track   string        `json:"track,omitempty"`
	Mode    anim.PlayMode `json:"mode,omitempty"`
	BlendMs int64         `json:"blendMs,omitempty"`
	Speed   float64       `json:"speed,omitempty"`
}

// Apply runs the command against a Controller.
func (m CommandMessage) Apply(c *Controller) error {
	switch m.Type {
	case CommandPlay:
		return c.Play(m.Output, m.Track, m.Mode)
	case CommandCrossfade:
		return c.Crossfade(m.Output, m.Track, m.BlendMs, m.Mode)
	case CommandPause:
		return c.Pause(m.Output)
	case CommandResume:
		return c.Resume(m.Output)
	case CommandStop:
		return c.Stop(m.Output)
	case CommandSpeed:
		return c.SetSpeed(m.Output, m.Speed)
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, m.Type)
}

// Commander listens for CommandMessages on the control topic.
type Commander struct {
	controller *Controller
	client     mqtt.Client
	topic      string
}

// NewCommander creates an instance of a Commander.
func NewCommander(config Config, controller *Controller, client mqtt.Client) *Commander {
	c := new(Commander)
	c.controller = controller
	c.client = client
	c.topic = config.Mqtt.Topics.Control
	return c
}

// HandlePayload decodes and applies one control message.
func (c *Commander) HandlePayload(payload []byte) error {
	var message CommandMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		return fmt.Errorf("decoding command: %w", err)
	}
	return message.Apply(c.controller)
}

func (c *Commander) handleMessage(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s\n", msg.MessageID(), msg.Topic(), msg.Payload())
	if err := c.HandlePayload(msg.Payload()); err != nil {
		log.Printf("Command failed: %v", err)
	}
}

// Subscribe starts listening on the control topic. Call it from the
// client's connect handler so the subscription survives reconnects.
func (c *Commander) Subscribe() error {
	token := c.client.Subscribe(c.topic, 0, c.handleMessage)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribing to %s: %w", c.topic, token.Error())
	}
	log.Printf("Listening for commands on %s", c.topic)
	return nil
}

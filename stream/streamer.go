package stream

import (
	"context"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher sends a payload to a topic. mqtt.Client satisfies it through
// MQTTPublisher.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// MQTTPublisher publishes with QoS 0 so a slow broker drops frames rather
// than queueing them.
type MQTTPublisher struct {
	Client mqtt.Client
}

// Publish implements Publisher.
func (p MQTTPublisher) Publish(topic string, payload []byte) error {
	token := p.Client.Publish(topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

// Streamer renders frames from a Controller and streams them to a receiver.
type Streamer struct {
	controller *Controller
	publisher  Publisher
	topic      string
	interval   time.Duration
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, controller *Controller, publisher Publisher) *Streamer {
	s := new(Streamer)
	s.controller = controller
	s.publisher = publisher
	s.topic = config.Mqtt.Topics.Stream
	s.interval = time.Duration(float64(time.Second) / config.FrameRate)
	if s.interval < time.Millisecond {
		s.interval = time.Millisecond
	}
	return s
}

// SendFrame renders a frame and publishes it as binary.
func (s *Streamer) SendFrame() error {
	f, err := s.controller.Tick()
	if err != nil {
		log.Printf("Output error: %v", err)
	}
	b, err := f.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	if err := s.publisher.Publish(s.topic, b); err != nil {
		return fmt.Errorf("publishing frame: %w", err)
	}
	return nil
}

// Run sends frames until ctx is cancelled.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(s.interval)
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-publishTimer.C:
			if err := s.SendFrame(); err != nil {
				log.Println(err)
			}
		}
	}
}

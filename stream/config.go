package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/matt-g-everett/keyframer/anim"
	"github.com/matt-g-everett/keyframer/output"
	"gopkg.in/yaml.v2"
)

// Kind of output driven by a Controller.
type Kind string

// List of valid Kind values.
const (
	KindServo Kind = "servo"
	KindLED   Kind = "led"
	KindRGB   Kind = "rgb"
)

// Defaults applied to a Config after decoding.
const (
	DefaultClientID     = "keyframer"
	DefaultStreamTopic  = "home/keyframer/stream"
	DefaultControlTopic = "home/keyframer/control"
	DefaultFrameRate    = 30.0
	DefaultListen       = ":3000"
	DefaultMaxAngle     = 180
)

// MaxFrameRate keeps the streaming interval at a millisecond or more.
const MaxFrameRate = 1000.0

// OutputConfig describes one output. Each output owns one slot of the
// streamed Frame, in the order the outputs are listed.
type OutputConfig struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`

	// Scalar transform. A zero scale means the default for the kind.
	Scale  float64  `yaml:"scale"`
	Offset float64  `yaml:"offset"`
	Min    *float64 `yaml:"min"`
	Max    *float64 `yaml:"max"`

	MinAngle int `yaml:"minAngle"`
	MaxAngle int `yaml:"maxAngle"`

	LEDMode   string   `yaml:"ledMode"`
	Threshold *float64 `yaml:"threshold"`

	// Track to start playing, if any.
	Track string `yaml:"track"`
	Mode  string `yaml:"mode"`
}

// Config of the keyframer host.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	FrameRate float64 `yaml:"frameRate"`
	API       struct {
		Listen string `yaml:"listen"`
	} `yaml:"api"`
	Outputs []OutputConfig `yaml:"outputs"`
}

// LoadConfig decodes YAML from r, applies defaults and validates the result.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("decoding config: %w", err)
	}

	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// ApplyDefaults fills in every setting left empty.
func (c *Config) ApplyDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = DefaultClientID
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = DefaultStreamTopic
	}
	if c.Mqtt.Topics.Control == "" {
		c.Mqtt.Topics.Control = DefaultControlTopic
	}
	if c.FrameRate == 0 {
		c.FrameRate = DefaultFrameRate
	}
	if c.API.Listen == "" {
		c.API.Listen = DefaultListen
	}

	for i := range c.Outputs {
		o := &c.Outputs[i]
		switch o.Kind {
		case KindServo:
			if o.MinAngle == 0 && o.MaxAngle == 0 {
				o.MaxAngle = DefaultMaxAngle
			}
			// Normalised tracks sweep the full range of the servo.
			if o.Scale == 0 {
				o.Scale = float64(o.MaxAngle - o.MinAngle)
				if o.Offset == 0 {
					o.Offset = float64(o.MinAngle)
				}
			}
		case KindLED:
			if o.Scale == 0 {
				o.Scale = 255
			}
			if o.Threshold == nil {
				threshold := output.DefaultThreshold
				o.Threshold = &threshold
			}
		}
	}
}

// Validate checks that the outputs can be built.
func (c *Config) Validate() error {
	if c.FrameRate <= 0 || c.FrameRate > MaxFrameRate {
		return fmt.Errorf("frameRate must be in (0, %v], got %v", MaxFrameRate, c.FrameRate)
	}

	seen := make(map[string]bool)
	for i, o := range c.Outputs {
		if o.Name == "" {
			return fmt.Errorf("output %d has no name", i)
		}
		if seen[o.Name] {
			return fmt.Errorf("output %q is defined twice", o.Name)
		}
		seen[o.Name] = true

		switch o.Kind {
		case KindServo, KindRGB:
		case KindLED:
			if _, err := output.ParseLEDMode(o.LEDMode); err != nil {
				return fmt.Errorf("output %q: %w", o.Name, err)
			}
		default:
			return fmt.Errorf("output %q has unknown kind %q", o.Name, o.Kind)
		}

		if _, err := anim.ParseMode(o.Mode); err != nil {
			return fmt.Errorf("output %q: %w", o.Name, err)
		}
		if o.Min != nil && o.Max != nil && *o.Min > *o.Max {
			return fmt.Errorf("output %q has min %v above max %v", o.Name, *o.Min, *o.Max)
		}
	}
	return nil
}

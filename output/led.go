package output

import (
	"fmt"
	"strings"
)

// LEDMode selects how an LED is driven.
type LEDMode int

// List of valid LEDMode values.
const (
	// Analog drives the LED with a PWM level from 0 to 255.
	Analog LEDMode = iota
	// Digital switches the LED on when the level reaches the threshold.
	Digital
)

func (m LEDMode) String() string {
	if m == Digital {
		return "digital"
	}
	return "analog"
}

// ParseLEDMode converts a mode name to an LEDMode. An empty name is Analog.
func ParseLEDMode(s string) (LEDMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "analog", "pwm":
		return Analog, nil
	case "digital":
		return Digital, nil
	}
	return Analog, fmt.Errorf("unknown led mode %q", s)
}

// DefaultThreshold is the fraction of full brightness at which a Digital LED
// switches on.
const DefaultThreshold = 0.5

// LED drives a LevelDriver from a scalar engine.
type LED struct {
	*Scalar
	driver    LevelDriver
	mode      LEDMode
	threshold float64
}

// NewLED creates an LED in the given mode.
func NewLED(driver LevelDriver, mode LEDMode) *LED {
	l := new(LED)
	l.Scalar = NewScalar()
	l.driver = driver
	l.mode = mode
	l.threshold = DefaultThreshold
	return l
}

// Begin switches the LED off.
func (l *LED) Begin() error {
	if l.driver == nil {
		return nil
	}
	if l.mode == Digital {
		return l.driver.WriteOn(false)
	}
	return l.driver.WriteLevel(0)
}

// SetMode changes the drive mode. The next Update writes to the driver even
// if the value has not changed.
func (l *LED) SetMode(mode LEDMode) {
	if mode != l.mode {
		l.reported.reset()
	}
	l.mode = mode
}

// Mode returns the drive mode.
func (l *LED) Mode() LEDMode {
	return l.mode
}

// SetThreshold sets the Digital switching threshold, clamped to [0, 1].
func (l *LED) SetThreshold(threshold float64) {
	if threshold < 0 {
		threshold = 0
	} else if threshold > 1 {
		threshold = 1
	}
	l.threshold = threshold
	l.reported.reset()
}

// Threshold returns the Digital switching threshold.
func (l *LED) Threshold() float64 {
	return l.threshold
}

// Level is the current output as a PWM level.
func (l *LED) Level() uint8 {
	v := l.Int()
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// On reports whether a Digital LED is lit at the current level.
func (l *LED) On() bool {
	return float64(l.Level())/255.0 >= l.threshold
}

// Update samples the engine and writes to the driver if the output changed.
func (l *LED) Update(now int64) error {
	l.Output(now)
	if !l.Changed() || l.driver == nil {
		return nil
	}
	if l.mode == Digital {
		return l.driver.WriteOn(l.On())
	}
	return l.driver.WriteLevel(l.Level())
}

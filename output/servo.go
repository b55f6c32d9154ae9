package output

// Servo drives an AngleDriver from a scalar engine, keeping the angle within
// the servo's limits.
type Servo struct {
	*Scalar
	driver   AngleDriver
	minAngle int
	maxAngle int
}

// NewServo creates a Servo limited to [minAngle, maxAngle] degrees.
func NewServo(driver AngleDriver, minAngle, maxAngle int) *Servo {
	s := new(Servo)
	s.Scalar = NewScalar()
	s.driver = driver
	if minAngle > maxAngle {
		minAngle, maxAngle = maxAngle, minAngle
	}
	s.minAngle = minAngle
	s.maxAngle = maxAngle
	s.SetValueRange(float64(minAngle), float64(maxAngle))
	return s
}

// Limits returns the angle limits of the servo.
func (s *Servo) Limits() (int, int) {
	return s.minAngle, s.maxAngle
}

// Angle is the current angle in degrees.
func (s *Servo) Angle() int {
	a := s.Int()
	if a < s.minAngle {
		return s.minAngle
	}
	if a > s.maxAngle {
		return s.maxAngle
	}
	return a
}

// Update samples the engine and moves the servo if the angle changed.
func (s *Servo) Update(now int64) error {
	s.Output(now)
	if !s.Changed() || s.driver == nil {
		return nil
	}
	return s.driver.WriteAngle(s.Angle())
}

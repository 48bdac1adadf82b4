package random

// Script is a deterministic Source that replays queued values.
// Floats feed Float64 and Range; Ints feed IntRange and Intn.
// Once a queue is drained Float64 returns 0 and IntRange returns min.
type Script struct {
	Floats []float64
	Ints   []int
}

// NewScript returns a Script seeded with the given float rolls.
func NewScript(floats ...float64) *Script {
	return &Script{Floats: floats}
}

// WithInts appends integer rolls and returns the script for chaining.
func (s *Script) WithInts(ints ...int) *Script {
	s.Ints = append(s.Ints, ints...)
	return s
}

func (s *Script) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	if v < 0 {
		return 0
	}
	if v >= 1 {
		// keep the [0,1) contract
		return 0.9999999
	}
	return v
}

func (s *Script) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.Float64()*(max-min)
}

func (s *Script) IntRange(min, max int) int {
	if max < min || len(s.Ints) == 0 {
		return min
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func (s *Script) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.IntRange(0, n-1)
}

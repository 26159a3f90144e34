package main

// skyKey is the background color at one point of the cycle.
type skyKey struct {
	t     float32 // normalised time 0..1
	color [3]float32
}

// skyKeys is ordered by t and wraps from the last key back to the first.
var skyKeys = []skyKey{
	{0.00, [3]float32{0.58, 0.75, 0.95}}, // noon
	{0.22, [3]float32{0.90, 0.52, 0.18}}, // golden hour
	{0.30, [3]float32{0.50, 0.22, 0.28}}, // dusk
	{0.50, [3]float32{0.03, 0.04, 0.10}}, // midnight
	{0.75, [3]float32{0.70, 0.45, 0.40}}, // dawn
}

// skyCycle animates the clear color through skyKeys.
type skyCycle struct {
	time   float32
	period float32 // seconds per full cycle
}

func newSkyCycle(period float32) *skyCycle {
	return &skyCycle{period: period}
}

func (s *skyCycle) Update(dt float32) {
	s.time += dt / s.period
	for s.time >= 1 {
		s.time--
	}
}

func (s *skyCycle) Color() [3]float32 { return sampleSky(s.time) }

func lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// sampleSky interpolates the keys surrounding t in [0, 1).
func sampleSky(t float32) [3]float32 {
	n := len(skyKeys)
	for i := 0; i < n; i++ {
		a := skyKeys[i]
		if i+1 < n {
			b := skyKeys[i+1]
			if t >= a.t && t < b.t {
				return lerp3(a.color, b.color, (t-a.t)/(b.t-a.t))
			}
			continue
		}
		// Last key wraps to the first at t = 1.
		b := skyKeys[0]
		span := 1 + b.t - a.t
		local := t - a.t
		if t < b.t {
			local += 1
		}
		return lerp3(a.color, b.color, local/span)
	}
	return skyKeys[0].color
}

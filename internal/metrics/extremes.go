package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

// Extremes tracks the min and max of one state component. Value reports
// the max, which is the apex height for projectile models.
type Extremes struct {
	name      string
	index     int
	min, max  float64
	timeOfMax float64
	samples   int
}

func NewExtremes(index int, label string) *Extremes {
	if label == "" {
		label = fmt.Sprintf("y%d", index)
	}
	e := &Extremes{name: "max_" + label, index: index}
	e.Reset()
	return e
}

func (e *Extremes) Name() string { return e.name }

func (e *Extremes) Observe(x dynamo.State, t float64) {
	if e.index >= len(x) {
		return
	}
	v := x[e.index]
	if v > e.max {
		e.max = v
		e.timeOfMax = t
	}
	e.min = math.Min(e.min, v)
	e.samples++
}

func (e *Extremes) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.max
}

func (e *Extremes) Min() float64       { return e.min }
func (e *Extremes) Max() float64       { return e.max }
func (e *Extremes) TimeOfMax() float64 { return e.timeOfMax }

func (e *Extremes) Reset() {
	e.min = math.Inf(1)
	e.max = math.Inf(-1)
	e.timeOfMax = 0
	e.samples = 0
}

// Final records the last observed value of one component, e.g. the range
// of a projectile when the run stops at ground contact.
type Final struct {
	name  string
	index int
	value float64
	time  float64
}

func NewFinal(index int, label string) *Final {
	if label == "" {
		label = fmt.Sprintf("y%d", index)
	}
	return &Final{name: "final_" + label, index: index}
}

func (f *Final) Name() string { return f.name }

func (f *Final) Observe(x dynamo.State, t float64) {
	if f.index < len(x) {
		f.value = x[f.index]
		f.time = t
	}
}

func (f *Final) Value() float64 { return f.value }
func (f *Final) Time() float64  { return f.time }

func (f *Final) Reset() {
	f.value = 0
	f.time = 0
}

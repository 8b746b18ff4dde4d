package dynamo

import "math"

// MaxSteps bounds the grid size of one run.
const MaxSteps = 1 << 26

// snapULPs is how many units of rounding error in (TMax-TMin)/Step are
// absorbed before the quotient counts as a fractional step.
const snapULPs = 4

const epsilon = 0x1p-52

// Schedule is the fixed grid of one integration run. The grid covers
// [TMin, TMin + StepCount()*Step], so the last point may overshoot TMax by
// less than one step.
type Schedule struct {
	TMin float64 `json:"t_min" yaml:"t_min"`
	TMax float64 `json:"t_max" yaml:"t_max"`
	Step float64 `json:"step" yaml:"step"`
}

func (s Schedule) Validate() error {
	if math.IsNaN(s.Step) || math.IsInf(s.Step, 0) || s.Step <= 0 {
		return invalidf("step must be positive and finite, got %g", s.Step)
	}
	if math.IsNaN(s.TMin) || math.IsInf(s.TMin, 0) || math.IsNaN(s.TMax) || math.IsInf(s.TMax, 0) {
		return invalidf("time range must be finite, got [%g, %g]", s.TMin, s.TMax)
	}
	if s.TMax <= s.TMin {
		return invalidf("t_max (%g) must exceed t_min (%g)", s.TMax, s.TMin)
	}
	if r := (s.TMax - s.TMin) / s.Step; r > MaxSteps {
		return invalidf("schedule needs %.0f steps, limit is %d", math.Ceil(r), MaxSteps)
	}
	return nil
}

// StepCount returns ceil((TMax-TMin)/Step). A quotient that misses an
// integer only by the rounding error of the subtraction and division is
// treated as that integer, so 1.1/0.1 gives 11 steps. Call Validate first.
func (s Schedule) StepCount() int {
	r := (s.TMax - s.TMin) / s.Step
	if n := math.Round(r); n >= 1 && math.Abs(r-n) <= snapError(s, r) {
		return int(n)
	}
	return int(math.Ceil(r))
}

// snapError bounds the floating point error of r = (TMax-TMin)/Step: the
// rounding of both bounds scaled by 1/Step, plus the division itself.
func snapError(s Schedule, r float64) float64 {
	bounds := (math.Abs(s.TMin) + math.Abs(s.TMax)) / s.Step
	return snapULPs * epsilon * (bounds + math.Abs(r))
}

// Time returns the i-th grid time.
func (s Schedule) Time(i int) float64 {
	return s.TMin + float64(i)*s.Step
}

func (s Schedule) Times() []float64 {
	n := s.StepCount()
	times := make([]float64, n+1)
	for i := range times {
		times[i] = s.Time(i)
	}
	return times
}

// ValidateInitial checks an initial state before any stepping.
func ValidateInitial(y0 State) error {
	if len(y0) == 0 {
		return invalidf("initial state is empty")
	}
	if !y0.IsValid() {
		return invalidf("initial state contains NaN or Inf: %v", []float64(y0))
	}
	return nil
}

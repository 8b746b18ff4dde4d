package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/dynamo"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// PhasePortrait projects every point of tr onto components xIdx and yIdx.
func PhasePortrait(tr *dynamo.Trajectory, xIdx, yIdx int) (*PhasePortrait2D, error) {
	if tr == nil || xIdx < 0 || yIdx < 0 || xIdx >= tr.Dim() || yIdx >= tr.Dim() {
		return nil, fmt.Errorf("%w: phase indices (%d, %d) out of range", dynamo.ErrInvalidArgument, xIdx, yIdx)
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, tr.Len()),
	}
	for i := range portrait.Points {
		portrait.Points[i] = Point{X: tr.At(i, xIdx), Y: tr.At(i, yIdx)}
	}
	return portrait, nil
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := newCanvas(width, height)

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	return renderCanvas(canvas)
}

// PoincareConfig describes a stroboscopic section of a system driven at
// angular frequency Omega. Transient periods are integrated but not
// recorded. WrapIndex names a component kept in [-π, π] after every step,
// or -1 for none.
type PoincareConfig struct {
	Omega          float64
	StepsPerPeriod int
	Periods        int
	Transient      int
	WrapIndex      int
	XIndex, YIndex int
}

// PoincareSection samples y once per drive period 2π/Omega, using exactly
// StepsPerPeriod steps of st per period so the strobe lands on the grid.
func PoincareSection(st dynamo.Stepper, y0 dynamo.State, cfg PoincareConfig) (*PhasePortrait2D, error) {
	if err := dynamo.ValidateInitial(y0); err != nil {
		return nil, err
	}
	if !(cfg.Omega > 0) || cfg.StepsPerPeriod <= 0 || cfg.Periods <= 0 || cfg.Transient < 0 || cfg.Transient >= cfg.Periods {
		return nil, fmt.Errorf("%w: invalid poincare config %+v", dynamo.ErrInvalidArgument, cfg)
	}
	dim := len(y0)
	if cfg.XIndex < 0 || cfg.YIndex < 0 || cfg.XIndex >= dim || cfg.YIndex >= dim || cfg.WrapIndex >= dim {
		return nil, fmt.Errorf("%w: section indices out of range for dimension %d", dynamo.ErrInvalidArgument, dim)
	}

	h := 2 * math.Pi / cfg.Omega / float64(cfg.StepsPerPeriod)
	section := &PhasePortrait2D{
		XIndex: cfg.XIndex,
		YIndex: cfg.YIndex,
		Points: make([]Point, 0, cfg.Periods-cfg.Transient),
	}

	y := y0.Clone()
	step := 0
	for p := 0; p < cfg.Periods; p++ {
		for k := 0; k < cfg.StepsPerPeriod; k++ {
			t := float64(step) * h
			next, err := st.Step(t, h, y)
			if err != nil {
				return nil, &dynamo.StepError{Step: step, Time: t, State: y, Err: err}
			}
			y = next
			if cfg.WrapIndex >= 0 {
				y[cfg.WrapIndex] = WrapAngle(y[cfg.WrapIndex])
			}
			step++
		}
		if p >= cfg.Transient {
			section.Points = append(section.Points, Point{X: y[cfg.XIndex], Y: y[cfg.YIndex]})
		}
	}
	return section, nil
}

// WrapAngle maps a into [-π, π].
func WrapAngle(a float64) float64 {
	if a >= -math.Pi && a <= math.Pi {
		return a
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

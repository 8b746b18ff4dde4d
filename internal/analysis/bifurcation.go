package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/odelab/internal/dynamo"
)

// BifurcationPoint holds the post-transient orbit of a map at one parameter.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// Bifurcation iterates m from x0 for each r in rs and keeps the last keep of
// iters values. Period-p cycles show up as p distinct values.
func Bifurcation(m Map, rs []float64, x0 float64, iters, keep int) ([]BifurcationPoint, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil map", dynamo.ErrInvalidArgument)
	}
	if iters <= 0 || keep <= 0 || keep > iters {
		return nil, fmt.Errorf("%w: need 0 < keep <= iters, got keep=%d iters=%d", dynamo.ErrInvalidArgument, keep, iters)
	}

	results := make([]BifurcationPoint, 0, len(rs))
	for _, r := range rs {
		x := x0
		values := make([]float64, 0, keep)
		for i := 0; i < iters; i++ {
			x = m(r, x)
			if i >= iters-keep {
				values = append(values, x)
			}
		}
		results = append(results, BifurcationPoint{Param: r, Values: values})
	}
	return results, nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
			} else {
				if v < minVal {
					minVal = v
				}
				if v > maxVal {
					maxVal = v
				}
			}
		}
	}
	if !foundFirst {
		return ""
	}

	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := newCanvas(width, height)
	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}

		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	return renderCanvas(canvas)
}

func newCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}
	return canvas
}

func renderCanvas(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

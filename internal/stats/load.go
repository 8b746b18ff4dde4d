package stats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadColumns reads a whitespace-separated numeric table and returns the
// requested columns (all columns when none are given). The first skipRows
// lines are ignored, as are blank lines and lines starting with '#'.
func LoadColumns(path string, skipRows int, cols ...int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	return ReadColumns(f, skipRows, cols...)
}

func ReadColumns(r io.Reader, skipRows int, cols ...int) ([][]float64, error) {
	scanner := bufio.NewScanner(r)
	var out [][]float64
	line := 0

	for scanner.Scan() {
		line++
		if line <= skipRows {
			continue
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		want := cols
		if len(want) == 0 {
			want = make([]int, len(fields))
			for i := range want {
				want[i] = i
			}
		}
		if out == nil {
			out = make([][]float64, len(want))
		} else if len(want) != len(out) {
			return nil, fmt.Errorf("line %d: %w: %d columns, expected %d", line, ErrInvalidArgument, len(want), len(out))
		}

		for j, c := range want {
			if c < 0 || c >= len(fields) {
				return nil, fmt.Errorf("line %d: %w: no column %d", line, ErrInvalidArgument, c)
			}
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, c, err)
			}
			out[j] = append(out[j], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: no data rows", ErrInvalidArgument)
	}
	return out, nil
}

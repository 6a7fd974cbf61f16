package gradient

import (
	"fmt"
	"math"
	"sort"

	"github.com/maxb-odessa/gradient/internal/color"
)

// Stop anchors a color at a position of the gradient domain.
type Stop struct {
	Pos   float64
	Color color.Color
}

// Stops is always sorted by position; equal positions keep input order.
type Stops []Stop

// NewStops copies and stable-sorts the given stops. A NaN position has no
// place in the order and is rejected.
func NewStops(stops []Stop) (Stops, error) {
	if len(stops) == 0 {
		return nil, ErrEmptyStops
	}

	for i, s := range stops {
		if math.IsNaN(s.Pos) {
			return nil, &InvalidDomainError{Reason: fmt.Sprintf("stop %d has no position (NaN)", i)}
		}
	}

	sorted := make(Stops, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pos < sorted[j].Pos
	})

	return sorted, nil
}

// Index returns the rightmost stop with Pos <= t, 0 when t precedes
// every stop.
func (s Stops) Index(t float64) int {
	// first stop with Pos > t
	i := sort.Search(len(s), func(i int) bool {
		return s[i].Pos > t
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

func (s Stops) First() Stop {
	return s[0]
}

func (s Stops) Last() Stop {
	return s[len(s)-1]
}

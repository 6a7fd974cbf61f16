package gradient

import (
	"errors"
	"fmt"
)

var ErrEmptyStops = errors.New("gradient needs at least one color stop")

// InvalidDomainError is returned when a gradient domain is empty or
// reversed, or when custom positions can not describe one.
type InvalidDomainError struct {
	Min, Max float64
	Reason   string
}

func (e *InvalidDomainError) Error() string {
	if e.Reason != "" {
		return "invalid domain: " + e.Reason
	}
	return fmt.Sprintf("invalid domain [%g, %g]: min must be less than max", e.Min, e.Max)
}

// UnsupportedModeError reports an unknown blend mode, interpolation or
// output format keyword.
type UnsupportedModeError struct {
	Kind  string // "blend mode", "interpolation", "format"
	Value string
	Valid []string
}

func (e *UnsupportedModeError) Error() string {
	msg := fmt.Sprintf("unsupported %s '%s'", e.Kind, e.Value)
	if len(e.Valid) > 0 {
		msg += fmt.Sprintf(" (valid: %v)", e.Valid)
	}
	return msg
}

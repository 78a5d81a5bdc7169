package compile

import "fmt"

// Mode selects the numeric formulation of the compiled model.
type Mode int

const (
	// ModeRates is the continuous formulation: real-valued steady-state
	// rates, per-reaction cost as a rate divisor, and a time horizon.
	ModeRates Mode = iota

	// ModeCycles is the discrete formulation: integer cycle counts with
	// lcm-scaled coefficients and no time horizon.
	ModeCycles
)

// String returns the CLI spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRates:
		return "rates"
	case ModeCycles:
		return "cycles"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a CLI spelling back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "rates":
		return ModeRates, nil
	case "cycles":
		return ModeCycles, nil
	default:
		return 0, fmt.Errorf("invalid mode %q: must be 'rates' or 'cycles'", s)
	}
}

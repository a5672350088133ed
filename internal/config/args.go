package config

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Iron-Ham/postoffice/internal/errors"
)

// ArgNames are the positional parameters in command line order.
var ArgNames = []string{"NZ", "NU", "TZ", "TU", "F"}

type argRule struct {
	min, max int
	msg      string
}

var argRules = map[string]argRule{
	"NZ": {1, math.MaxInt32, "NZ must be greater than 0"},
	"NU": {1, math.MaxInt32, "NU must be greater than 0"},
	"TZ": {0, MaxEntryDelayLimitMs, fmt.Sprintf("TZ must be in range 0..%d", MaxEntryDelayLimitMs)},
	"TU": {0, MaxBreakLimitMs, fmt.Sprintf("TU must be in range 0..%d", MaxBreakLimitMs)},
	"F":  {1, CloseAfterLimitMs, fmt.Sprintf("F must be in range 1..%d", CloseAfterLimitMs)},
}

// ParseArgs parses "NZ NU TZ TU F". Each argument must be a complete base-10
// integer within its range. The returned error is an *errors.ConfigError
// naming the first bad argument. Fields other than the five are left zero.
func ParseArgs(args []string) (SimulationConfig, error) {
	var sim SimulationConfig
	if len(args) != len(ArgNames) {
		return sim, errors.NewConfigError(
			fmt.Sprintf("expected %d arguments (NZ NU TZ TU F), got %d", len(ArgNames), len(args)),
			errors.ErrInvalidArgs)
	}

	values := make([]int, len(args))
	for i, raw := range args {
		name := ArgNames[i]
		rule := argRules[name]
		n, err := strconv.ParseInt(raw, 10, 32)
		if errors.Is(err, strconv.ErrRange) {
			return sim, errors.NewConfigError(rule.msg, errors.ErrArgOutOfRange).WithArg(name).WithValue(raw)
		}
		if err != nil {
			return sim, errors.NewConfigError(fmt.Sprintf("%s must be an integer", name), errors.ErrArgNotInteger).
				WithArg(name).WithValue(raw)
		}
		if int(n) < rule.min || int(n) > rule.max {
			return sim, errors.NewConfigError(rule.msg, errors.ErrArgOutOfRange).WithArg(name).WithValue(n)
		}
		values[i] = int(n)
	}

	sim.Clients = values[0]
	sim.Workers = values[1]
	sim.MaxEntryDelayMs = values[2]
	sim.MaxBreakMs = values[3]
	sim.CloseAfterMs = values[4]
	return sim, nil
}

// ApplyArgs overwrites the positional fields of s with those parsed from args.
func (s *SimulationConfig) ApplyArgs(args []string) error {
	parsed, err := ParseArgs(args)
	if err != nil {
		return err
	}
	s.Clients = parsed.Clients
	s.Workers = parsed.Workers
	s.MaxEntryDelayMs = parsed.MaxEntryDelayMs
	s.MaxBreakMs = parsed.MaxBreakMs
	s.CloseAfterMs = parsed.CloseAfterMs
	return nil
}

package pattern

import (
	"fmt"

	"github.com/pazarlink/pazarlink/internal/common"
)

// Default analysis settings.
const (
	DefaultMinGroupSize     = 2
	DefaultMinConfidence    = 70
	DefaultMaxPatternLength = 4
)

// DefaultSeparators are the separators considered when splitting codes.
func DefaultSeparators() []string {
	return []string{"-", "_", ".", " "}
}

// DefaultExclusionTokens are variant suffixes that mark duplicated or
// throwaway catalog entries rather than real variants. Turkish merchants
// commonly suffix copies with "orj"/"orjinal" shorthand.
func DefaultExclusionTokens() []string {
	return []string{"orj", "original", "org", "test", "temp", "copy"}
}

// Options configures a pattern analysis run.
type Options struct {
	Separators       []string
	ExclusionTokens  []string
	MinGroupSize     int
	MinConfidence    int
	MaxPatternLength int
	SmartExclusions  bool
}

// DefaultOptions returns the standard analysis configuration.
func DefaultOptions() Options {
	return Options{
		MinGroupSize:     DefaultMinGroupSize,
		MinConfidence:    DefaultMinConfidence,
		MaxPatternLength: DefaultMaxPatternLength,
		SmartExclusions:  true,
		Separators:       DefaultSeparators(),
		ExclusionTokens:  DefaultExclusionTokens(),
	}
}

// Validate checks option values at construction time.
func (o Options) Validate() error {
	if o.MinGroupSize < 1 {
		return fmt.Errorf("%w: min group size must be at least 1, got %d", common.ErrInvalidConfig, o.MinGroupSize)
	}
	if o.MinConfidence < 0 || o.MinConfidence > 100 {
		return fmt.Errorf("%w: min confidence must be in [0,100], got %d", common.ErrInvalidConfig, o.MinConfidence)
	}
	if o.MaxPatternLength < 2 {
		return fmt.Errorf("%w: max pattern length must be at least 2, got %d", common.ErrInvalidConfig, o.MaxPatternLength)
	}
	if len(o.Separators) == 0 {
		return fmt.Errorf("%w: at least one separator is required", common.ErrInvalidConfig)
	}
	for _, sep := range o.Separators {
		if sep == "" {
			return fmt.Errorf("%w: separators must not be empty", common.ErrInvalidConfig)
		}
	}
	return nil
}

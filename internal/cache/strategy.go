package cache

import (
	"strings"

	"github.com/agentstation/dappregistry/pkg/errors"
)

// Strategy selects where documents come from.
type Strategy string

const (
	// StrategyGitHub prefers the published remote document and falls back
	// to the bundled snapshot.
	StrategyGitHub Strategy = "github"
	// StrategyStatic only ever serves the bundled snapshot.
	StrategyStatic Strategy = "static"
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	return string(s)
}

// ParseStrategy parses a strategy name, case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyGitHub, "":
		return StrategyGitHub, nil
	case StrategyStatic:
		return StrategyStatic, nil
	default:
		return "", errors.NewValidationError("strategy", s, "must be github or static")
	}
}

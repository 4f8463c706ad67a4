package orchestration

import (
	"strings"

	"github.com/agbru/primecheck/internal/prime"
)

// AlgoAll selects every registered strategy.
const AlgoAll = "all"

// Selection pairs a strategy with the registry key it was found under.
type Selection struct {
	Key     string
	Checker prime.Checker
}

// GetCheckersToRun resolves algo against factory. "all" yields every
// registered strategy in sorted key order; an unknown name yields nil.
func GetCheckersToRun(algo string, factory prime.CheckerFactory) []Selection {
	algo = strings.ToLower(strings.TrimSpace(algo))
	if algo == AlgoAll {
		keys := factory.List()
		selected := make([]Selection, 0, len(keys))
		for _, k := range keys {
			if c, err := factory.Get(k); err == nil {
				selected = append(selected, Selection{Key: k, Checker: c})
			}
		}
		return selected
	}
	if c, err := factory.Get(algo); err == nil {
		return []Selection{{Key: algo, Checker: c}}
	}
	return nil
}

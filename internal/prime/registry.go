package prime

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CheckerFactory creates and looks up strategies by name.
type CheckerFactory interface {
	// Get returns the strategy registered under name.
	Get(name string) (Checker, error)
	// MustGet is Get that panics on unknown names.
	MustGet(name string) Checker
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every strategy keyed by name.
	GetAll() map[string]Checker
	// Register adds or replaces a strategy.
	Register(name string, c Checker)
}

// DefaultFactory is the map-backed CheckerFactory. It is safe for
// concurrent use.
type DefaultFactory struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

var (
	optionalMu   sync.Mutex
	optionalCore = map[string]coreChecker{}

	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// registerOptional records a strategy that only exists under a build tag.
// It is called from init functions.
func registerOptional(name string, core coreChecker) {
	optionalMu.Lock()
	defer optionalMu.Unlock()
	optionalCore[name] = core
}

// NewDefaultFactory returns a factory holding the built-in strategies:
// "trial", "wheel", "rho", plus "gmp" when built with -tags gmp.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{checkers: make(map[string]Checker)}
	f.Register("trial", NewChecker(&TrialDivision{}))
	f.Register("wheel", NewChecker(&WheelDivision{}))
	f.Register("rho", NewChecker(&PollardRho{}))

	optionalMu.Lock()
	for name, core := range optionalCore {
		f.Register(name, NewChecker(core))
	}
	optionalMu.Unlock()
	return f
}

// GlobalFactory returns a process-wide default factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

// Register adds or replaces the strategy stored under name.
func (f *DefaultFactory) Register(name string, c Checker) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkers[strings.ToLower(name)] = c
}

// Get returns the strategy registered under name (case-insensitive).
func (f *DefaultFactory) Get(name string) (Checker, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, ok := f.checkers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %s)", name, strings.Join(f.sortedNames(), ", "))
	}
	return c, nil
}

// MustGet is Get that panics on unknown names.
func (f *DefaultFactory) MustGet(name string) Checker {
	c, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sortedNames()
}

// GetAll returns a copy of the registry.
func (f *DefaultFactory) GetAll() map[string]Checker {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]Checker, len(f.checkers))
	for k, v := range f.checkers {
		out[k] = v
	}
	return out
}

func (f *DefaultFactory) sortedNames() []string {
	names := make([]string, 0, len(f.checkers))
	for k := range f.checkers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

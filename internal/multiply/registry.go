package multiply

import (
	"fmt"
	"sort"
	"sync"
)

// Registered algorithm keys.
const (
	KeyNaive    = "naive"
	KeyStrassen = "strassen"
)

// Factory creates and caches Algorithm instances by key.
type Factory interface {
	// Create returns a fresh, uncached Algorithm for key.
	Create(key string) (Algorithm, error)
	// Get returns the cached Algorithm for key, creating it on first use.
	Get(key string) (Algorithm, error)
	// List returns the registered keys in sorted order.
	List() []string
	// Register adds or replaces the creator for key.
	Register(key string, creator func() coreMultiplier) error
	// GetAll returns every registered algorithm keyed by name.
	GetAll() map[string]Algorithm
}

// FactoryOption customises the algorithms built by NewDefaultFactory.
type FactoryOption func(*factoryOptions)

type factoryOptions struct {
	strassenPad bool
}

// WithStrassenPadding makes the "strassen" algorithm zero-pad operands whose
// order is not a power of two instead of rejecting them.
func WithStrassenPadding(enabled bool) FactoryOption {
	return func(o *factoryOptions) { o.strassenPad = enabled }
}

// DefaultFactory is a thread-safe Factory.
type DefaultFactory struct {
	mu         sync.RWMutex
	creators   map[string]func() coreMultiplier
	algorithms map[string]Algorithm
}

var _ Factory = (*DefaultFactory)(nil)

// NewDefaultFactory returns a factory with "naive" and "strassen"
// registered.
func NewDefaultFactory(opts ...FactoryOption) *DefaultFactory {
	var o factoryOptions
	for _, opt := range opts {
		opt(&o)
	}
	f := &DefaultFactory{
		creators:   make(map[string]func() coreMultiplier),
		algorithms: make(map[string]Algorithm),
	}
	_ = f.Register(KeyNaive, func() coreMultiplier { return &Naive{} })
	_ = f.Register(KeyStrassen, func() coreMultiplier { return &Strassen{Pad: o.strassenPad} })
	return f
}

// Register adds a creator. An existing cached instance for key is dropped.
func (f *DefaultFactory) Register(key string, creator func() coreMultiplier) error {
	if key == "" {
		return fmt.Errorf("multiply: empty algorithm key")
	}
	if creator == nil {
		return fmt.Errorf("multiply: nil creator for %q", key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[key] = creator
	delete(f.algorithms, key)
	return nil
}

// Create builds a new instance without caching it.
func (f *DefaultFactory) Create(key string) (Algorithm, error) {
	f.mu.RLock()
	creator, ok := f.creators[key]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown algorithm: %s", key)
	}
	return NewAlgorithm(creator()), nil
}

// Get returns the cached instance for key.
func (f *DefaultFactory) Get(key string) (Algorithm, error) {
	f.mu.RLock()
	if algo, ok := f.algorithms[key]; ok {
		f.mu.RUnlock()
		return algo, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if algo, ok := f.algorithms[key]; ok {
		return algo, nil
	}
	creator, ok := f.creators[key]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm: %s", key)
	}
	algo := NewAlgorithm(creator())
	f.algorithms[key] = algo
	return algo, nil
}

// List returns the registered keys sorted alphabetically.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.creators))
	for k := range f.creators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAll initialises every registered algorithm and returns a copy of the
// cache.
func (f *DefaultFactory) GetAll() map[string]Algorithm {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, creator := range f.creators {
		if _, ok := f.algorithms[key]; !ok {
			f.algorithms[key] = NewAlgorithm(creator())
		}
	}
	out := make(map[string]Algorithm, len(f.algorithms))
	for k, v := range f.algorithms {
		out[k] = v
	}
	return out
}

// MustGet is like Get but panics when key is unknown.
func (f *DefaultFactory) MustGet(key string) Algorithm {
	algo, err := f.Get(key)
	if err != nil {
		panic(fmt.Sprintf("multiply: required algorithm not found: %s", key))
	}
	return algo
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide default factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// API deployments sharing one Redis or Mongo cache give each tenant its
// own namespace.
//
// Example usage:
//
//	// Per-warehouse keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "warehouse:lisbon:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlanKey generates a prefixed key for plan caching.
func (k *ScopedKeyer) PlanKey(requestHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(requestHash, opts)
}

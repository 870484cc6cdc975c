package cache

// ScopedKeyer wraps a Keyer with a prefix so multi-tenant servers can keep
// per-tenant cache namespaces over a shared backend.
//
//	userKeyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "user:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key
// generated by inner. A nil inner defaults to the standard keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FlowKey generates a prefixed key for parsed-graph caching.
func (k *ScopedKeyer) FlowKey(textHash string, opts FlowKeyOpts) string {
	return k.prefix + k.inner.FlowKey(textHash, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(flowHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(flowHash, opts)
}

// ArtifactKey generates a prefixed key for rendered-artifact caching.
func (k *ScopedKeyer) ArtifactKey(flowHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(flowHash, opts)
}

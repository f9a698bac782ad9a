package cache

import "strconv"

// FrameKeyOpts identifies one rendered frame of a graph.
type FrameKeyOpts struct {
	Source int
	Step   int
	State  string
	Format string
}

// Keyer builds cache keys.
type Keyer interface {
	// GraphKey identifies a graph document by content hash.
	GraphKey(graphHash string) string

	// FrameKey identifies a rendered frame of the graph with graphHash.
	FrameKey(graphHash string, opts FrameKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey returns "graph:<hash>".
func (DefaultKeyer) GraphKey(graphHash string) string {
	return "graph:" + graphHash
}

// FrameKey returns "frame:<hash of graph and options>".
func (DefaultKeyer) FrameKey(graphHash string, opts FrameKeyOpts) string {
	return hashKey("frame", graphHash, strconv.Itoa(opts.Source), strconv.Itoa(opts.Step), opts.State, opts.Format)
}

// ScopedKeyer prefixes every key of an inner Keyer. The server uses it to
// keep its entries apart from other users of a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(graphHash string) string {
	return k.prefix + k.inner.GraphKey(graphHash)
}

// FrameKey generates a prefixed frame key.
func (k *ScopedKeyer) FrameKey(graphHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(graphHash, opts)
}

package graph

import (
	"math/rand/v2"

	apperrors "github.com/matzehuels/pathplay/pkg/errors"
)

// Defaults for [Random], matching the editor's "Generate Random Graph" button.
const (
	DefaultDensity   = 0.4
	DefaultMaxWeight = 9
)

// RandomOptions configures [Random].
type RandomOptions struct {
	// Density is the probability that any given pair of nodes is joined.
	Density float64
	// MaxWeight is the inclusive upper bound for edge weights; weights are
	// drawn uniformly from [1, MaxWeight].
	MaxWeight int
	// Seed makes the result reproducible. Zero draws a random seed.
	Seed uint64
}

// SetDefaults fills zero-valued fields with the package defaults.
func (o *RandomOptions) SetDefaults() {
	if o.Density == 0 {
		o.Density = DefaultDensity
	}
	if o.MaxWeight == 0 {
		o.MaxWeight = DefaultMaxWeight
	}
}

// Random builds a graph with n nodes and, for every pair i < j, an edge with
// probability opts.Density. Pairs are visited in ascending (i, j) order so a
// fixed seed always yields the same graph.
func Random(n int, opts RandomOptions) (*Graph, error) {
	opts.SetDefaults()
	if err := apperrors.ValidateDensity(opts.Density); err != nil {
		return nil, err
	}
	if err := apperrors.ValidateWeight(opts.MaxWeight); err != nil {
		return nil, err
	}
	g, err := New(n)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < opts.Density {
				if err := g.AddEdge(i, j, rng.IntN(opts.MaxWeight)+1); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}

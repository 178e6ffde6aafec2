package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/parameter"
)

// PopulateOptions describes a random demo graph
type PopulateOptions struct {
	Nodes int
	Edges int

	// Charge defaults to parameter.NodeCharge
	Charge float64
	// RestLength and Stiffness default to parameter.EdgeRestLength and parameter.EdgeStiffness
	RestLength float64
	Stiffness  float64

	// HalfExtent is the containment footprint of each node; zero disables containment for nodes
	HalfExtent float64
	// MaxSpeed bounds the random initial velocity per axis
	MaxSpeed float64
	// MouseAttract tags every node as pointer-attracted
	MouseAttract bool

	Seed uint64
}

// Populated lists the entities created by Populate
type Populated struct {
	Nodes []core.Entity
	Edges []core.Entity
}

// Populate spawns a seeded random graph inside the current arena
// Edges connect distinct node pairs without duplicates; the edge count is capped by the number of pairs
func Populate(s *Simulation, opts PopulateOptions) (Populated, error) {
	if opts.Nodes < 0 || opts.Edges < 0 {
		return Populated{}, fmt.Errorf("populate: negative counts %d nodes, %d edges", opts.Nodes, opts.Edges)
	}
	if opts.Charge == 0 {
		opts.Charge = parameter.NodeCharge
	}
	if opts.RestLength == 0 {
		opts.RestLength = parameter.EdgeRestLength
	}
	if opts.Stiffness == 0 {
		opts.Stiffness = parameter.EdgeStiffness
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	arena := s.Arena()
	var out Populated

	for range opts.Nodes {
		x := opts.HalfExtent + rng.Float64()*max(arena.Width-2*opts.HalfExtent, 0)
		y := opts.HalfExtent + rng.Float64()*max(arena.Height-2*opts.HalfExtent, 0)
		b := At(x, y).WithCharge(opts.Charge)
		if opts.MaxSpeed > 0 {
			b = b.WithVelocity((rng.Float64()*2-1)*opts.MaxSpeed, (rng.Float64()*2-1)*opts.MaxSpeed)
		}
		if opts.HalfExtent > 0 {
			b = b.WithBoundary(opts.HalfExtent, opts.HalfExtent)
		}
		if opts.MouseAttract {
			b = b.WithMouseAttract()
		}
		out.Nodes = append(out.Nodes, s.Spawn(b))
	}

	n := len(out.Nodes)
	edges := min(opts.Edges, n*(n-1)/2)
	seen := make(map[[2]int]bool, edges)
	for len(out.Edges) < edges {
		i, j := rng.IntN(n), rng.IntN(n)
		if i == j {
			continue
		}
		if i > j {
			i, j = j, i
		}
		if seen[[2]int{i, j}] {
			continue
		}
		seen[[2]int{i, j}] = true

		e, err := s.ConnectEdge(out.Nodes[i], out.Nodes[j], opts.RestLength, opts.Stiffness)
		if err != nil {
			return out, fmt.Errorf("populate: %w", err)
		}
		out.Edges = append(out.Edges, e)
	}
	return out, nil
}

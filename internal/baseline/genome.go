package baseline

import (
	"math/rand"

	"github.com/MaxHalford/eaopt"

	"github.com/rbscholtus/qubocraft/internal/tabu"
)

// bitGenome adapts a binary assignment over a fixed QUBO to the
// eaopt.Genome interface. The QUBO handle is shared read-only between
// clones; only the bit vector is copied.
type bitGenome struct {
	q    *tabu.QUBO
	bits []uint8
}

// Evaluate returns the assignment's energy in the caller's original
// units, so fitness values are comparable with tabu.SearchResult.
func (g *bitGenome) Evaluate() (float64, error) {
	return float64(g.q.Energy(g.bits)) / g.q.Scale(), nil
}

// Mutate flips one randomly chosen bit.
func (g *bitGenome) Mutate(rng *rand.Rand) {
	i := rng.Intn(len(g.bits))
	g.bits[i] = 1 - g.bits[i]
}

// Crossover does nothing. It is defined only so *bitGenome implements
// the eaopt.Genome interface; simulated annealing never crosses over.
func (g *bitGenome) Crossover(_ eaopt.Genome, _ *rand.Rand) {}

// Clone returns a copy of the genome with its own bit vector.
func (g *bitGenome) Clone() eaopt.Genome {
	return &bitGenome{
		q:    g.q,
		bits: append([]uint8(nil), g.bits...),
	}
}

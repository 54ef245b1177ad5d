// Package generator produces tetrominoes picked uniformly from the catalog.
package generator

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tetris-net/internal/tetris"
)

// MaxRotations bounds the random pre-rotation count.
const MaxRotations = 3

// Generator hands out random shapes. Safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	catalog []tetris.Shape
}

// New creates a generator seeded with seed. A zero seed uses the clock.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:     rand.New(rand.NewSource(seed)),
		catalog: tetris.Catalog(),
	}
}

// Next returns a shape in spawn orientation. The result is validated before
// it leaves the generator; a malformed catalog entry is an error, not a
// coerced shape.
func (g *Generator) Next() (tetris.Shape, error) {
	g.mu.Lock()
	s := g.catalog[g.rng.Intn(len(g.catalog))]
	g.mu.Unlock()

	if err := s.Validate(); err != nil {
		return tetris.Shape{}, fmt.Errorf("generator: next: %w", err)
	}
	return s, nil
}

// RandomRotations returns how many clockwise turns to apply to a fresh piece,
// in [0, MaxRotations].
func (g *Generator) RandomRotations() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(MaxRotations + 1)
}

// Package generator draws target letters.
package generator

import (
	"math/rand"
	"time"
)

const alphabetSize = 26

// Generator produces random uppercase letters.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Next draws a letter in A-Z uniformly, redrawing while it equals prev.
// Pass 0 for prev when there is no previous letter.
func (g *Generator) Next(prev rune) rune {
	for {
		letter := 'A' + rune(g.rnd.Intn(alphabetSize))
		if letter != prev {
			return letter
		}
	}
}

package arena

import (
	"fmt"
	"math/rand"
)

// Room names are generated locally (AdjectiveNounNN) instead of pulling in a
// name list dependency; the generator takes an injected *rand.Rand so name
// sequences are reproducible under a fixed seed.

var nameAdjectives = []string{
	"Brave", "Sleepy", "Feisty", "Mighty", "Sneaky", "Jolly",
	"Grumpy", "Swift", "Rusty", "Shiny", "Wobbly", "Fierce",
	"Dizzy", "Plucky", "Soggy", "Zesty",
}

var nameNouns = []string{
	"Mollusk", "Badger", "Falcon", "Walrus", "Mantis", "Gecko",
	"Wombat", "Heron", "Iguana", "Puffin", "Newt", "Lobster",
	"Marmot", "Osprey", "Tapir", "Beetle",
}

type nameGenerator struct {
	rng         *rand.Rand
	maxAttempts int
}

func newNameGenerator(rng *rand.Rand, maxAttempts int) *nameGenerator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &nameGenerator{rng: rng, maxAttempts: maxAttempts}
}

func (g *nameGenerator) next() string {
	adj := nameAdjectives[g.rng.Intn(len(nameAdjectives))]
	noun := nameNouns[g.rng.Intn(len(nameNouns))]
	return fmt.Sprintf("%s%s%02d", adj, noun, g.rng.Intn(100))
}

// generate retries on collision up to the attempt bound. taken reports whether
// a candidate name is already held by an open room.
func (g *nameGenerator) generate(taken func(string) bool) (string, error) {
	for i := 0; i < g.maxAttempts; i++ {
		name := g.next()
		if !taken(name) {
			return name, nil
		}
	}
	return "", ErrNamesExhausted
}

package rng

// Generator is the random source used for dealer selection. Tests supply
// a fixed implementation for repeatable seating.
type Generator interface {
	// Intn returns a random number in [0, n)
	Intn(n int) int
}

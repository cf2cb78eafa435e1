package code

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_code.go github.com/KirkDiggler/rollcall/internal/code Generator

const (
	// Min is the smallest code that can be issued
	Min = 100000

	// Space is the number of distinct codes (100000-999999)
	Space = 900000
)

// Generator issues human-enterable join codes
type Generator interface {
	Generate() string
}

// Config for the code generator
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Random draws codes uniformly over the 6-digit space
type Random struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new code generator
func New(cfg *Config) *Random {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Random{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Generate returns a 6-digit numeric code
func (r *Random) Generate() string {
	r.mu.Lock()
	n := r.random.Intn(Space)
	r.mu.Unlock()

	return strconv.Itoa(Min + n)
}

// Valid reports whether s has the shape of an issued code
func Valid(s string) bool {
	if len(s) != 6 {
		return false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= Min && n < Min+Space
}

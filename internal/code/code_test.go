package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStaysInSixDigitSpace(t *testing.T) {
	g := New(&Config{Seed: 42})

	for i := 0; i < 10000; i++ {
		c := g.Generate()
		require.Len(t, c, 6)
		require.True(t, Valid(c), "code %q out of range", c)
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestValid(t *testing.T) {
	cases := map[string]bool{
		"100000":  true,
		"999999":  true,
		"000000":  false,
		"099999":  false,
		"12345":   false,
		"1234567": false,
		"12a456":  false,
		"":        false,
	}
	for in, want := range cases {
		assert.Equal(t, want, Valid(in), in)
	}
}

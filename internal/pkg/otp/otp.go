package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// CodeLength is the number of digits in a generated one-time code.
const CodeLength = 6

// Generator produces fixed-length numeric one-time codes, uniformly
// distributed over [0, 10^CodeLength). The randomness source is injectable
// for deterministic tests.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a Generator reading from r. A nil r falls back to
// crypto/rand.Reader.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Code returns a zero-padded numeric code of CodeLength digits.
func (g *Generator) Code() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < CodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(g.rand, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n), nil
}

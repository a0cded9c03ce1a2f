package tokengenerator

import (
	"crypto/rand"
	"encoding/hex"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"io"
)

// 16 bytes give the 128 bits of randomness a reset token needs.
const resetTokenSize = 16

type Generator struct {
	random io.Reader
}

func NewGenerator() *Generator {
	return &Generator{random: rand.Reader}
}

func (g *Generator) GenerateResetToken() (passwordreset.Token, error) {
	b := make([]byte, resetTokenSize)
	if _, err := io.ReadFull(g.random, b); err != nil {
		return passwordreset.Token(""), err
	}
	return passwordreset.Token(hex.EncodeToString(b)), nil
}

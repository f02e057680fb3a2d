package otp

import "github.com/xlzd/gotp"

// Generator produces fixed-length numeric one-time codes.
type Generator interface {
	RandomCode(length int) string
}

type GOTPGenerator struct{}

func NewGOTPGenerator() *GOTPGenerator {
	return &GOTPGenerator{}
}

// RandomCode derives an N-digit code from a fresh random secret, so each
// call is independent of the last.
func (g *GOTPGenerator) RandomCode(length int) string {
	secret := gotp.RandomSecret(16)
	return gotp.NewTOTP(secret, length, 30, nil).Now()
}

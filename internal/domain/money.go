package domain

import "github.com/tirasundara/payments-engine/internal/fixedpoint"

// Money is an exact amount with four fractional digits backed by a 128-bit integer.
type Money = fixedpoint.Fixed[fixedpoint.Bits128Scale4]

// ParseMoney parses a plain decimal amount such as "1.5".
func ParseMoney(text string) (Money, error) {
	return fixedpoint.Parse[fixedpoint.Bits128Scale4](text)
}

// ZeroMoney returns 0.0000.
func ZeroMoney() Money {
	return fixedpoint.Zero[fixedpoint.Bits128Scale4]()
}

package format

import (
	"math/big"

	"github.com/dustin/go-humanize"
)

// FormatBigInt formats v with thousands separators. A nil value renders
// as "-". v is not modified.
func FormatBigInt(v *big.Int) string {
	if v == nil {
		return "-"
	}
	// humanize.BigComma divides its argument in place.
	return humanize.BigComma(new(big.Int).Set(v))
}

// FormatBytes renders a byte count using IEC units ("1.5 MiB").
func FormatBytes(b uint64) string {
	return humanize.IBytes(b)
}

// Digits returns the number of decimal digits of |v|. Zero has one digit.
func Digits(v *big.Int) int {
	if v == nil {
		return 0
	}
	s := new(big.Int).Abs(v).String()
	return len(s)
}

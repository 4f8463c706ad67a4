// Command generate-golden writes the verdict golden file used by the
// prime package tests. The verdicts come from a deliberately naive scan
// that shares no code with the package under test.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// rangeStart and rangeEnd bound the exhaustively listed candidates.
const (
	rangeStart = -3
	rangeEnd   = 120
)

// notable are candidates with interesting factor structure: products of
// twin primes, Fermat numbers, Mersenne primes and common moduli.
var notable = []string{
	"899",
	"7917",
	"7919",
	"65536",
	"65537",
	"1000003",
	"998244353",
	"1000000007",
	"2147483647",
	"4294967291",
	"4294967297",
	"1000000000039",
	"18446744073709551617",
}

type goldenEntry struct {
	N            string  `json:"n"`
	IsPrime      bool    `json:"is_prime"`
	Witness      *string `json:"witness"`
	CheckedBound string  `json:"checked_bound"`
}

// naiveVerdict scans every divisor from 2 to isqrt(n).
func naiveVerdict(n *big.Int) goldenEntry {
	e := goldenEntry{N: n.String(), CheckedBound: "0"}
	if n.Cmp(big.NewInt(2)) < 0 {
		return e
	}
	bound := new(big.Int).Sqrt(n)
	one := big.NewInt(1)
	rem := new(big.Int)
	for d := big.NewInt(2); d.Cmp(bound) <= 0; d.Add(d, one) {
		if rem.Rem(n, d).Sign() == 0 {
			w := d.String()
			e.Witness = &w
			e.CheckedBound = w
			return e
		}
	}
	e.IsPrime = true
	e.CheckedBound = bound.String()
	return e
}

func candidates() ([]*big.Int, error) {
	var out []*big.Int
	for i := int64(rangeStart); i <= rangeEnd; i++ {
		out = append(out, big.NewInt(i))
	}
	for _, s := range notable {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("bad notable candidate %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}

// writeGolden writes one JSON object per line inside a JSON array, which
// keeps diffs of the golden file readable.
func writeGolden(w io.Writer, entries []goldenEntry) error {
	lines := make([]string, len(entries))
	for i, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return err
		}
		lines[i] = "  " + strings.NewReplacer(`":`, `": `, `,"`, `, "`).Replace(string(b))
	}
	_, err := fmt.Fprintf(w, "[\n%s\n]\n", strings.Join(lines, ",\n"))
	return err
}

func main() {
	out := flag.String("o", "internal/prime/testdata/verdicts_golden.json", "output path")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ns, err := candidates()
	if err != nil {
		logger.Fatal().Err(err).Msg("building candidate list")
	}
	entries := make([]goldenEntry, len(ns))
	for i, n := range ns {
		entries[i] = naiveVerdict(n)
	}

	f, err := os.Create(*out)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *out).Msg("creating golden file")
	}
	if err := writeGolden(f, entries); err != nil {
		f.Close()
		logger.Fatal().Err(err).Msg("writing golden file")
	}
	if err := f.Close(); err != nil {
		logger.Fatal().Err(err).Msg("closing golden file")
	}
	logger.Info().Int("entries", len(entries)).Str("path", *out).Msg("golden file written")
}

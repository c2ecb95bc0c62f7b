package webapp

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// nbsp separates the currency symbol from the amount, as pt-BR locale output does.
const nbsp = "\u00a0"

const dateLayout = "02/01/2006, 15:04"

// ErrMoeda is returned by ParseMoeda for text that is not a BRL amount.
var ErrMoeda = errors.New("valor monetário inválido")

// FormatMoeda renders v as Brazilian reais, e.g. "R$ 1.234,56".
func FormatMoeda(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("R$")
	b.WriteString(nbsp)
	b.WriteString(groupThousands(intPart))
	b.WriteString(",")
	b.WriteString(frac)
	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	lead := len(digits) % 3
	var b strings.Builder
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseMoeda reads an amount produced by FormatMoeda back into a number.
// Both a regular space and a non-breaking space are accepted after "R$".
func ParseMoeda(s string) (float64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	rest, ok := strings.CutPrefix(s, "R$")
	if !ok {
		return 0, ErrMoeda
	}
	rest = strings.TrimLeft(rest, " "+nbsp)
	rest = strings.ReplaceAll(rest, ".", "")
	rest = strings.Replace(rest, ",", ".", 1)

	d, err := decimal.NewFromString(rest)
	if err != nil {
		return 0, ErrMoeda
	}
	if neg {
		d = d.Neg()
	}
	f, _ := d.Float64()
	return f, nil
}

// FormatData renders t as a pt-BR date and time in loc.
func FormatData(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateLayout)
}

// LoadLocation resolves an IANA zone name, falling back to UTC when the
// zone database does not know it.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

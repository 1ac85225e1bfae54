package poly

import (
	"strconv"
	"strings"
)

const DefaultVariable = "x"

// String renders the chain as "1x^3 + 2x^2 -11x + 12". A negative coefficient
// carries its own sign, so no "+" is written in front of it.
func (p Poly) String() string {
	return FormatVar(p, DefaultVariable)
}

func Format(p Poly) string {
	return p.String()
}

// FormatVar is String with a different variable symbol.
func FormatVar(p Poly, variable string) string {
	var sb strings.Builder
	for n := p.head; n != nil; n = n.next {
		writeTerm(&sb, n.term, variable)
		if n.next == nil {
			break
		}
		if n.next.term.Coefficient < 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(" + ")
		}
	}
	return sb.String()
}

func writeTerm(sb *strings.Builder, t Term, variable string) {
	sb.WriteString(FormatCoefficient(t.Coefficient))
	switch t.Exponent {
	case 0:
	case 1:
		sb.WriteString(variable)
	default:
		sb.WriteString(variable)
		sb.WriteByte('^')
		sb.WriteString(strconv.Itoa(t.Exponent))
	}
}

// FormatCoefficient writes the shortest decimal that round-trips to c, without
// exponent notation: 1, -11, 2.5.
func FormatCoefficient(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

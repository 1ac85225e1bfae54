package poly

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrSyntax indicates text that does not describe a polynomial.
	ErrSyntax = errors.New("poly: invalid syntax")
)

// Parse reads a polynomial in the notation written by String. Terms are
// separated by whitespace; a standalone "+" or "-" applies to the next term.
// Hand-written forms such as "x^2 - 3x + 2" or "-x" are accepted too.
func Parse(s string) (Poly, error) {
	return ParseVar(s, DefaultVariable)
}

// ParseVar is Parse with a different variable symbol.
func ParseVar(s, variable string) (Poly, error) {
	if variable == "" {
		return Poly{}, fmt.Errorf("%w: empty variable symbol", ErrSyntax)
	}

	var terms []Term
	sign := 1.0
	pendingOp := ""
	for _, tok := range strings.Fields(s) {
		switch tok {
		case "+", "-":
			if pendingOp != "" {
				return Poly{}, fmt.Errorf("%w: operator %q follows %q", ErrSyntax, tok, pendingOp)
			}
			pendingOp = tok
			if tok == "-" {
				sign = -1
			}
			continue
		}

		t, err := parseTerm(tok, variable)
		if err != nil {
			return Poly{}, err
		}
		t.Coefficient *= sign
		terms = append(terms, t)
		sign, pendingOp = 1, ""
	}
	if pendingOp != "" {
		return Poly{}, fmt.Errorf("%w: trailing %q", ErrSyntax, pendingOp)
	}
	return New(terms...), nil
}

func parseTerm(tok, variable string) (Term, error) {
	idx := strings.Index(tok, variable)
	if idx < 0 {
		c, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Term{}, fmt.Errorf("%w: bad constant %q", ErrSyntax, tok)
		}
		return Term{Coefficient: c, Exponent: 0}, nil
	}

	coefPart := tok[:idx]
	expPart := tok[idx+len(variable):]

	var c float64
	switch coefPart {
	case "", "+":
		c = 1
	case "-":
		c = -1
	default:
		v, err := strconv.ParseFloat(strings.TrimSuffix(coefPart, "*"), 64)
		if err != nil {
			return Term{}, fmt.Errorf("%w: bad coefficient in %q", ErrSyntax, tok)
		}
		c = v
	}

	e := 1
	if expPart != "" {
		if !strings.HasPrefix(expPart, "^") {
			return Term{}, fmt.Errorf("%w: expected '^' in %q", ErrSyntax, tok)
		}
		v, err := strconv.Atoi(strings.Trim(expPart[1:], "()"))
		if err != nil {
			return Term{}, fmt.Errorf("%w: bad exponent in %q", ErrSyntax, tok)
		}
		e = v
	}
	return Term{Coefficient: c, Exponent: e}, nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(s string) Poly {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

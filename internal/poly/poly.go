package poly

// Term is a single coefficient/exponent pair.
type Term struct {
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
	Exponent    int     `json:"exponent" yaml:"exponent"`
}

type node struct {
	term Term
	next *node
}

// Poly is an immutable chain of terms. The zero value is the empty chain.
type Poly struct {
	head *node
}

func Empty() Poly {
	return Poly{}
}

// New builds a chain holding terms in the given order.
func New(terms ...Term) Poly {
	return Empty().appendTerms(terms)
}

// AppendTerm returns a new chain equal to p followed by c*x^e.
func AppendTerm(p Poly, c float64, e int) Poly {
	return p.Append(c, e)
}

// Append returns a new chain with the term added at the tail. The receiver
// keeps its old contents.
func (p Poly) Append(c float64, e int) Poly {
	return p.appendTerms([]Term{{Coefficient: c, Exponent: e}})
}

// appendTerms copies every node of p so the returned chain shares nothing
// that a later append could reach.
func (p Poly) appendTerms(extra []Term) Poly {
	var head, tail *node
	push := func(t Term) {
		n := &node{term: t}
		if tail == nil {
			head = n
		} else {
			tail.next = n
		}
		tail = n
	}
	for n := p.head; n != nil; n = n.next {
		push(n.term)
	}
	for _, t := range extra {
		push(t)
	}
	return Poly{head: head}
}

func (p Poly) IsEmpty() bool {
	return p.head == nil
}

// Head returns the first term, or false for the empty chain.
func (p Poly) Head() (Term, bool) {
	if p.head == nil {
		return Term{}, false
	}
	return p.head.term, true
}

// Tail returns the chain after the first term. The tail of the empty chain is
// empty.
func (p Poly) Tail() Poly {
	if p.head == nil {
		return p
	}
	return Poly{head: p.head.next}
}

func (p Poly) Len() int {
	n := 0
	for cur := p.head; cur != nil; cur = cur.next {
		n++
	}
	return n
}

func (p Poly) Terms() []Term {
	terms := make([]Term, 0, p.Len())
	for n := p.head; n != nil; n = n.next {
		terms = append(terms, n.term)
	}
	return terms
}

// Degree is the largest exponent in the chain, 0 for the empty chain.
func (p Poly) Degree() int {
	if p.head == nil {
		return 0
	}
	deg := p.head.term.Exponent
	for n := p.head.next; n != nil; n = n.next {
		if n.term.Exponent > deg {
			deg = n.term.Exponent
		}
	}
	return deg
}

// Equal reports whether both chains hold the same terms in the same order.
func (p Poly) Equal(other Poly) bool {
	a, b := p.head, other.head
	for a != nil && b != nil {
		if a.term != b.term {
			return false
		}
		a, b = a.next, b.next
	}
	return a == nil && b == nil
}

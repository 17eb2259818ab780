package num

import "gonum.org/v1/gonum/num/dual"

// Max returns the elementwise larger of a and b. On a value tie the first
// operand wins, which fixes which derivative propagates through a Dual
// array at the tie.
func Max(a, b dual.Number) dual.Number {
	if b.Real > a.Real {
		return b
	}
	return a
}

// Min returns the elementwise smaller of a and b, with the same first-wins
// tie rule as Max.
func Min(a, b dual.Number) dual.Number {
	if b.Real < a.Real {
		return b
	}
	return a
}

// AddConst shifts a dual number by a constant, leaving the derivative
// untouched.
func AddConst(c float64, a dual.Number) dual.Number {
	return dual.Number{Real: a.Real + c, Emag: a.Emag}
}

// Hypot returns sqrt(a²+b²) with derivative propagation. The derivative is
// undefined at a==b==0; that degenerate case is deliberately unguarded.
func Hypot(a, b dual.Number) dual.Number {
	return dual.Sqrt(dual.Add(dual.Mul(a, a), dual.Mul(b, b)))
}

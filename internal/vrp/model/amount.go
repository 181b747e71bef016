package model

// Amount is a componentwise capacity vector (e.g. weight, volume, count).
// A nil Amount behaves like an all-zero vector of any length.
type Amount []int

// Add returns the componentwise sum of a and b. The result has the length
// of the longer operand; missing components are treated as zero.
func Add(a, b Amount) Amount {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Amount, n)
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = av + bv
	}
	return out
}

// Sub returns the componentwise difference a-b, same length rule as Add.
func Sub(a, b Amount) Amount {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Amount, n)
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = av - bv
	}
	return out
}

// LessEq reports whether a <= b componentwise. Missing components of either
// operand are treated as zero.
func LessEq(a, b Amount) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av > bv {
			return false
		}
	}
	return true
}

// Clone returns a fresh copy of a.
func (a Amount) Clone() Amount {
	out := make(Amount, len(a))
	copy(out, a)
	return out
}

package edn

import "math"

// Equal reports whether a and b denote the same value. Vectors and lists
// are distinct; maps compare by their entries regardless of order; sets
// compare as multisets. NaN equals NaN and instants compare as moments.
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil{}
	}
	if b == nil {
		b = Nil{}
	}
	switch x := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool, Int, String, Keyword, Symbol:
		return a == b
	case Float:
		y, ok := b.(Float)
		if !ok {
			return false
		}
		if math.IsNaN(float64(x)) {
			return math.IsNaN(float64(y))
		}
		return x == y
	case Inst:
		y, ok := b.(Inst)
		return ok && x.Time.Equal(y.Time)
	case Tagged:
		y, ok := b.(Tagged)
		return ok && x.Tag == y.Tag && Equal(x.Value, y.Value)
	case Vector:
		y, ok := b.(Vector)
		return ok && equalSeq(x, y)
	case List:
		y, ok := b.(List)
		return ok && equalSeq(x, y)
	case Set:
		y, ok := b.(Set)
		return ok && equalBag(x, y)
	case Map:
		y, ok := b.(Map)
		return ok && equalMap(x, y)
	}
	return false
}

func equalSeq(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalBag(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
outer:
	for _, x := range a {
		for j, y := range b {
			if !used[j] && Equal(x, y) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

func equalMap(a, b Map) bool {
	ea, eb := a.Entries(), Map(b.Entries())
	if len(ea) != len(eb) {
		return false
	}
	for _, p := range ea {
		v, ok := eb.Get(p.Key)
		if !ok || !Equal(p.Value, v) {
			return false
		}
	}
	return true
}

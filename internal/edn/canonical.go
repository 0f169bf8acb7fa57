package edn

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Canonical returns the compact text of v with map entries and set
// elements sorted, duplicate map keys collapsed, strings NFC-normalized and
// instants in UTC. Values that are Equal have the same canonical text.
func Canonical(v Value) string {
	return Write(canonicalize(v))
}

// Hash returns the hex SHA-256 of domain, a zero byte, and the canonical
// text of v. The domain keeps hashes of different kinds of records apart.
func Hash(domain string, v Value) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write([]byte(Canonical(v)))
	return hex.EncodeToString(h.Sum(nil))
}

func canonicalize(v Value) Value {
	switch x := v.(type) {
	case nil:
		return Nil{}
	case String:
		return String(norm.NFC.String(string(x)))
	case Inst:
		return Inst{x.UTC()}
	case Tagged:
		return Tagged{Tag: x.Tag, Value: canonicalize(x.Value)}
	case Vector:
		return Vector(canonicalSeq(x))
	case List:
		return List(canonicalSeq(x))
	case Set:
		items := canonicalSeq(x)
		sortByText(items, func(i int) Value { return items[i] })
		return Set(items)
	case Map:
		entries := x.Entries()
		out := make(Map, len(entries))
		for i, p := range entries {
			out[i] = Pair{Key: canonicalize(p.Key), Value: canonicalize(p.Value)}
		}
		sortByText(out, func(i int) Value { return out[i].Key })
		return out
	}
	return v
}

func canonicalSeq(items []Value) []Value {
	out := make([]Value, len(items))
	for i, it := range items {
		out[i] = canonicalize(it)
	}
	return out
}

// sortByText orders slice by the compact text of key(i). The elements are
// already canonical, so Write is enough.
func sortByText[T any](slice []T, key func(int) Value) {
	texts := make([]string, len(slice))
	for i := range slice {
		texts[i] = Write(key(i))
	}
	idx := make([]int, len(slice))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return texts[idx[a]] < texts[idx[b]] })
	sorted := make([]T, len(slice))
	for i, j := range idx {
		sorted[i] = slice[j]
	}
	copy(slice, sorted)
}

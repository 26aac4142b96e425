package drt

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Var is a variable name with a numeric subscript.
// Index 0 prints as the bare name.
type Var struct {
	Name  string
	Index int
}

func (v Var) String() string {
	if v.Index == 0 {
		return v.Name
	}
	return v.Name + strconv.Itoa(v.Index)
}

// Ref is a discourse referent. Constant referents take part in conditions
// but are never renamed and never count as bound or free.
type Ref struct {
	Var   Var
	Const bool
}

// NewRef parses a referent name such as "x" or "x12". Trailing digits
// become the index.
func NewRef(s string) Ref {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == 0 || i == len(s) {
		return Ref{Var: Var{Name: s}}
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil || strings.HasPrefix(s[i:], "0") {
		return Ref{Var: Var{Name: s}}
	}
	return Ref{Var: Var{Name: s[:i], Index: n}}
}

// NewConst returns a constant referent.
func NewConst(name string) Ref {
	return Ref{Var: Var{Name: name}, Const: true}
}

// Refs parses a list of referent names.
func Refs(names ...string) []Ref {
	rs := make([]Ref, len(names))
	for i, n := range names {
		rs[i] = NewRef(n)
	}
	return rs
}

func (r Ref) String() string {
	if r.Const {
		return strconv.Quote(r.Var.String())
	}
	return r.Var.String()
}

// Fresh returns the referent with the same name and the next index.
func (r Ref) Fresh() Ref {
	return Ref{Var: Var{Name: r.Var.Name, Index: r.Var.Index + 1}, Const: r.Const}
}

// NewRefs returns one fresh referent per entry of old. No result collides
// with existing or with an earlier result.
func NewRefs(old []Ref, existing []Ref) []Ref {
	taken := set.From(existing)
	out := make([]Ref, len(old))
	for i, r := range old {
		n := r.Fresh()
		for taken.Contains(n) {
			n = n.Fresh()
		}
		taken.Insert(n)
		out[i] = n
	}
	return out
}

// Rename maps one referent to another.
type Rename struct {
	From Ref
	To   Ref
}

// Renaming is an ordered list of renames. The first entry for a referent wins.
type Renaming []Rename

// Zip pairs old and new positionally.
func Zip(old, new []Ref) Renaming {
	n := min(len(old), len(new))
	rs := make(Renaming, n)
	for i := range n {
		rs[i] = Rename{From: old[i], To: new[i]}
	}
	return rs
}

// Lookup returns the target for r.
func (rs Renaming) Lookup(r Ref) (Ref, bool) {
	if r.Const {
		return r, false
	}
	for _, x := range rs {
		if x.From == r {
			return x.To, true
		}
	}
	return r, false
}

// Apply renames r if present, otherwise returns r.
func (rs Renaming) Apply(r Ref) Ref {
	to, _ := rs.Lookup(r)
	return to
}

// Sources returns the referents being renamed.
func (rs Renaming) Sources() []Ref {
	out := make([]Ref, len(rs))
	for i, x := range rs {
		out[i] = x.From
	}
	return out
}

// IsIdentity reports whether every entry maps a referent to itself.
func (rs Renaming) IsIdentity() bool {
	for _, x := range rs {
		if x.From != x.To {
			return false
		}
	}
	return true
}

// Intersect returns the members of a that also occur in b, in a's order.
func Intersect(a, b []Ref) []Ref {
	bs := set.From(b)
	var out []Ref
	for _, r := range a {
		if bs.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// Union returns a followed by the members of b not already in a.
func Union(a, b []Ref) []Ref {
	seen := set.From(a)
	out := append([]Ref(nil), a...)
	for _, r := range b {
		if seen.Insert(r) {
			out = append(out, r)
		}
	}
	return out
}

// Complement returns the members of a that are not in b.
func Complement(a, b []Ref) []Ref {
	bs := set.From(b)
	var out []Ref
	for _, r := range a {
		if !bs.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// Dedup removes repeated referents, keeping first occurrences.
func Dedup(rs []Ref) []Ref {
	return Union(nil, rs)
}

// ContainsRef reports whether r is in rs.
func ContainsRef(rs []Ref, r Ref) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

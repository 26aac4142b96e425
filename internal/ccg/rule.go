package ccg

// Rule is a combinatory rule named at an internal node of a derivation.
type Rule int

const (
	RuleNone Rule = iota
	FA            // X/Y Y => X
	BA            // Y X\Y => X
	FC            // X/Y Y/Z => X/Z
	FX            // X/Y Y\Z => X\Z
	BC            // Y\Z X\Y => X\Z
	BX            // Y/Z X\Y => X/Z
	FS            // (X/Y)/Z Y/Z => X/Z
	BS            // Y\Z (X\Y)\Z => X\Z
	FXS           // (X/Y)\Z Y\Z => X\Z
	BXS           // Y/Z (X\Y)/Z => X/Z
	GFC           // X/Y (Y/Z)/W => (X/Z)/W
	GFX           // X/Y (Y\Z)/W => (X\Z)/W
	GBC           // (Y\Z)\W X\Y => (X\Z)\W
	GBX           // (Y/Z)\W X\Y => (X/Z)\W
	FTR           // X => T/(T\X)
	BTR           // X => T\(T/X)
	LP            // left operand is dropped: result is the right
	RP            // right operand is dropped: result is the left
	LCONJ         // X[conj] X => X
	RCONJ         // X X[conj] => X
	RNUM          // NP/NP N[num] => NP
	TCAtom        // atomic unary type change
	TCLUnary      // unary type change of the left operand
	TCRUnary      // unary type change of the right operand
	TCConj        // conj X => X[conj] by type change
)

var ruleNames = [...]string{
	RuleNone: "NONE",
	FA:       "FA",
	BA:       "BA",
	FC:       "FC",
	FX:       "FX",
	BC:       "BC",
	BX:       "BX",
	FS:       "FS",
	BS:       "BS",
	FXS:      "FXS",
	BXS:      "BXS",
	GFC:      "GFC",
	GFX:      "GFX",
	GBC:      "GBC",
	GBX:      "GBX",
	FTR:      "FTR",
	BTR:      "BTR",
	LP:       "LP",
	RP:       "RP",
	LCONJ:    "LCONJ",
	RCONJ:    "RCONJ",
	RNUM:     "RNUM",
	TCAtom:   "ATOM_TC",
	TCLUnary: "L_UNARY_TC",
	TCRUnary: "R_UNARY_TC",
	TCConj:   "CONJ_TC",
}

func (r Rule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return "NONE"
	}
	return ruleNames[r]
}

// ParseRule returns the rule with the given name.
func ParseRule(s string) (Rule, bool) {
	for i, n := range ruleNames {
		if n == s {
			return Rule(i), true
		}
	}
	return RuleNone, false
}

// IsTypeChange reports the unary type-changing rules.
func (r Rule) IsTypeChange() bool {
	switch r {
	case TCAtom, TCLUnary, TCRUnary, TCConj:
		return true
	}
	return false
}

// IsTypeRaise reports FTR and BTR.
func (r Rule) IsTypeRaise() bool { return r == FTR || r == BTR }

// isNPModifier matches NP/NP with an optional lower-case feature on the
// result.
func isNPModifier(c Category) bool {
	if !c.IsFunctor() || !c.IsArgRight() {
		return false
	}
	r, a := c.Result(), c.Argument()
	if !r.IsAtom() || r.base != "NP" || !a.Equal(NP) {
		return false
	}
	for _, ch := range r.feature {
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

// typeRaise classifies X => T|(T|X) where the outer and inner slashes
// differ.
func typeRaise(left, result Category) Rule {
	if !result.IsFunctor() || !result.Argument().IsFunctor() {
		return RuleNone
	}
	inner := result.Argument()
	if !result.Result().Equal(inner.Result()) || !left.CanUnify(inner.Argument()) {
		return RuleNone
	}
	switch {
	case result.IsArgRight() && inner.IsArgLeft():
		return FTR
	case result.IsArgLeft() && inner.IsArgRight():
		return BTR
	}
	return RuleNone
}

// GetRule classifies the rule combining left and right into result. An
// empty right marks a unary node. Categories are expected to be
// simplified. RuleNone means no rule matches.
func GetRule(left, right, result Category) Rule {
	if left.IsPunct() {
		switch {
		case right.IsPunct():
			return RP
		case right.IsEmpty(), right.Equal(Conj), right.Equal(ConjFwd), right.Equal(ConjBwd):
			return LP
		case right.CanUnify(result):
			return LP
		}
		return TCRUnary
	}
	if right.IsPunct() {
		switch {
		case left.Equal(Conj), left.Equal(ConjFwd), left.Equal(ConjBwd):
			return RP
		case left.CanUnify(result):
			return RP
		case left.IsAtom() && result.IsAtom():
			return TCAtom
		}
		if r := typeRaise(left, result); r != RuleNone {
			return r
		}
		return TCLUnary
	}

	switch {
	case left.IsConj() && !right.IsEmpty():
		switch {
		case left.Equal(Conj):
			switch {
			case right.Equal(ConjBwd):
				return BA
			case right.CanUnify(result):
				return LP
			case result.IsModifier() && result.Argument().CanUnify(right):
				return TCRUnary
			case right.IsAtom() && result.IsAtom():
				return TCAtom
			case result.IsConj():
				return TCConj
			}
		case left.Equal(ConjFwd) && right.Equal(Conj):
			return FA
		case left.CanUnify(right):
			return LCONJ
		}
		return RuleNone
	case right.IsConj():
		switch {
		case right.Equal(Conj):
			return RP
		case left.CanUnify(right):
			return RCONJ
		}
		return RuleNone
	case left.IsEmpty():
		return LP
	case isNPModifier(left) && right.Equal(NNum):
		return RNUM
	case right.IsEmpty():
		if r := typeRaise(left, result); r != RuleNone {
			return r
		}
		switch {
		case left.CanUnify(result):
			return RP
		case left.IsAtom() && result.IsAtom():
			return TCAtom
		}
		return TCLUnary
	}

	if left.IsArgRight() && left.Argument().CanUnify(right) && left.Result().CanUnify(result) {
		return FA
	}
	if left.IsArgRight() && right.IsFunctor() && left.Argument().CanUnify(right.Result()) &&
		Combine(left.Result(), right.Slash(), right.Argument()).CanUnify(result) {
		if right.IsArgRight() {
			return FC
		}
		return FX
	}
	if right.IsArgLeft() && right.Argument().CanUnify(left) && right.Result().CanUnify(result) {
		return BA
	}
	if right.IsArgLeft() && left.IsFunctor() && right.Argument().CanUnify(left.Result()) &&
		Combine(right.Result(), left.Slash(), left.Argument()).CanUnify(result) {
		if left.IsArgLeft() {
			return BC
		}
		return BX
	}
	if left.IsFunctor() && right.IsFunctor() && left.Argument().CanUnify(right.Argument()) &&
		left.Result().IsArgRight() && left.Slash() == right.Slash() &&
		left.Result().Argument().CanUnify(right.Result()) &&
		Combine(left.Result().Result(), left.Slash(), right.Argument()).CanUnify(result) {
		if right.IsArgRight() {
			return FS
		}
		return FXS
	}
	if left.IsFunctor() && right.IsFunctor() && right.Argument().CanUnify(left.Argument()) &&
		right.Result().IsArgLeft() && left.Slash() == right.Slash() &&
		right.Result().Argument().CanUnify(left.Result()) &&
		Combine(right.Result().Result(), left.Slash(), left.Argument()).CanUnify(result) {
		if right.IsArgLeft() {
			return BS
		}
		return BXS
	}
	if left.IsArgRight() && right.Result().IsFunctor() && result.Result().IsFunctor() &&
		right.Result().Slash() == result.Result().Slash() &&
		left.Argument().CanUnify(right.Result().Result()) &&
		Combine(Combine(left.Result(), right.Result().Slash(), right.Result().Argument()),
			right.Slash(), right.Argument()).CanUnify(result) {
		if right.Result().IsArgRight() {
			return GFC
		}
		return GFX
	}
	if right.IsArgLeft() && left.Result().IsFunctor() && result.Result().IsFunctor() &&
		left.Result().Slash() == result.Result().Slash() &&
		right.Argument().CanUnify(left.Result().Result()) &&
		Combine(Combine(right.Result(), left.Result().Slash(), left.Result().Argument()),
			left.Slash(), left.Argument()).CanUnify(result) {
		if left.Result().IsArgLeft() {
			return GBC
		}
		return GBX
	}
	return RuleNone
}

// ApplyRule returns the category a binary rule derives from left and right.
// Pass-through rules return the surviving operand; the boolean is false for
// rules whose result is fixed by the parent node rather than derived.
func ApplyRule(r Rule, left, right Category) (Category, bool) {
	switch r {
	case RP:
		return left, true
	case LP:
		return right, true
	case LCONJ:
		return right, true
	case RCONJ:
		return left, true
	case FA:
		return left.Result(), true
	case BA:
		return right.Result(), true
	case FC, FX:
		return Combine(left.Result(), right.Slash(), right.Argument()), true
	case BC, BX:
		return Combine(right.Result(), left.Slash(), left.Argument()), true
	case FS, FXS:
		return Combine(left.Result().Result(), left.Slash(), right.Argument()), true
	case BS, BXS:
		return Combine(right.Result().Result(), left.Slash(), left.Argument()), true
	case GFC, GFX:
		rr := right.Result()
		return Combine(Combine(left.Result(), rr.Slash(), rr.Argument()), right.Slash(), right.Argument()), true
	case GBC, GBX:
		lr := left.Result()
		return Combine(Combine(right.Result(), lr.Slash(), lr.Argument()), left.Slash(), left.Argument()), true
	}
	return Empty, false
}

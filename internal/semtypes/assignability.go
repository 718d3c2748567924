package semtypes

// IsAssignable reports whether a value of type from may be used where a
// value of type to is expected.
func IsAssignable(from, to Type) bool {
	if from.Kind == Unknown || to.Kind == Unknown {
		return true
	}
	if from.Kind == TypeParam || to.Kind == TypeParam {
		// Generics aren't instantiated at check time, so a type parameter
		// can't be checked against a concrete bound here; treat it like
		// Unknown rather than reject a legitimate generic use.
		return true
	}
	if from.Kind == Never {
		// A `never`-typed expression never actually produces a value at
		// runtime, so it's assignable to anything.
		return true
	}
	if to.Kind == Union {
		for _, member := range to.Members {
			if IsAssignable(from, member) {
				return true
			}
		}
		return false
	}
	if from.Kind == Union {
		for _, member := range from.Members {
			if !IsAssignable(member, to) {
				return false
			}
		}
		return true
	}
	if to.Kind == Optional {
		if from.Kind == Nil {
			return true
		}
		return IsAssignable(from, *to.Element)
	}

	if from.Kind != to.Kind {
		return false
	}
	switch from.Kind {
	case Int, Float, String, Bool, Nil, Never:
		return true
	case Nominal:
		return from.Nominal == to.Nominal
	case List:
		return IsAssignable(*from.Element, *to.Element)
	case Optional:
		return IsAssignable(*from.Element, *to.Element)
	case Function:
		if len(from.Params) != len(to.Params) {
			return false
		}
		for i := range from.Params {
			// Parameters are contravariant: `to`'s parameter must be
			// assignable to `from`'s, not the other way around.
			if !IsAssignable(to.Params[i], from.Params[i]) {
				return false
			}
		}
		return resultAssignable(from.Result, to.Result)
	default:
		return false
	}
}

func resultAssignable(from, to *Type) bool {
	if from == nil && to == nil {
		return true
	}
	if from == nil || to == nil {
		return false
	}
	return IsAssignable(*from, *to)
}

// AreComparableForEquality reports whether values of types a and b may be
// compared with == / != without the comparison being a guaranteed-false
// type error.
func AreComparableForEquality(a, b Type) bool {
	if a.Kind == Unknown || b.Kind == Unknown {
		return true
	}
	if IsAssignable(a, b) || IsAssignable(b, a) {
		return true
	}
	return false
}

// WithoutMember returns a copy of t with any union member structurally
// equal to remove stripped out (used by flow narrowing to remove a nil
// branch after a non-nil check). An Optional with remove == nil unwraps to
// its element type, the same narrowing an `x != nil` test implies for a
// `T?`-typed variable. If t is neither a union nor such an optional, or
// removing would empty it, t is returned unchanged.
func WithoutMember(t Type, remove Type) Type {
	if t.Kind == Optional && remove.Kind == Nil {
		return *t.Element
	}
	if t.Kind != Union {
		return t
	}
	var kept []Type
	for _, m := range t.Members {
		if m.display() != remove.display() {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return t
	}
	return NormalizeUnion(kept)
}

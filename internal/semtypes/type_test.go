package semtypes

import "testing"

func TestIsAssignable_UnknownAbsorbsEverything(t *testing.T) {
	unknown := Type{Kind: Unknown}
	intT := Type{Kind: Int}
	if !IsAssignable(unknown, intT) || !IsAssignable(intT, unknown) {
		t.Fatal("Unknown should be assignable to and from anything")
	}
}

func TestIsAssignable_NilToOptional(t *testing.T) {
	intT := Type{Kind: Int}
	opt := Type{Kind: Optional, Element: &intT}
	nilT := Type{Kind: Nil}
	if !IsAssignable(nilT, opt) {
		t.Fatal("nil should be assignable to int?")
	}
}

func TestIsAssignable_NeverIsAssignableToAnything(t *testing.T) {
	never := Type{Kind: Never}
	str := Type{Kind: String}
	if !IsAssignable(never, str) {
		t.Fatal("never should be assignable to string")
	}
}

func TestIsAssignable_MismatchedPrimitivesFail(t *testing.T) {
	if IsAssignable(Type{Kind: Int}, Type{Kind: String}) {
		t.Fatal("int should not be assignable to string")
	}
}

func TestNormalizeUnion_FlattensDedupsAndCollapses(t *testing.T) {
	intT := Type{Kind: Int}
	nested := Type{Kind: Union, Members: []Type{intT, {Kind: String}}}
	result := NormalizeUnion([]Type{nested, intT, {Kind: String}})
	if result.Kind != Union {
		t.Fatalf("expected a 2-member union, got %v", result.Display())
	}
	if len(result.Members) != 2 {
		t.Fatalf("want 2 deduped members, got %d: %s", len(result.Members), result.Display())
	}
}

func TestNormalizeUnion_SingletonCollapses(t *testing.T) {
	result := NormalizeUnion([]Type{{Kind: Int}, {Kind: Int}})
	if result.Kind != Int {
		t.Fatalf("singleton union should collapse to its member, got %v", result.Display())
	}
}

func TestWithoutMember_RemovesNilFromOptionalUnion(t *testing.T) {
	u := NormalizeUnion([]Type{{Kind: Int}, {Kind: Nil}})
	narrowed := WithoutMember(u, Type{Kind: Nil})
	if narrowed.Kind != Int {
		t.Fatalf("want int after removing nil, got %v", narrowed.Display())
	}
}

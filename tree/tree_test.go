package tree_test

import (
	"errors"
	"testing"

	"github.com/tunefeed/catalog/tree"
)

func mustDecode(t *testing.T, src string) tree.Value {
	t.Helper()
	v, err := tree.Decode([]byte(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestNavigationNeverPanics(t *testing.T) {
	doc := mustDecode(t, `{"a":{"b":[1,2,{"c":"x"}]},"n":null}`)

	if s, ok := doc.At("a", "b", 2, "c").Str(); !ok || s != "x" {
		t.Fatalf("expected x, got %q ok=%v", s, ok)
	}
	// Every wrong turn lands on the absent Value and stays there.
	if doc.At("a", "missing", 0, "deep", "deeper").Exists() {
		t.Fatalf("navigation through a missing key should be absent")
	}
	if doc.At("a", "b", 99).Exists() {
		t.Fatalf("out-of-range index should be absent")
	}
	if doc.At("a", "b", 0, "c").Exists() {
		t.Fatalf("keying into a number should be absent")
	}
	if _, ok := doc.Key("n").Str(); ok {
		t.Fatalf("null is not a string")
	}
	if !doc.Key("n").Exists() {
		t.Fatalf("a JSON null exists; only failed navigation is absent")
	}
	var zero tree.Value
	if zero.Key("x").Index(0).At("y").Exists() {
		t.Fatalf("zero Value must propagate absence")
	}
}

func TestNegativeIndex(t *testing.T) {
	doc := mustDecode(t, `{"thumbs":[{"url":"lo"},{"url":"mid"},{"url":"hi"}]}`)
	u, ok := doc.Key("thumbs").Index(-1).Key("url").Str()
	if !ok || u != "hi" {
		t.Fatalf("Index(-1) should reach the last element, got %q ok=%v", u, ok)
	}
}

func TestNumbers(t *testing.T) {
	doc := mustDecode(t, `{"i":42,"f":3.5,"big":9007199254740993}`)
	if n, ok := doc.Key("i").Int(); !ok || n != 42 {
		t.Fatalf("Int: got %d ok=%v", n, ok)
	}
	if f, ok := doc.Key("f").Float(); !ok || f != 3.5 {
		t.Fatalf("Float: got %v ok=%v", f, ok)
	}
	// json.Number preserves integers beyond float64 precision.
	if n, ok := doc.Key("big").Int(); !ok || n != 9007199254740993 {
		t.Fatalf("big Int: got %d ok=%v", n, ok)
	}
}

func TestFromAnyUnknownType(t *testing.T) {
	if tree.FromAny(struct{}{}).Exists() {
		t.Fatalf("unsupported Go types should map to absent")
	}
	if v, ok := tree.FromAny("hello").Str(); !ok || v != "hello" {
		t.Fatalf("FromAny(string): got %q ok=%v", v, ok)
	}
}

func TestDecodeGuards(t *testing.T) {
	if _, err := tree.DecodeWith([]byte(`{"a":1}`), tree.DecodeOpt{MaxBytes: 3}); !errors.Is(err, tree.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := tree.DecodeWith([]byte(`{"a":{"b":{"c":1}}}`), tree.DecodeOpt{MaxDepth: 2}); !errors.Is(err, tree.ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep, got %v", err)
	}
	if _, err := tree.DecodeWith([]byte(`{"a":{"b":1}}`), tree.DecodeOpt{MaxDepth: 4, MaxBytes: 1024}); err != nil {
		t.Fatalf("within limits: %v", err)
	}
	if _, err := tree.Decode([]byte(`{"truncated`)); err == nil {
		t.Fatalf("malformed JSON must error at the ingestion boundary")
	}
}

func TestFromYAML(t *testing.T) {
	doc, err := tree.FromYAML([]byte("contents:\n  items:\n    - title: A\n      count: 3\n"))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if s, ok := doc.At("contents", "items", 0, "title").Str(); !ok || s != "A" {
		t.Fatalf("yaml navigation: got %q ok=%v", s, ok)
	}
	if n, ok := doc.At("contents", "items", 0, "count").Int(); !ok || n != 3 {
		t.Fatalf("yaml int: got %d ok=%v", n, ok)
	}
}

func TestObj(t *testing.T) {
	doc := mustDecode(t, `{"hdr":{"title":"A","count":2},"arr":[1]}`)

	fields, ok := doc.Key("hdr").Obj()
	if !ok || len(fields) != 2 {
		t.Fatalf("Obj: got %v ok=%v", fields, ok)
	}
	if s, ok := fields["title"].Str(); !ok || s != "A" {
		t.Fatalf("field value must navigate like any Value, got %q ok=%v", s, ok)
	}
	if _, ok := doc.Key("arr").Obj(); ok {
		t.Fatalf("arrays are not objects")
	}
	if _, ok := doc.Key("missing").Obj(); ok {
		t.Fatalf("absent values are not objects")
	}
}

func TestKeysSorted(t *testing.T) {
	doc := mustDecode(t, `{"zeta":1,"alpha":2,"mid":3}`)
	keys := doc.Keys()
	if len(keys) != 3 || keys[0] != "alpha" || keys[1] != "mid" || keys[2] != "zeta" {
		t.Fatalf("Keys should be sorted, got %v", keys)
	}
}

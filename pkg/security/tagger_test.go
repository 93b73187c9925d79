package security

import (
	"strings"
	"testing"
)

func TestNewHMACTagger_RequiresSecret(t *testing.T) {
	if _, err := NewHMACTagger(nil); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewHMACTagger([]byte{}); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestTag_Deterministic(t *testing.T) {
	tagger, err := NewHMACTagger([]byte("s3cret"))
	if err != nil {
		t.Fatalf("new tagger: %v", err)
	}

	data := map[string][]string{
		"0-subject": {"hello"},
		"0-sender":  {"a@b.test"},
	}

	first, err := tagger.Tag(0, data)
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	second, err := tagger.Tag(0, data)
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	if first != second {
		t.Fatalf("same inputs produced different tags: %s vs %s", first, second)
	}
	if len(first) != 64 || strings.ToLower(first) != first {
		t.Fatalf("expected lowercase hex sha256 tag, got %q", first)
	}
}

func TestTag_SensitiveToInputs(t *testing.T) {
	tagger, _ := NewHMACTagger([]byte("s3cret"))
	other, _ := NewHMACTagger([]byte("different"))

	base := map[string][]string{"0-subject": {"hello"}}
	tag, err := tagger.Tag(0, base)
	if err != nil {
		t.Fatalf("tag: %v", err)
	}

	changedData, _ := tagger.Tag(0, map[string][]string{"0-subject": {"hello!"}})
	if Equal(tag, changedData) {
		t.Fatal("different data produced the same tag")
	}

	changedStep, _ := tagger.Tag(1, base)
	if Equal(tag, changedStep) {
		t.Fatal("different step index produced the same tag")
	}

	changedSecret, _ := other.Tag(0, base)
	if Equal(tag, changedSecret) {
		t.Fatal("different secret produced the same tag")
	}
}

func TestTag_CanonicalisationIsUnambiguous(t *testing.T) {
	tagger, _ := NewHMACTagger([]byte("s3cret"))

	// "ab"+"c" must not collide with "a"+"bc" thanks to length prefixes.
	left, _ := tagger.Tag(0, map[string][]string{"ab": {"c"}})
	right, _ := tagger.Tag(0, map[string][]string{"a": {"bc"}})
	if Equal(left, right) {
		t.Fatal("canonical payload is ambiguous across key/value boundaries")
	}

	// Multi-value order matters; key order does not.
	multi, _ := tagger.Tag(0, map[string][]string{"tags": {"x", "y"}, "name": {"n"}})
	same, _ := tagger.Tag(0, map[string][]string{"name": {"n"}, "tags": {"x", "y"}})
	if !Equal(multi, same) {
		t.Fatal("key iteration order leaked into the tag")
	}
	swapped, _ := tagger.Tag(0, map[string][]string{"tags": {"y", "x"}, "name": {"n"}})
	if Equal(multi, swapped) {
		t.Fatal("value order should affect the tag")
	}
}

func TestTag_RejectsNegativeStep(t *testing.T) {
	tagger, _ := NewHMACTagger([]byte("s3cret"))
	if _, err := tagger.Tag(-1, nil); err == nil {
		t.Fatal("expected error for negative step")
	}
}

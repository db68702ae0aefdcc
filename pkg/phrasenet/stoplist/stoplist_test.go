package stoplist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestManagerBasic(t *testing.T) {
	stops := []string{"the", "a", "and"}
	mgr := NewManager(stops)

	if !mgr.IsStop("the") {
		t.Error("'the' should be a stopword")
	}

	if mgr.IsStop("hello") {
		t.Error("'hello' should not be a stopword")
	}
}

func TestManagerIgnoresEmptyTerms(t *testing.T) {
	mgr := NewManager([]string{"", "the", ""})

	if mgr.Len() != 1 {
		t.Errorf("Expected 1 stopword, got %d", mgr.Len())
	}
	if mgr.IsStop("") {
		t.Error("empty string should never be a stopword")
	}
}

func TestManagerAll(t *testing.T) {
	mgr := NewManager([]string{"the", "a", "and", "the"})

	want := []string{"a", "and", "the"}
	if diff := cmp.Diff(want, mgr.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestManagerMergeDoesNotMutate(t *testing.T) {
	base := NewManager([]string{"the"})
	merged := base.Merge("cat")

	if !merged.IsStop("cat") || !merged.IsStop("the") {
		t.Error("merged manager should contain both sets")
	}
	if base.IsStop("cat") {
		t.Error("Merge must not modify the receiver")
	}
}

func TestFilterClosesGaps(t *testing.T) {
	mgr := NewManager([]string{"the", "of"})

	got := mgr.Filter([]string{"the", "king", "of", "the", "hill"})
	want := []string{"king", "hill"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter mismatch (-want +got):\n%s", diff)
	}
}

func TestNilManagerFiltersNothing(t *testing.T) {
	var mgr *Manager

	tokens := []string{"the", "cat"}
	if diff := cmp.Diff(tokens, mgr.Filter(tokens)); diff != "" {
		t.Errorf("nil manager should pass tokens through (-want +got):\n%s", diff)
	}
	if len(mgr.All()) != 0 {
		t.Error("nil manager should have no stopwords")
	}
}

func TestDefaultIsBilingual(t *testing.T) {
	mgr := Default()

	for _, w := range []string{"the", "and", "is", "não", "também", "de"} {
		if !mgr.IsStop(w) {
			t.Errorf("%q should be a default stopword", w)
		}
	}
	for _, w := range []string{"cat", "gato", "sat"} {
		if mgr.IsStop(w) {
			t.Errorf("%q should not be a default stopword", w)
		}
	}
}

func TestDefaultTermsIsCopy(t *testing.T) {
	terms := DefaultTerms()
	terms[0] = "mutated"

	if Default().IsStop("mutated") {
		t.Error("DefaultTerms must return a copy")
	}
}

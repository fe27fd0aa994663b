package freq

import (
	"reflect"
	"testing"
)

func TestCounterInsertionOrder(t *testing.T) {
	c := FromTokens([]string{"b", "a", "b", "c", "a", "b"})

	if got, want := c.Keys(), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if c.Get("b") != 3 || c.Get("a") != 2 || c.Get("c") != 1 {
		t.Fatalf("unexpected counts: %+v", c.Entries())
	}
	if c.Total() != 6 {
		t.Errorf("Total() = %d, want 6", c.Total())
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestMostCommonStableTies(t *testing.T) {
	c := NewCounter()
	c.Add("a", 5)
	c.Add("b", 5)
	c.Add("c", 1)

	got := c.MostCommon(2)
	want := []Entry{{"a", 5}, {"b", 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MostCommon(2) = %v, want %v", got, want)
	}

	// Reverse insertion flips the tie.
	r := NewCounter()
	r.Add("b", 5)
	r.Add("a", 5)
	if got := r.MostCommon(1); got[0].Token != "b" {
		t.Errorf("expected first-seen 'b' to win tie, got %v", got)
	}
}

func TestMostCommonAllWhenKNonPositive(t *testing.T) {
	c := FromTokens([]string{"x", "y", "y"})
	if got := c.MostCommon(0); len(got) != 2 || got[0].Token != "y" {
		t.Errorf("MostCommon(0) = %v", got)
	}
	if got := c.MostCommon(10); len(got) != 2 {
		t.Errorf("MostCommon(10) should cap at Len, got %v", got)
	}
}

func TestMergeAppendsNewKeys(t *testing.T) {
	a := FromTokens([]string{"cat", "dog"})
	b := FromTokens([]string{"bird", "cat", "cat"})

	a.Merge(b)

	if got, want := a.Keys(), []string{"cat", "dog", "bird"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if a.Get("cat") != 3 {
		t.Errorf("cat = %d, want 3", a.Get("cat"))
	}
	if b.Get("cat") != 2 {
		t.Error("Merge must not modify its argument")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := FromTokens([]string{"one"})
	b := a.Clone()
	b.Add("one", 4)
	if a.Get("one") != 1 {
		t.Errorf("clone shares state with original")
	}
}

func TestNilCounterReads(t *testing.T) {
	var c *Counter
	if c.Len() != 0 || c.Total() != 0 || c.Get("x") != 0 || c.Has("x") {
		t.Error("nil counter should read as empty")
	}
	if len(c.MostCommon(3)) != 0 {
		t.Error("nil counter MostCommon should be empty")
	}
}

func TestHistogram(t *testing.T) {
	h := NewHistogram()
	h.Add(3, 2)
	h.Add(1, 1)
	h.Add(3, 1)

	if got, want := h.Lengths(), []int{1, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Lengths() = %v, want %v", got, want)
	}
	if h.Get(3) != 3 {
		t.Errorf("Get(3) = %d, want 3", h.Get(3))
	}
	if h.Total() != 4 {
		t.Errorf("Total() = %d, want 4", h.Total())
	}
}

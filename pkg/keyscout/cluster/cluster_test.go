package cluster

import (
	"reflect"
	"sort"
	"testing"
)

func TestClusterEmptyBatch(t *testing.T) {
	e := NewEngine(nil)
	got := e.Cluster(nil, 0)
	if got == nil {
		t.Fatal("want empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("want no clusters, got %d", len(got))
	}
}

func TestClusterSingleKeyword(t *testing.T) {
	e := NewEngine(nil)
	got := e.Cluster([]string{"urban gardening"}, 0)

	if len(got) != 1 {
		t.Fatalf("want 1 cluster, got %d", len(got))
	}
	c := got[0]
	if c.Theme != ThemeSingleKeyword {
		t.Errorf("Theme = %q, want %q", c.Theme, ThemeSingleKeyword)
	}
	if c.Size != 1 || len(c.Members) != 1 || c.Members[0] != "urban gardening" {
		t.Errorf("cluster = %+v", c)
	}
}

func TestClusterStopWordOnlyBatchFallsBack(t *testing.T) {
	e := NewEngine(nil)
	keywords := []string{"the and", "of or"}
	got := e.Cluster(keywords, 0)

	if len(got) != 1 {
		t.Fatalf("want 1 fallback cluster, got %d", len(got))
	}
	if got[0].Theme != ThemeUnclustered {
		t.Errorf("Theme = %q, want %q", got[0].Theme, ThemeUnclustered)
	}
	if !reflect.DeepEqual(got[0].Members, keywords) {
		t.Errorf("Members = %v, want %v", got[0].Members, keywords)
	}
}

func TestClusterPartitionsTheBatch(t *testing.T) {
	e := NewEngine(nil)
	keywords := []string{
		"vegan recipes easy",
		"easy vegan dinners",
		"vegan meal prep",
		"crochet patterns free",
		"crochet blanket patterns",
		"beginner crochet stitches",
		"stock market investing",
		"investing for beginners",
		"index fund investing",
	}

	got := e.Cluster(keywords, 0)

	// Nine keywords select at most three clusters.
	if len(got) == 0 || len(got) > 3 {
		t.Fatalf("want 1..3 clusters, got %d", len(got))
	}

	var all []string
	total := 0
	for _, c := range got {
		if c.Size != len(c.Members) {
			t.Errorf("cluster %d: Size %d != len(Members) %d", c.ID, c.Size, len(c.Members))
		}
		total += c.Size
		all = append(all, c.Members...)
	}
	if total != len(keywords) {
		t.Errorf("cluster sizes sum to %d, want %d", total, len(keywords))
	}

	sort.Strings(all)
	want := append([]string(nil), keywords...)
	sort.Strings(want)
	if !reflect.DeepEqual(all, want) {
		t.Errorf("clusters do not partition the batch:\n got %v\nwant %v", all, want)
	}

	for i := 1; i < len(got); i++ {
		if got[i].Size > got[i-1].Size {
			t.Errorf("clusters not sorted by size: %d before %d", got[i-1].Size, got[i].Size)
		}
	}
}

func TestClusterDeterministic(t *testing.T) {
	e := NewEngine(nil)
	keywords := []string{
		"watercolor techniques",
		"watercolor for beginners",
		"acrylic painting ideas",
		"acrylic pouring",
		"oil painting basics",
		"oil paint brushes",
	}

	first := e.Cluster(keywords, 0)
	for i := 0; i < 5; i++ {
		if got := e.Cluster(keywords, 0); !reflect.DeepEqual(got, first) {
			t.Fatalf("clustering diverged on run %d:\n got %+v\nwant %+v", i, got, first)
		}
	}
}

func TestClusterThemeFromDominantTerms(t *testing.T) {
	e := NewEngine(nil)
	got := e.Cluster([]string{"dog training", "dog care", "dog food"}, 1)

	if len(got) != 1 {
		t.Fatalf("want 1 cluster, got %d", len(got))
	}
	// "dog" carries the highest centroid weight; the remaining slots
	// fill from equal-weight terms in first-seen order.
	if got[0].Theme != "dog + training + care" {
		t.Errorf("Theme = %q, want %q", got[0].Theme, "dog + training + care")
	}
}

func TestClusterClampsKToBatchSize(t *testing.T) {
	e := NewEngine(nil)
	keywords := []string{"mystery thriller", "romance novels", "fantasy epics"}
	got := e.Cluster(keywords, 10)

	total := 0
	for _, c := range got {
		total += c.Size
	}
	if total != len(keywords) {
		t.Errorf("sizes sum to %d, want %d", total, len(keywords))
	}
	if len(got) > len(keywords) {
		t.Errorf("got %d clusters for %d keywords", len(got), len(keywords))
	}
}

func TestVectorizeEmptyVocabulary(t *testing.T) {
	e := NewEngine(nil)
	_, _, err := e.vec.vectorize([]string{"the", "and"})
	if err != ErrEmptyVocabulary {
		t.Fatalf("err = %v, want ErrEmptyVocabulary", err)
	}
}

func TestVectorizeRowsAreUnitLength(t *testing.T) {
	e := NewEngine(nil)
	data, vocab, err := e.vec.vectorize([]string{"science fiction books", "fiction writing"})
	if err != nil {
		t.Fatalf("vectorize: %v", err)
	}

	n, d := data.Dims()
	if n != 2 {
		t.Fatalf("rows = %d, want 2", n)
	}
	if d != len(vocab.Terms) {
		t.Fatalf("cols = %d, want %d", d, len(vocab.Terms))
	}
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < d; j++ {
			v := data.At(i, j)
			sum += v * v
		}
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("row %d squared norm = %v, want 1", i, sum)
		}
	}
}

func TestVocabularyKeepsFirstSeenOrder(t *testing.T) {
	e := NewEngine(nil)
	_, vocab, err := e.vec.vectorize([]string{"zebra apple", "apple mango"})
	if err != nil {
		t.Fatalf("vectorize: %v", err)
	}
	want := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(vocab.Terms, want) {
		t.Errorf("Terms = %v, want %v", vocab.Terms, want)
	}
}

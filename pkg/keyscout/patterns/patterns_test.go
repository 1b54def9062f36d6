package patterns

import (
	"reflect"
	"testing"
)

func TestAnalyzeEmptyBatch(t *testing.T) {
	a := NewAnalyzer()
	got := a.Analyze(nil)

	if got.AverageLength != 0 {
		t.Errorf("AverageLength = %v, want 0", got.AverageLength)
	}
	if got.LongTailPercent != 0 {
		t.Errorf("LongTailPercent = %v, want 0", got.LongTailPercent)
	}
	if len(got.WordCountDistribution) != 0 {
		t.Errorf("WordCountDistribution = %v, want empty", got.WordCountDistribution)
	}
	if got.QuestionKeywords == nil || got.ActionKeywords == nil || got.CommonWords == nil {
		t.Error("empty batch must yield empty slices, not nil")
	}
}

func TestAnalyzeBasicStats(t *testing.T) {
	a := NewAnalyzer()
	keywords := []string{
		"sourdough",
		"sourdough starter guide",
		"how to bake sourdough bread",
		"buy bread proofing basket",
	}
	got := a.Analyze(keywords)

	// Word counts: 1, 3, 5, 4 over 4 keywords.
	if got.AverageLength != 3.25 {
		t.Errorf("AverageLength = %v, want 3.25", got.AverageLength)
	}
	// Three of four keywords have three or more words.
	if got.LongTailPercent != 75.0 {
		t.Errorf("LongTailPercent = %v, want 75.0", got.LongTailPercent)
	}
	wantDist := map[int]int{1: 1, 3: 1, 4: 1, 5: 1}
	if !reflect.DeepEqual(got.WordCountDistribution, wantDist) {
		t.Errorf("WordCountDistribution = %v, want %v", got.WordCountDistribution, wantDist)
	}
}

func TestAnalyzeQuestionKeywordsMatchFirstWordOnly(t *testing.T) {
	a := NewAnalyzer()
	got := a.Analyze([]string{
		"how to knit socks",
		"knitting and how it works", // "how" not first
		"What is blocking",          // case-insensitive
	})

	want := []string{"how to knit socks", "What is blocking"}
	if !reflect.DeepEqual(got.QuestionKeywords, want) {
		t.Errorf("QuestionKeywords = %v, want %v", got.QuestionKeywords, want)
	}
}

func TestAnalyzeActionKeywordsMatchAnywhere(t *testing.T) {
	a := NewAnalyzer()
	got := a.Analyze([]string{
		"learn watercolor painting",
		"watercolor supplies to buy",
		"watercolor history",
	})

	want := []string{"learn watercolor painting", "watercolor supplies to buy"}
	if !reflect.DeepEqual(got.ActionKeywords, want) {
		t.Errorf("ActionKeywords = %v, want %v", got.ActionKeywords, want)
	}
}

func TestAnalyzeCommonWords(t *testing.T) {
	a := NewAnalyzer()
	got := a.Analyze([]string{
		"vegan recipes",
		"vegan desserts",
		"vegan meal prep",
		"keto recipes",
	})

	if len(got.CommonWords) == 0 {
		t.Fatal("CommonWords is empty")
	}
	if got.CommonWords[0].Term != "vegan" || got.CommonWords[0].Count != 3 {
		t.Errorf("top term = %+v, want vegan x3", got.CommonWords[0])
	}
	if got.CommonWords[1].Term != "recipes" || got.CommonWords[1].Count != 2 {
		t.Errorf("second term = %+v, want recipes x2", got.CommonWords[1])
	}
}

func TestAnalyzeCommonWordsSkipShortWords(t *testing.T) {
	a := NewAnalyzer()
	got := a.Analyze([]string{
		"the art of war",
		"the war on ae",
	})

	counts := make(map[string]int)
	for _, tc := range got.CommonWords {
		counts[tc.Term] = tc.Count
	}
	if counts["of"] != 0 || counts["on"] != 0 || counts["ae"] != 0 {
		t.Errorf("two-letter words leaked into CommonWords: %v", got.CommonWords)
	}
	// Only length filters words out; frequent filler words still count.
	if counts["the"] != 2 || counts["war"] != 2 || counts["art"] != 1 {
		t.Errorf("CommonWords = %v", got.CommonWords)
	}
}

func TestAnalyzeCountsAreOrderIndependent(t *testing.T) {
	a := NewAnalyzer()
	forward := []string{"dog training basics", "puppy training", "dog nutrition"}
	backward := []string{"dog nutrition", "puppy training", "dog training basics"}

	f := a.Analyze(forward)
	b := a.Analyze(backward)

	if f.AverageLength != b.AverageLength || f.LongTailPercent != b.LongTailPercent {
		t.Errorf("aggregates differ across orderings: %+v vs %+v", f, b)
	}
	if !reflect.DeepEqual(f.WordCountDistribution, b.WordCountDistribution) {
		t.Errorf("distributions differ: %v vs %v", f.WordCountDistribution, b.WordCountDistribution)
	}

	fCounts := make(map[string]int)
	for _, tc := range f.CommonWords {
		fCounts[tc.Term] = tc.Count
	}
	bCounts := make(map[string]int)
	for _, tc := range b.CommonWords {
		bCounts[tc.Term] = tc.Count
	}
	if !reflect.DeepEqual(fCounts, bCounts) {
		t.Errorf("common-word counts differ: %v vs %v", fCounts, bCounts)
	}
}

func TestAnalyzeCustomIntentTables(t *testing.T) {
	a := NewAnalyzer(
		WithQuestionWords([]string{"is"}),
		WithActionWords([]string{"download"}),
	)
	got := a.Analyze([]string{
		"is self publishing worth it",
		"download budget planner",
		"how to publish",
	})

	if len(got.QuestionKeywords) != 1 || got.QuestionKeywords[0] != "is self publishing worth it" {
		t.Errorf("QuestionKeywords = %v", got.QuestionKeywords)
	}
	if len(got.ActionKeywords) != 1 || got.ActionKeywords[0] != "download budget planner" {
		t.Errorf("ActionKeywords = %v", got.ActionKeywords)
	}
}

// Package expand generates long-tail keyword variations and analyzes
// search intent. All generators are pure functions over fixed template
// tables; upstream NLP expansion (synonyms, autocomplete) lives in the
// signal-gathering collaborators.
package expand

import (
	"strings"
)

var (
	bookPrefixes = []string{"how to", "best", "complete guide to", "beginner", "advanced", "ultimate"}
	bookSuffixes = []string{"book", "guide", "handbook", "manual", "course", "tutorial", "for beginners", "step by step"}

	questionStarters = []string{"how to", "what is", "why is", "when to", "where to"}

	commercialWords = []string{"buy", "purchase", "price", "cost", "cheap", "discount", "deal", "sale", "order"}
	urgentWords     = []string{"now", "today", "immediately", "urgent", "quick", "fast"}
	soonWords       = []string{"soon", "this week", "asap"}
	questionWords   = []string{"how", "what", "why", "when", "where", "who", "which"}
)

const (
	maxLongTailVariations = 15
	maxPhraseVariations   = 25
	combinedTemplateCap   = 3
)

// LongTailVariations builds publisher-oriented long-tail phrases from
// a base keyword: prefix forms, suffix forms and a few combined forms.
func LongTailVariations(keyword string) []string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(phrase string) {
		if _, ok := seen[phrase]; ok {
			return
		}
		seen[phrase] = struct{}{}
		out = append(out, phrase)
	}

	for _, prefix := range bookPrefixes {
		add(prefix + " " + keyword)
	}
	for _, suffix := range bookSuffixes {
		add(keyword + " " + suffix)
	}
	for _, prefix := range bookPrefixes[:combinedTemplateCap] {
		for _, suffix := range bookSuffixes[:combinedTemplateCap] {
			add(prefix + " " + keyword + " " + suffix)
		}
	}

	if len(out) > maxLongTailVariations {
		out = out[:maxLongTailVariations]
	}
	return out
}

// PhraseVariations builds reorderings and question forms of a keyword
// phrase, always including the original.
func PhraseVariations(keyword string) []string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(phrase string) {
		if _, ok := seen[phrase]; ok {
			return
		}
		seen[phrase] = struct{}{}
		out = append(out, phrase)
	}

	add(keyword)

	words := strings.Fields(keyword)
	if len(words) > 1 {
		reversed := make([]string, len(words))
		for i, w := range words {
			reversed[len(words)-1-i] = w
		}
		add(strings.Join(reversed, " "))

		if len(words) >= 3 {
			add(words[len(words)-1] + " " + strings.Join(words[:len(words)-1], " "))
			add(words[1] + " " + words[0] + " " + strings.Join(words[2:], " "))
		}
	}

	lower := strings.ToLower(keyword)
	for _, starter := range questionStarters {
		if !strings.HasPrefix(lower, starter) {
			add(starter + " " + keyword)
		}
	}

	if len(out) > maxPhraseVariations {
		out = out[:maxPhraseVariations]
	}
	return out
}

// IntentType describes the dominant intent behind a keyword.
type IntentType string

const (
	IntentInformational IntentType = "informational"
	IntentCommercial    IntentType = "commercial"
)

// Urgency is the urgency tier read from the keyword wording.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Intent summarizes the intent analysis of a single keyword.
type Intent struct {
	Type              IntentType
	CommercialSignals int
	Urgency           Urgency
	Specificity       string
	QuestionBased     bool
}

// AnalyzeIntent inspects a keyword for commercial, question and
// urgency cues plus a specificity tier based on phrase length.
func AnalyzeIntent(keyword string) Intent {
	intent := Intent{
		Type:        IntentInformational,
		Urgency:     UrgencyLow,
		Specificity: "general",
	}

	lower := strings.ToLower(keyword)

	for _, w := range commercialWords {
		if strings.Contains(lower, w) {
			intent.CommercialSignals++
		}
	}
	if intent.CommercialSignals > 0 {
		intent.Type = IntentCommercial
	}

	for _, w := range questionWords {
		if strings.HasPrefix(lower, w) {
			intent.QuestionBased = true
			intent.Type = IntentInformational
			break
		}
	}

	for _, w := range urgentWords {
		if strings.Contains(lower, w) {
			intent.Urgency = UrgencyHigh
			break
		}
	}
	if intent.Urgency == UrgencyLow {
		for _, w := range soonWords {
			if strings.Contains(lower, w) {
				intent.Urgency = UrgencyMedium
				break
			}
		}
	}

	switch wc := len(strings.Fields(keyword)); {
	case wc >= 4:
		intent.Specificity = "highly specific"
	case wc == 3:
		intent.Specificity = "specific"
	case wc == 2:
		intent.Specificity = "moderate"
	}

	return intent
}

package match

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// Signal names as they appear in traces and the similarity debug endpoint.
const (
	SignalKeywordInQuestion = "keyword_in_question"
	SignalQuestionFuzzy     = "question_fuzzy"
	SignalKeywordExact      = "keyword_exact"
	SignalKeywordFuzzy      = "keyword_fuzzy"
	SignalKeywordPartial    = "keyword_partial"
	SignalWordOverlap       = "word_overlap"
	SignalCharOverlap       = "char_overlap"
)

// Weights is the contribution table for the similarity signals. The final
// score for a candidate is the MAXIMUM over all fired signals, not the sum:
// one strong reason to believe an entry matches beats several weak
// coincidences. A candidate with no fired signal stays at -Inf and is
// unrankable.
type Weights struct {
	// KeywordInQuestion fires when an extracted query keyword is a
	// substring of the entry question.
	KeywordInQuestion float64
	// QuestionFuzzyBonus is added to the fuzzy scorer's own score when the
	// cleaned query aligns with the entry question.
	QuestionFuzzyBonus float64
	// KeywordExact fires when a query keyword and an entry keyword contain
	// each other in either direction.
	KeywordExact float64
	// KeywordFuzzyBonus is added to the fuzzy scorer's own score when the
	// cleaned query aligns with an entry keyword and that score clears
	// KeywordFuzzyFloor.
	KeywordFuzzyBonus float64
	KeywordFuzzyFloor float64
	// KeywordPartial fires when a query keyword longer than two runes is a
	// substring of an entry keyword.
	KeywordPartial float64
	// WordOverlap fires when a query keyword and a question word, both
	// longer than two runes, contain each other.
	WordOverlap float64
	// CharOverlap fires when a query keyword and a candidate word differ in
	// length by at most two runes and agree on at least 60% of the
	// positions of the shorter word.
	CharOverlap float64
}

// DefaultWeights is tuned for the sahilm/fuzzy scorer, whose scores are
// small integers around zero. The fuzzy bonuses keep fuzzy hits between
// the CharOverlap floor and the exact-substring signals, and the floor of
// -12 sits just below the scorer's worst leading-gap penalty. Swapping in a
// different fuzzy implementation means re-tuning these numbers.
var DefaultWeights = Weights{
	KeywordInQuestion:  1000,
	QuestionFuzzyBonus: 500,
	KeywordExact:       800,
	KeywordFuzzyBonus:  300,
	KeywordFuzzyFloor:  -12,
	KeywordPartial:     600,
	WordOverlap:        400,
	CharOverlap:        300,
}

const charOverlapMaxLenDiff = 2
const charOverlapMinRatio = 0.6

// Scorer evaluates one candidate entry against one query. It is stateless
// and safe for concurrent use.
type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score computes the similarity of a query against a single entry. The
// returned score is the maximum over all fired signals, or -Inf when
// nothing fired; the hits list is the full diagnostic trace.
func (s *Scorer) Score(q Query, e Entry) (float64, []SignalHit) {
	best := math.Inf(-1)
	var hits []SignalHit
	record := func(signal string, score float64, detail string) {
		hits = append(hits, SignalHit{Signal: signal, Score: score, Detail: detail})
		if score > best {
			best = score
		}
	}

	question := strings.ToLower(strings.TrimSpace(e.Question))
	questionWords := splitLetterWords(question)

	keywords := make([]string, 0, len(e.Keywords))
	for _, k := range e.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords = append(keywords, k)
		}
	}

	if question != "" {
		for _, kw := range q.Keywords {
			if strings.Contains(question, kw) {
				record(SignalKeywordInQuestion, s.weights.KeywordInQuestion, kw)
				break
			}
		}
		if fs, ok := fuzzyScore(q.Cleaned, question); ok {
			record(SignalQuestionFuzzy, fs+s.weights.QuestionFuzzyBonus, question)
		}
	}

	for _, ek := range keywords {
		for _, kw := range q.Keywords {
			if strings.Contains(ek, kw) || strings.Contains(kw, ek) {
				record(SignalKeywordExact, s.weights.KeywordExact, kw+"~"+ek)
			}
			if utf8.RuneCountInString(kw) > 2 && strings.Contains(ek, kw) {
				record(SignalKeywordPartial, s.weights.KeywordPartial, kw+"~"+ek)
			}
		}
		if fs, ok := fuzzyScore(q.Cleaned, ek); ok && fs > s.weights.KeywordFuzzyFloor {
			record(SignalKeywordFuzzy, fs+s.weights.KeywordFuzzyBonus, ek)
		}
	}

	for _, kw := range q.Keywords {
		for _, qw := range questionWords {
			if utf8.RuneCountInString(kw) > 2 && utf8.RuneCountInString(qw) > 2 &&
				(strings.Contains(kw, qw) || strings.Contains(qw, kw)) {
				record(SignalWordOverlap, s.weights.WordOverlap, kw+"~"+qw)
			}
			if charOverlap(kw, qw) {
				record(SignalCharOverlap, s.weights.CharOverlap, kw+"~"+qw)
			}
		}
		for _, ek := range keywords {
			if charOverlap(kw, ek) {
				record(SignalCharOverlap, s.weights.CharOverlap, kw+"~"+ek)
			}
		}
	}

	return best, hits
}

// fuzzyScore runs the external fuzzy matcher on one (pattern, target) pair.
// The second return is false when the matcher found no plausible alignment.
func fuzzyScore(pattern, target string) (float64, bool) {
	if pattern == "" || target == "" {
		return 0, false
	}
	matches := fuzzy.Find(pattern, []string{target})
	if len(matches) == 0 {
		return 0, false
	}
	return float64(matches[0].Score), true
}

// charOverlap reports whether two words are near-identical by position:
// length difference of at most two runes and at least 60% same-position
// characters over the shorter word.
func charOverlap(a, b string) bool {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return false
	}
	diff := len(ra) - len(rb)
	if diff < 0 {
		diff = -diff
	}
	if diff > charOverlapMaxLenDiff {
		return false
	}
	short := len(ra)
	if len(rb) < short {
		short = len(rb)
	}
	same := 0
	for i := 0; i < short; i++ {
		if ra[i] == rb[i] {
			same++
		}
	}
	return float64(same)/float64(short) >= charOverlapMinRatio
}

// splitLetterWords breaks a lower-cased question into its letter-only
// words, without stopword filtering: question text is trusted content.
func splitLetterWords(text string) []string {
	var out []string
	for _, f := range strings.Fields(text) {
		if w := stripNonLetters(f); w != "" {
			out = append(out, w)
		}
	}
	return out
}

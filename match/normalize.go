package match

import (
	"sort"
	"strings"
)

// Thai filler and politeness tokens that carry no search signal. The fused
// greeting+particle forms are listed explicitly because Thai is written
// without spaces, so "สวัสดีครับ" arrives as a single token.
var stopwords = map[string]bool{
	"ครับ": true, "ครับผม": true, "ค่ะ": true, "คะ": true, "ค่า": true,
	"จ้า": true, "จ๊ะ": true, "จ้ะ": true,
	"นะ": true, "นะครับ": true, "นะคะ": true, "น้า": true,
	"สวัสดี": true, "สวัสดีครับ": true, "สวัสดีค่ะ": true, "สวัสดีคะ": true,
	"หวัดดี": true, "หวัดดีครับ": true, "หวัดดีค่ะ": true,
	"ขอบคุณ": true, "ขอบคุณครับ": true, "ขอบคุณค่ะ": true,
	"หรอ": true, "เหรอ": true, "หรือเปล่า": true, "รึเปล่า": true,
	"ไหม": true, "มั้ย": true, "มั๊ย": true, "ป่าว": true,
	"อะ": true, "อ่ะ": true, "อ่า": true, "เอ่อ": true, "อือ": true,
	"คือ": true, "แบบ": true, "ช่วย": true, "หน่อย": true, "ด้วย": true,
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"please": true, "hello": true, "hi": true,
}

// allAliases is every persona alias, longest first so that removing an
// alias never leaves a shorter alias's remnant behind (น่านน้ำ before น่าน).
var allAliases = func() []string {
	out := append(append([]string{}, fernAliases...), nannamAliases...)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// Clean lower-cases the text, strips every persona alias occurrence and
// collapses whitespace. The result may be empty; callers fall back to the
// raw text in that case (see NewQuery).
func Clean(raw string) string {
	lower := strings.ToLower(raw)
	for _, alias := range allAliases {
		lower = strings.ReplaceAll(lower, alias, " ")
	}
	return strings.Join(strings.Fields(lower), " ")
}

// ExtractKeywords splits the text on whitespace and keeps the content
// tokens: each token is reduced to its Thai and Latin letters, lower-cased,
// and dropped if it becomes empty or is a stopword. Order and duplicates
// are preserved.
func ExtractKeywords(text string) []string {
	var out []string
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = stripNonLetters(tok)
		if tok == "" || stopwords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// stripNonLetters keeps Thai letters, vowels and tone marks plus ASCII
// letters, discarding digits, punctuation and everything else.
func stripNonLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 0x0E01 && r <= 0x0E4E && r != 0x0E3F:
			b.WriteRune(r)
		}
	}
	return b.String()
}

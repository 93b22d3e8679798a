package match

import "strings"

// Alias lists for the two personas. Matching is case-insensitive substring
// search, so Thai spellings need no folding and the Latin forms cover
// romanized mentions.
var (
	fernAliases   = []string{"เฟิร์น", "เฟิน", "fern"}
	nannamAliases = []string{"น่านน้ำ", "นานน้ำ", "น่าน", "nannam", "nan nam"}
)

// DetectPersona classifies a raw message as asking about Fern, Nannam, or
// both. A single persona wins only when exactly one side's aliases appear;
// mentioning both (or neither) yields PersonaBoth.
func DetectPersona(raw string) Persona {
	lower := strings.ToLower(raw)
	fern := containsAny(lower, fernAliases)
	nannam := containsAny(lower, nannamAliases)
	switch {
	case fern && !nannam:
		return PersonaFern
	case nannam && !fern:
		return PersonaNannam
	default:
		return PersonaBoth
	}
}

func containsAny(lower string, aliases []string) bool {
	for _, a := range aliases {
		if strings.Contains(lower, a) {
			return true
		}
	}
	return false
}

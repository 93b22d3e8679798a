package store

import (
	"strings"

	"fernbot/match"
)

// Document field names in the content collection.
const (
	fieldQuestion     = "question"
	fieldKeywords     = "keywords"
	fieldFernAnswer   = "fern_answer"
	fieldNannamAnswer = "nannam_answer"
)

// decodeEntry converts a raw document into an Entry. Decoding is tolerant:
// a missing field is a legal state and a field of the wrong type is ignored
// rather than failing the whole fetch, so one malformed document can never
// abort a ranking pass.
func decodeEntry(id string, data map[string]interface{}) match.Entry {
	e := match.Entry{ID: id}

	e.Question = stringField(data, fieldQuestion)
	e.FernAnswer = stringField(data, fieldFernAnswer)
	e.NannamAnswer = stringField(data, fieldNannamAnswer)

	if raw, ok := data[fieldKeywords].([]interface{}); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					e.Keywords = append(e.Keywords, s)
				}
			}
		}
	}

	return e
}

func stringField(data map[string]interface{}, key string) string {
	if s, ok := data[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

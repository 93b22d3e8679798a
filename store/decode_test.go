package store

import (
	"reflect"
	"testing"

	"fernbot/match"
)

func TestDecodeEntry(t *testing.T) {
	tests := []struct {
		name string
		id   string
		data map[string]interface{}
		want match.Entry
	}{
		{
			name: "full_document",
			id:   "drinks",
			data: map[string]interface{}{
				"question":      "ชอบดื่มอะไร",
				"keywords":      []interface{}{"เครื่องดื่ม", "ดื่ม"},
				"fern_answer":   "ชาเย็น",
				"nannam_answer": "กาแฟ",
			},
			want: match.Entry{
				ID:           "drinks",
				Question:     "ชอบดื่มอะไร",
				Keywords:     []string{"เครื่องดื่ม", "ดื่ม"},
				FernAnswer:   "ชาเย็น",
				NannamAnswer: "กาแฟ",
			},
		},
		{
			name: "missing_fields_stay_zero",
			id:   "sparse",
			data: map[string]interface{}{
				"question": "ชอบสีอะไร",
			},
			want: match.Entry{ID: "sparse", Question: "ชอบสีอะไร"},
		},
		{
			name: "wrong_types_are_ignored",
			id:   "broken",
			data: map[string]interface{}{
				"question":    42,
				"keywords":    "not a list",
				"fern_answer": true,
			},
			want: match.Entry{ID: "broken"},
		},
		{
			name: "keyword_list_drops_non_strings_and_blanks",
			id:   "mixed",
			data: map[string]interface{}{
				"keywords": []interface{}{"ดื่ม", 7, "", "   ", nil, "อาหาร"},
			},
			want: match.Entry{ID: "mixed", Keywords: []string{"ดื่ม", "อาหาร"}},
		},
		{
			name: "values_are_trimmed",
			id:   "padded",
			data: map[string]interface{}{
				"question":    "  ชอบดื่มอะไร  ",
				"fern_answer": " ชาเย็น ",
			},
			want: match.Entry{ID: "padded", Question: "ชอบดื่มอะไร", FernAnswer: "ชาเย็น"},
		},
		{
			name: "empty_document",
			id:   "blank",
			data: map[string]interface{}{},
			want: match.Entry{ID: "blank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeEntry(tt.id, tt.data); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeEntry(%q) = %+v, want %+v", tt.id, got, tt.want)
			}
		})
	}
}

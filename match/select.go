package match

import (
	"fmt"
	"strings"
)

// User-facing reply fragments, in the bot's register. The selector never
// returns an empty string: an entry with no stored answers gets the
// "nobody answered yet" text.
const (
	fernLabel   = "เฟิร์น"
	nannamLabel = "น่านน้ำ"

	noAnswerText = "ขออภัยครับ เจอคำถามนี้ในระบบ แต่ยังไม่มีใครตอบไว้เลยครับ 😅"
)

// SelectAnswer picks the reply text for a matched entry given the detected
// persona. Asking about one persona returns that persona's answer, falling
// back to the other's (clearly attributed) when absent. PersonaBoth returns
// both answers separated by a blank line, or whichever one exists.
func SelectAnswer(e Entry, p Persona) string {
	fern := strings.TrimSpace(e.FernAnswer)
	nannam := strings.TrimSpace(e.NannamAnswer)

	switch p {
	case PersonaFern:
		return selectSingle(fern, nannam, fernLabel, nannamLabel)
	case PersonaNannam:
		return selectSingle(nannam, fern, nannamLabel, fernLabel)
	default:
		switch {
		case fern != "" && nannam != "":
			return fmt.Sprintf("%s: %s\n\n%s: %s", fernLabel, fern, nannamLabel, nannam)
		case fern != "":
			return fmt.Sprintf("%s: %s", fernLabel, fern)
		case nannam != "":
			return fmt.Sprintf("%s: %s", nannamLabel, nannam)
		default:
			return noAnswerText
		}
	}
}

func selectSingle(asked, other, askedLabel, otherLabel string) string {
	if asked != "" {
		return asked
	}
	if other != "" {
		return fmt.Sprintf("ยังไม่มีคำตอบของ%sสำหรับข้อนี้ครับ แต่%sตอบไว้ว่า: %s",
			askedLabel, otherLabel, other)
	}
	return noAnswerText
}

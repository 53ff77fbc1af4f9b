package dialogue

import "strings"

// Speaker is one of the two fixed dialogue voices.
type Speaker string

const (
	SpeakerAlice Speaker = "Alice"
	SpeakerBob   Speaker = "Bob"
)

// Line is a single attributed utterance.
type Line struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Script is an ordered two-speaker conversation. Order is conversational
// order and is preserved exactly through audio assembly.
type Script []Line

// Render formats the script back into "Speaker: text" lines, the same shape
// ParseScript accepts. Parsing a rendered script yields the script unchanged.
func (s Script) Render() string {
	var b strings.Builder
	for i, line := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(line.Speaker))
		b.WriteString(": ")
		b.WriteString(line.Text)
	}
	return b.String()
}

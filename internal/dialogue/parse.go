package dialogue

import "strings"

// Discard records a generator line that did not survive the allow-list filter.
type Discard struct {
	Line   string
	Reason string
}

const (
	reasonNoSpeakerPrefix = "no recognized speaker prefix"
	reasonEmptyUtterance  = "empty utterance"
)

// ParseScript filters raw generator output into a Script. The filter is a
// strict allow-list: a line is kept only if, after trimming, it starts with
// "Alice:" or "Bob:" and has non-empty text after the label. Everything else
// comes back as a tagged Discard; malformed lines are never repaired.
func ParseScript(raw string) (Script, []Discard) {
	var script Script
	var discards []Discard

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		speaker, ok := matchSpeaker(line)
		if !ok {
			discards = append(discards, Discard{Line: line, Reason: reasonNoSpeakerPrefix})
			continue
		}

		text := strings.TrimSpace(line[len(speaker)+1:])
		if text == "" {
			discards = append(discards, Discard{Line: line, Reason: reasonEmptyUtterance})
			continue
		}

		script = append(script, Line{Speaker: speaker, Text: text})
	}

	return script, discards
}

func matchSpeaker(line string) (Speaker, bool) {
	for _, s := range []Speaker{SpeakerAlice, SpeakerBob} {
		if strings.HasPrefix(line, string(s)+":") {
			return s, true
		}
	}
	return "", false
}

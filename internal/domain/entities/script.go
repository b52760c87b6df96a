package entities

import "strings"

// ScriptPayload holds the narration sections returned by the script
// generator. Content carries the raw model output when the response could
// not be parsed into sections.
type ScriptPayload struct {
	Intro     string `json:"intro,omitempty"`
	Overview  string `json:"overview,omitempty"`
	Treatment string `json:"treatment,omitempty"`
	Reminders string `json:"reminders,omitempty"`
	Content   string `json:"content,omitempty"`
}

// Narration returns the sections joined into a single narration text,
// falling back to the raw content when no sections were parsed.
func (s *ScriptPayload) Narration() string {
	sections := []string{s.Intro, s.Overview, s.Treatment, s.Reminders}
	parts := make([]string, 0, len(sections))
	for _, section := range sections {
		if section = strings.TrimSpace(section); section != "" {
			parts = append(parts, section)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(s.Content)
	}
	return strings.Join(parts, "\n\n")
}

package generate

import (
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// rule maps prompt keywords to a canned note. First matching rule wins.
type rule struct {
	name     string
	keywords []string
	note     Note
}

var defaultRules = []rule{
	{
		name:     "headache",
		keywords: []string{"headache", "head"},
		note:     headacheNote,
	},
	{
		name:     "respiratory",
		keywords: []string{"cough", "cold", "fever"},
		note:     respiratoryNote,
	},
}

// KeywordBackend selects a canned note by scanning the prompt for domain
// keywords, case-insensitively. Prompts matching no rule fall back to the
// default note.
type KeywordBackend struct {
	log      *slog.Logger
	rules    []rule
	fallback Note
}

// NewKeywordBackend returns a Backend driven by the default rule table.
func NewKeywordBackend(logger *slog.Logger) *KeywordBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeywordBackend{
		log:      logger.With("component", "generate.Keyword"),
		rules:    defaultRules,
		fallback: headacheNote,
	}
}

// Generate implements the Backend interface.
func (b *KeywordBackend) Generate(prompt string) (Note, error) {
	normalised := normalisePrompt(prompt)

	for _, r := range b.rules {
		for _, kw := range r.keywords {
			if strings.Contains(normalised, kw) {
				b.log.Debug("rule matched",
					"rule", r.name,
					"keyword", kw,
					"prompt_len", len(prompt),
				)
				return r.note, nil
			}
		}
	}

	b.log.Debug("no rule matched, using fallback", "prompt_len", len(prompt))
	return b.fallback, nil
}

// normalisePrompt applies NFKC normalisation and lowercasing so composed or
// full-width dictation text still matches the keyword table.
func normalisePrompt(prompt string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(prompt)))
}

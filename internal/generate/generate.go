// Package generate produces structured clinical notes from dictation
// prompts. The keyword backend stands in for a real generative model and
// hides behind the Backend contract, so a real implementation can be
// substituted without changing callers.
package generate

import "encoding/json"

// SOAPNote holds the subjective/objective/assessment/plan sections of a
// clinical note.
type SOAPNote struct {
	Subjective []string `json:"subjective"`
	Objective  []string `json:"objective"`
	Assessment []string `json:"assessment"`
	Plan       []string `json:"plan"`
	Confidence float64  `json:"confidence"`
}

// Medication is a single prescription entry.
type Medication struct {
	Name         string  `json:"name"`
	Dosage       string  `json:"dosage"`
	Frequency    string  `json:"frequency"`
	Duration     string  `json:"duration"`
	Instructions string  `json:"instructions"`
	Confidence   float64 `json:"confidence"`
	IsGeneric    bool    `json:"isGeneric"`
}

// Prescription aggregates medications with overall guidance.
type Prescription struct {
	Medications  []Medication `json:"medications"`
	Instructions []string     `json:"instructions"`
	FollowUp     string       `json:"followUp"`
	Confidence   float64      `json:"confidence"`
}

// Note is the complete generation result.
type Note struct {
	SOAP         SOAPNote     `json:"soap"`
	Prescription Prescription `json:"prescription"`
}

// Encode serialises the note into the boundary's JSON representation.
func (n Note) Encode() (string, error) {
	raw, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Backend produces a note for a prompt. Implementations must be
// deterministic given the same prompt.
type Backend interface {
	Generate(prompt string) (Note, error)
}

package generate

import (
	"encoding/json"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func testBackend() *KeywordBackend {
	return NewKeywordBackend(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHeadachePromptSelectsHeadacheNote(t *testing.T) {
	b := testBackend()
	note, err := b.Generate("Patient presents with a severe headache since Tuesday")
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if !reflect.DeepEqual(note, headacheNote) {
		t.Fatalf("expected headache note, got %+v", note)
	}
	if note.SOAP.Assessment[0] != "Tension headache" {
		t.Fatalf("unexpected assessment: %q", note.SOAP.Assessment[0])
	}
	if med := note.Prescription.Medications[0]; med.Name != "Acetaminophen" || med.Dosage != "500mg" || !med.IsGeneric {
		t.Fatalf("unexpected medication: %+v", med)
	}
}

func TestKeywordMatchingIsCaseInsensitive(t *testing.T) {
	b := testBackend()
	note, err := b.Generate("PATIENT REPORTS HEADACHE")
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if !reflect.DeepEqual(note, headacheNote) {
		t.Fatalf("expected headache note for upper-case prompt")
	}
}

func TestRespiratoryKeywordsSelectRespiratoryNote(t *testing.T) {
	b := testBackend()
	for _, prompt := range []string{
		"patient has a persistent cough",
		"symptoms of common cold",
		"running a fever since morning",
	} {
		note, err := b.Generate(prompt)
		if err != nil {
			t.Fatalf("Generate(%q) returned error: %v", prompt, err)
		}
		if !reflect.DeepEqual(note, respiratoryNote) {
			t.Fatalf("expected respiratory note for %q", prompt)
		}
	}
	if respiratoryNote.SOAP.Assessment[0] != "Upper respiratory tract infection" {
		t.Fatalf("unexpected assessment: %q", respiratoryNote.SOAP.Assessment[0])
	}
	if len(respiratoryNote.Prescription.Medications) != 2 {
		t.Fatalf("expected 2 medications, got %d", len(respiratoryNote.Prescription.Medications))
	}
}

func TestUnmatchedPromptFallsBack(t *testing.T) {
	b := testBackend()
	note, err := b.Generate("patient complains of knee pain after jogging")
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if !reflect.DeepEqual(note, headacheNote) {
		t.Fatalf("expected fallback note, got %+v", note)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	b := testBackend()
	first, err := b.Generate("cough and congestion")
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	second, err := b.Generate("cough and congestion")
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical notes across calls")
	}
}

func TestEncodeProducesBoundaryJSON(t *testing.T) {
	encoded, err := headacheNote.Encode()
	if err != nil {
		t.Fatalf("Encode() returned error: %v", err)
	}
	for _, key := range []string{`"soap"`, `"prescription"`, `"subjective"`, `"followUp"`, `"isGeneric"`} {
		if !strings.Contains(encoded, key) {
			t.Fatalf("encoded note missing %s: %s", key, encoded)
		}
	}

	var decoded Note
	if err := json.Unmarshal([]byte(encoded), &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !reflect.DeepEqual(decoded, headacheNote) {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

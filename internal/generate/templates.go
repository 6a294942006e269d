package generate

// Canned notes keyed by presenting complaint. Field values mirror the
// fixtures the managed-side integration tests assert against.

var headacheNote = Note{
	SOAP: SOAPNote{
		Subjective: []string{
			"Patient complains of headache for 2 days",
			"No fever or nausea",
		},
		Objective: []string{
			"Temperature 98.6°F",
			"Blood pressure 120/80 mmHg",
		},
		Assessment: []string{
			"Tension headache",
			"Mild dehydration",
		},
		Plan: []string{
			"Pain management",
			"Increase fluid intake",
		},
		Confidence: 0.85,
	},
	Prescription: Prescription{
		Medications: []Medication{
			{
				Name:         "Acetaminophen",
				Dosage:       "500mg",
				Frequency:    "twice daily",
				Duration:     "3 days",
				Instructions: "Take with food",
				Confidence:   0.9,
				IsGeneric:    true,
			},
		},
		Instructions: []string{"Rest and adequate hydration"},
		FollowUp:     "Follow up if symptoms persist beyond 3 days",
		Confidence:   0.8,
	},
}

var respiratoryNote = Note{
	SOAP: SOAPNote{
		Subjective: []string{
			"Cough and cold symptoms for 5 days",
			"Sore throat and nasal congestion",
		},
		Objective: []string{
			"Temperature 100.2°F",
			"Throat appears red",
		},
		Assessment: []string{
			"Upper respiratory tract infection",
			"Mild fever",
		},
		Plan: []string{
			"Symptomatic treatment",
			"Rest and fluids",
		},
		Confidence: 0.78,
	},
	Prescription: Prescription{
		Medications: []Medication{
			{
				Name:         "Amoxicillin",
				Dosage:       "500mg",
				Frequency:    "three times daily",
				Duration:     "7 days",
				Instructions: "Complete full course",
				Confidence:   0.85,
				IsGeneric:    true,
			},
			{
				Name:         "Paracetamol",
				Dosage:       "650mg",
				Frequency:    "every 6 hours",
				Duration:     "as needed",
				Instructions: "For fever and pain",
				Confidence:   0.92,
				IsGeneric:    true,
			},
		},
		Instructions: []string{
			"Complete antibiotic course",
			"Maintain adequate hydration",
		},
		FollowUp:   "Return if fever persists beyond 48 hours of treatment",
		Confidence: 0.82,
	},
}

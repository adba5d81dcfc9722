package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmergency(t *testing.T) {
	sf := NewSafetyFilter()

	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"chest pain", "I have severe chest pain", true},
		{"uppercase", "HEART ATTACK help", true},
		{"roman urdu", "meri saans nahi aa rahi", true},
		{"embedded anywhere", "my uncle collapsed at home an hour ago", true},
		{"plain headache", "I have a headache", false},
		{"casual", "what should I eat for a cold?", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sf.IsEmergency(tt.message))
		})
	}
}

func TestHasRestrictedContent(t *testing.T) {
	sf := NewSafetyFilter()

	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{"dosage", "You should take 500 mg in the morning", true},
		{"brand name", "Panadol will help with the fever", true},
		{"frequency", "Use it twice a day after meals", true},
		{"diagnosis confirmation", "Based on this, you have diabetes", true},
		{"injection", "A nurse can inject this at home", true},
		{"general advice", "Rest well, stay hydrated and see a doctor if it persists", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sf.HasRestrictedContent(tt.response))
		})
	}
}

func TestDetectEmotionalState(t *testing.T) {
	sf := NewSafetyFilter()

	assert.Equal(t, StateDistressed, sf.DetectEmotionalState("mujhe jina nahi chahta"))
	assert.Equal(t, StateSad, sf.DetectEmotionalState("I feel hopeless and worthless"))
	assert.Equal(t, StateNormal, sf.DetectEmotionalState("what time does the clinic open?"))
	assert.Equal(t, StateNormal, sf.DetectEmotionalState(""))

	// Severe phrases outrank general distress even when both are present.
	assert.Equal(t, StateDistressed, sf.DetectEmotionalState("I am very sad, zindagi khatam lag rahi hai"))
}

func TestSafetyFilterIdempotent(t *testing.T) {
	sf := NewSafetyFilter()
	msg := "I have severe chest pain"
	for i := 0; i < 5; i++ {
		assert.True(t, sf.IsEmergency(msg))
	}
}

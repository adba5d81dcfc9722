package utils

import "strings"

// Emotional states returned by DetectEmotionalState.
const (
	StateDistressed = "distressed"
	StateSad        = "sad"
	StateNormal     = "normal"
)

// SafetyFilter holds the safety keyword configuration. All methods are pure
// and safe for unrestricted concurrent use.
type SafetyFilter struct {
	emergency  []string
	restricted []string
	distress   []string
	severe     []string
}

func NewSafetyFilter() *SafetyFilter {
	return &SafetyFilter{
		emergency:  EmergencyKeywords,
		restricted: RestrictedOutputWords,
		distress:   EmotionalDistressPhrases,
		severe:     SevereDistressPhrases,
	}
}

// IsEmergency reports whether the message describes a life-threatening
// situation. It must run before any other classification; a positive result
// short-circuits the whole pipeline.
func (sf *SafetyFilter) IsEmergency(message string) bool {
	return containsAnyKeyword(normalize(message), sf.emergency)
}

// HasRestrictedContent reports whether an AI reply contains content the
// assistant must never surface (dosages, brand names, definitive diagnoses,
// injection instructions). It gates AI output only, never user input.
func (sf *SafetyFilter) HasRestrictedContent(response string) bool {
	return containsAnyKeyword(normalize(response), sf.restricted)
}

// DetectEmotionalState classifies the user's emotional state. Severe
// self-harm phrasing takes precedence over general distress.
func (sf *SafetyFilter) DetectEmotionalState(message string) string {
	msg := normalize(message)
	if containsAnyKeyword(msg, sf.severe) {
		return StateDistressed
	}
	if containsAnyKeyword(msg, sf.distress) {
		return StateSad
	}
	return StateNormal
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAnyKeyword(message string, keywords []string) bool {
	if message == "" {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

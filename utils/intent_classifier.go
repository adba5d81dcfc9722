package utils

import (
	"strings"

	"sehatmand-backend/models"
)

// IntentClassifier turns free-text messages into structured intents using
// the ordered keyword tables in keywords.go. Stateless and safe for
// concurrent use.
type IntentClassifier struct {
	chat           []string
	emotions       []KeywordCategory
	requestPhrases []string
	triggerWords   []string
	specialists    []KeywordCategory
	clinical       []KeywordCategory
}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		chat:           ChatKeywords,
		emotions:       EmotionTable,
		requestPhrases: DoctorRequestPhrases,
		triggerWords:   DoctorTriggerWords,
		specialists:    SpecialistTable,
		clinical:       ClinicalSpecialtyTable,
	}
}

// DetectIntent classifies a user-mode message. The rules form an ordered
// decision chain, first satisfied rule wins:
//
//  1. greeting keyword and at most 6 words → general_chat
//  2. explicit doctor-request phrase, or a specialty keyword together with a
//     trigger word ("heart specialist"), → specialist (defaulting to GP when
//     no specialty matched)
//  3. emotion keyword → emotional, carrying any incidental specialty
//  4. otherwise → general, carrying any incidental specialty
//
// Empty or unmatchable input yields a general intent, never an error.
func (ic *IntentClassifier) DetectIntent(message string) models.Intent {
	msg := normalize(message)

	if containsAnyKeyword(msg, ic.chat) && wordCount(msg) <= 6 {
		return models.Intent{Type: models.IntentGeneralChat}
	}

	detectedEmotion := ""
	for _, cat := range ic.emotions {
		if containsAnyKeyword(msg, cat.Keywords) {
			detectedEmotion = cat.Name
			break
		}
	}

	wantsDoctor := containsAnyKeyword(msg, ic.requestPhrases)

	matchedSpec := ""
	for _, cat := range ic.specialists {
		if containsAnyKeyword(msg, cat.Keywords) {
			matchedSpec = cat.Name
			break
		}
	}

	// A specialty mention next to a generic trigger word counts as an
	// implicit request even without an explicit phrase.
	if matchedSpec != "" && containsAnyKeyword(msg, ic.triggerWords) {
		wantsDoctor = true
	}

	if wantsDoctor && matchedSpec != "" {
		return models.Intent{Type: models.IntentSpecialist, Specialization: matchedSpec}
	}
	if wantsDoctor {
		return models.Intent{Type: models.IntentSpecialist, Specialization: DefaultSpecialization}
	}
	if detectedEmotion != "" {
		return models.Intent{Type: models.IntentEmotional, Specialization: matchedSpec, Emotion: detectedEmotion}
	}
	return models.Intent{Type: models.IntentGeneral, Specialization: matchedSpec}
}

// DetectClinicalSpecialty scores a doctor-mode message against the clinical
// table by counting every keyword hit per specialty and keeping the running
// maximum. The comparison is strictly greater-than, so on a tie the specialty
// declared first wins. Returns "" when nothing matched.
//
// This deliberately differs from DetectIntent's first-match strategy:
// clinical mode needs the best-supported specialty, not the first plausible
// one.
func (ic *IntentClassifier) DetectClinicalSpecialty(message string) string {
	msg := normalize(message)

	bestMatch := ""
	bestCount := 0
	for _, cat := range ic.clinical {
		count := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(msg, kw) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			bestMatch = cat.Name
		}
	}
	return bestMatch
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

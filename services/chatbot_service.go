package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sehatmand-backend/config"
	"sehatmand-backend/models"
	"sehatmand-backend/session"
	"sehatmand-backend/utils"
)

// ErrEmptyMessage is the only client error the orchestrator surfaces; every
// upstream failure degrades to a normal response instead.
var ErrEmptyMessage = errors.New("message cannot be empty")

const emergencyReply = "⚠️ EMERGENCY DETECTED!\n\n" +
	"Please go to the nearest hospital immediately or call:\n" +
	"🚑 1122 — Rescue / Ambulance\n" +
	"🏥 115  — Edhi Ambulance\n" +
	"🚨 1020 — Aman Foundation Karachi\n\n" +
	"Do not delay — this could be life threatening!"

const userFallbackReply = "Service is currently unavailable. Please rest, stay hydrated, " +
	"and consult a doctor if you do not feel better."

const doctorFallbackReply = "Clinical AI unavailable. Assess vitals immediately. " +
	"Emergency: Call 1122 Karachi."

const userRestrictedReply = "I'm sorry, I cannot provide this specific medical information. " +
	"Please consult a qualified doctor."

const doctorRestrictedReply = "For clinical assessment please examine the patient directly " +
	"and consult a senior physician."

// ChatbotService orchestrates one chat turn: safety screening, intent
// classification, doctor lookup, AI completion, output gating and session
// bookkeeping.
type ChatbotService struct {
	aiClient  AIClient
	doctors   DoctorDirectory
	store     session.Store
	safety    *utils.SafetyFilter
	intents   *utils.IntentClassifier
	aiTimeout time.Duration
}

func NewChatbotService(aiClient AIClient, doctors DoctorDirectory, store session.Store, cfg *config.Config) *ChatbotService {
	timeout := cfg.AI.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChatbotService{
		aiClient:  aiClient,
		doctors:   doctors,
		store:     store,
		safety:    utils.NewSafetyFilter(),
		intents:   utils.NewIntentClassifier(),
		aiTimeout: timeout,
	}
}

// aiResult carries the reply together with whether it came from a fallback
// path. The degraded flag never leaves this package; at the boundary a
// fallback reply looks like any other success.
type aiResult struct {
	reply    string
	degraded bool
}

// ProcessMessage runs the full pipeline for one inbound message.
//
// Ordering matters: the expiry sweep and the emergency check run before
// anything else; an emergency short-circuits classification, doctor lookup,
// the AI call and the session write.
func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	mode := models.NormalizeMode(strings.ToLower(strings.TrimSpace(req.Mode)))
	sessionID := strings.TrimSpace(req.SessionID)

	s.store.CleanupExpired(time.Now())

	if s.safety.IsEmergency(message) {
		return &models.ChatResponse{
			Reply:      emergencyReply,
			Type:       string(models.IntentEmergency),
			Specialist: nil,
			Doctors:    []models.Doctor{},
			Mode:       string(mode),
		}, nil
	}

	history := s.store.History(sessionID)
	log.Printf("[Session] id=%s history_turns=%d", orNone(sessionID), len(history)/2)

	if state := s.safety.DetectEmotionalState(message); state == utils.StateDistressed {
		log.Printf("[Safety] distressed user detected, session=%s", orNone(sessionID))
	}

	var resp *models.ChatResponse
	if mode == models.ModeDoctor {
		resp = s.handleDoctorMode(ctx, message, history)
	} else {
		resp = s.handleUserMode(ctx, message, history)
	}

	s.store.SaveTurn(sessionID, message, resp.Reply)
	return resp, nil
}

func (s *ChatbotService) handleUserMode(ctx context.Context, message string, history []models.Turn) *models.ChatResponse {
	intent := s.intents.DetectIntent(message)
	log.Printf("[Intent] type=%s spec=%s", intent.Type, orNone(intent.Specialization))

	var specialist *string
	doctors := []models.Doctor{}
	doctorContext := ""

	if intent.Type == models.IntentSpecialist {
		spec := intent.Specialization
		specialist = &spec
		doctors = s.doctors.FindBySpecialization(ctx, spec, DefaultDoctorLimit)
		doctorContext = formatDoctorContext(doctors, spec)
	}

	result := s.askAI(ctx, UserSystemPrompt, message, history, doctorContext, userFallbackReply)
	reply := result.reply
	if !result.degraded && s.safety.HasRestrictedContent(reply) {
		reply = userRestrictedReply
	}

	return &models.ChatResponse{
		Reply:      reply,
		Type:       string(intent.Type),
		Specialist: specialist,
		Doctors:    doctors,
		Mode:       string(models.ModeUser),
	}
}

func (s *ChatbotService) handleDoctorMode(ctx context.Context, message string, history []models.Turn) *models.ChatResponse {
	spec := s.intents.DetectClinicalSpecialty(message)
	log.Printf("[Intent] type=clinical spec=%s", orNone(spec))

	var specialist *string
	doctors := []models.Doctor{}
	doctorContext := ""

	if spec != "" {
		specialist = &spec
		doctors = s.doctors.FindBySpecialization(ctx, spec, DefaultDoctorLimit)
		doctorContext = formatDoctorContext(doctors, spec)
	}

	result := s.askAI(ctx, DoctorSystemPrompt, message, history, doctorContext, doctorFallbackReply)
	reply := result.reply
	if !result.degraded && s.safety.HasRestrictedContent(reply) {
		reply = doctorRestrictedReply
	}

	return &models.ChatResponse{
		Reply:      reply,
		Type:       string(models.IntentClinical),
		Specialist: specialist,
		Doctors:    doctors,
		Mode:       string(models.ModeDoctor),
	}
}

// askAI calls the AI collaborator under a bounded timeout; any failure turns
// into the mode's fixed fallback reply rather than an error.
func (s *ChatbotService) askAI(ctx context.Context, system, message string, history []models.Turn, doctorContext, fallback string) aiResult {
	content := message
	if doctorContext != "" {
		content += "\n\n[Doctor List]\n" + doctorContext +
			"\nInclude this doctor information in your response where relevant."
	}

	turns := make([]models.Turn, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, models.Turn{Role: models.RoleUser, Content: content})

	ctx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	reply, err := s.aiClient.Complete(ctx, system, turns)
	if err != nil {
		log.Printf("[AI] completion failed, using fallback: %v", err)
		return aiResult{reply: fallback, degraded: true}
	}
	return aiResult{reply: reply}
}

// formatDoctorContext renders the doctor list as a numbered block the AI can
// quote from.
func formatDoctorContext(doctors []models.Doctor, specialist string) string {
	if len(doctors) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s doctors in Karachi:\n", titleCase(specialist))
	for i, d := range doctors {
		fmt.Fprintf(&b, "%d. %s | %s | Phone: %s | PMDC: %s\n",
			i+1, titleCase(d.Name), titleCase(d.HospitalName), orNA(d.Phone), orNA(d.PMDC))
	}
	return strings.TrimRight(b.String(), "\n")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

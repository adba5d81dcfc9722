package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sehatmand-backend/config"
	"sehatmand-backend/models"
	"sehatmand-backend/session"
)

type stubAI struct {
	reply string
	err   error

	lastSystem string
	lastTurns  []models.Turn
	calls      int
}

func (s *stubAI) Complete(_ context.Context, system string, turns []models.Turn) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastTurns = turns
	return s.reply, s.err
}

type stubDirectory struct {
	doctors  []models.Doctor
	calls    int
	lastSpec string
}

func (d *stubDirectory) FindBySpecialization(_ context.Context, spec string, _ int) []models.Doctor {
	d.calls++
	d.lastSpec = spec
	return d.doctors
}

func newTestService(t *testing.T, ai *stubAI, dir *stubDirectory) (*ChatbotService, session.Store) {
	t.Helper()
	store, err := session.NewStore(session.StoreTypeMemory, session.Options{TTL: 30 * time.Minute, MaxHistory: 10})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.AI.Timeout = 5 * time.Second
	return NewChatbotService(ai, dir, store, cfg), store
}

func TestProcessMessageRejectsEmpty(t *testing.T) {
	svc, _ := newTestService(t, &stubAI{reply: "ok"}, &stubDirectory{})

	_, err := svc.ProcessMessage(context.Background(), models.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestProcessMessageEmergencyShortCircuit(t *testing.T) {
	ai := &stubAI{reply: "should never be used"}
	dir := &stubDirectory{}
	svc, store := newTestService(t, ai, dir)

	resp, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message:   "I think I am having a heart attack",
		Mode:      "user",
		SessionID: "s1",
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.IntentEmergency), resp.Type)
	assert.Contains(t, resp.Reply, "1122")
	assert.Nil(t, resp.Specialist)
	assert.Empty(t, resp.Doctors)

	// The AI and directory are skipped and history stays untouched.
	assert.Zero(t, ai.calls)
	assert.Zero(t, dir.calls)
	assert.Empty(t, store.History("s1"))
}

func TestProcessMessageSpecialistFlow(t *testing.T) {
	ai := &stubAI{reply: "Please see a cardiologist soon."}
	dir := &stubDirectory{doctors: []models.Doctor{
		{Name: "dr ayesha khan", HospitalName: "aga khan hospital", Specialization: "cardiologist", Phone: "021-111"},
	}}
	svc, store := newTestService(t, ai, dir)

	resp, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message:   "I need a heart specialist",
		Mode:      "user",
		SessionID: "s1",
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.IntentSpecialist), resp.Type)
	require.NotNil(t, resp.Specialist)
	assert.Equal(t, "cardiologist", *resp.Specialist)
	assert.Len(t, resp.Doctors, 1)
	assert.Equal(t, "cardiologist", dir.lastSpec)
	assert.Equal(t, "user", resp.Mode)

	// Doctor context rides along with the latest user turn.
	require.NotEmpty(t, ai.lastTurns)
	last := ai.lastTurns[len(ai.lastTurns)-1]
	assert.Contains(t, last.Content, "Dr Ayesha Khan")
	assert.Contains(t, last.Content, "[Doctor List]")
	assert.Equal(t, UserSystemPrompt, ai.lastSystem)

	// The exchange is persisted as a user/assistant pair.
	history := store.History("s1")
	require.Len(t, history, 2)
	assert.Equal(t, "I need a heart specialist", history[0].Content)
	assert.Equal(t, resp.Reply, history[1].Content)
}

func TestProcessMessageRestrictedReplySubstituted(t *testing.T) {
	ai := &stubAI{reply: "Just take 500 mg of panadol twice a day."}
	svc, _ := newTestService(t, ai, &stubDirectory{})

	resp, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message: "what should I do for mild flu?",
		Mode:    "user",
	})
	require.NoError(t, err)

	assert.Equal(t, userRestrictedReply, resp.Reply)
}

func TestProcessMessageAIFailureFallsBack(t *testing.T) {
	ai := &stubAI{err: errors.New("upstream down")}
	svc, _ := newTestService(t, ai, &stubDirectory{})

	resp, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message: "what should I do for mild flu?",
		Mode:    "user",
	})
	require.NoError(t, err)
	assert.Equal(t, userFallbackReply, resp.Reply)

	resp, err = svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message: "patient presents with jaundice",
		Mode:    "doctor",
	})
	require.NoError(t, err)
	assert.Equal(t, doctorFallbackReply, resp.Reply)
}

func TestProcessMessageDoctorMode(t *testing.T) {
	ai := &stubAI{reply: "Likely cardiac, order an ECG."}
	dir := &stubDirectory{}
	svc, _ := newTestService(t, ai, dir)

	resp, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message: "patient has chest pain and palpitation",
		Mode:    "doctor",
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.IntentClinical), resp.Type)
	require.NotNil(t, resp.Specialist)
	assert.Equal(t, "cardiologist", *resp.Specialist)
	assert.Equal(t, "doctor", resp.Mode)
	assert.Equal(t, DoctorSystemPrompt, ai.lastSystem)
}

func TestProcessMessageModeNormalization(t *testing.T) {
	ai := &stubAI{reply: "hello!"}
	svc, _ := newTestService(t, ai, &stubDirectory{})

	resp, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message: "hi",
		Mode:    "nurse",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", resp.Mode)
}

func TestProcessMessageHistoryPassedToAI(t *testing.T) {
	ai := &stubAI{reply: "reply"}
	svc, store := newTestService(t, ai, &stubDirectory{})

	store.SaveTurn("s1", "earlier question", "earlier answer")

	_, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message:   "and a follow up",
		SessionID: "s1",
	})
	require.NoError(t, err)

	require.Len(t, ai.lastTurns, 3)
	assert.Equal(t, "earlier question", ai.lastTurns[0].Content)
	assert.Equal(t, "earlier answer", ai.lastTurns[1].Content)
	assert.Equal(t, "and a follow up", ai.lastTurns[2].Content)
}

func TestFormatDoctorContext(t *testing.T) {
	doctors := []models.Doctor{
		{Name: "dr omar", HospitalName: "liaquat national", Phone: "021-222", PMDC: "12345"},
		{Name: "dr sana", HospitalName: "civil hospital"},
	}

	out := formatDoctorContext(doctors, "cardiologist")
	assert.Contains(t, out, "Cardiologist doctors in Karachi:")
	assert.Contains(t, out, "1. Dr Omar | Liaquat National | Phone: 021-222 | PMDC: 12345")
	assert.Contains(t, out, "2. Dr Sana | Civil Hospital | Phone: N/A | PMDC: N/A")

	assert.Empty(t, formatDoctorContext(nil, "cardiologist"))
}

func TestPrioritize(t *testing.T) {
	doctors := []models.Doctor{
		{Name: "a"},
		{Name: "b", Phone: "1"},
		{Name: "c"},
		{Name: "d", Phone: "2"},
	}

	got := prioritize(doctors, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "d", got[1].Name)
	assert.Equal(t, "a", got[2].Name)
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatMode string

const (
	ModeUser   ChatMode = "user"
	ModeDoctor ChatMode = "doctor"
)

// NormalizeMode coerces anything that is not exactly "doctor" to "user".
func NormalizeMode(mode string) ChatMode {
	if ChatMode(mode) == ModeDoctor {
		return ModeDoctor
	}
	return ModeUser
}

type IntentType string

const (
	IntentGeneralChat IntentType = "general_chat"
	IntentSpecialist  IntentType = "specialist"
	IntentEmotional   IntentType = "emotional"
	IntentGeneral     IntentType = "general"
	IntentEmergency   IntentType = "emergency"
	IntentClinical    IntentType = "clinical"
)

// Intent is the transient classification result for one message.
// Specialization is set when Type is specialist, or incidentally for
// emotional/general messages. Emotion is set only for emotional messages.
type Intent struct {
	Type           IntentType `json:"type"`
	Specialization string     `json:"specialization,omitempty"`
	Emotion        string     `json:"emotion,omitempty"`
}

// Turn is a single conversation entry, chronological within a session.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	Mode      string `json:"mode,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Reply      string   `json:"reply"`
	Type       string   `json:"type"`
	Specialist *string  `json:"specialist"`
	Doctors    []Doctor `json:"doctors"`
	Mode       string   `json:"mode"`
}

type ClearRequest struct {
	SessionID string `json:"session_id"`
}

// Doctor is one directory record. Phone and PMDC registration number may be
// missing in the source data; records with a phone number sort first.
type Doctor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name           string             `bson:"name" json:"name"`
	HospitalName   string             `bson:"hospital_name" json:"hospital_name"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PMDC           string             `bson:"pmdc,omitempty" json:"pmdc,omitempty"`
	City           string             `bson:"city,omitempty" json:"city,omitempty"`
}

// Place is one nearby healthcare facility from the map provider.
type Place struct {
	PlaceID      string        `json:"place_id"`
	Name         string        `json:"name"`
	Vicinity     string        `json:"vicinity"`
	Phone        string        `json:"phone"`
	Geometry     PlaceGeometry `json:"geometry"`
	DistanceKm   float64       `json:"distance_km"`
	OpeningHours OpeningHours  `json:"opening_hours"`
	Rating       *float64      `json:"rating"`
}

type PlaceGeometry struct {
	Location PlaceLocation `json:"location"`
}

type PlaceLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OpeningHours struct {
	OpenNow *bool `json:"open_now"`
}

type PlacesResponse struct {
	Status  string  `json:"status"`
	Results []Place `json:"results"`
}

type HealthResponse struct {
	Status         string    `json:"status"`
	ActiveSessions int       `json:"active_sessions"`
	HospitalSearch string    `json:"hospital_search"`
	Timestamp      time.Time `json:"timestamp"`
}

package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"sehatmand-backend/database"
	"sehatmand-backend/models"
)

// DoctorDirectory resolves a specialty name to an ordered list of doctor
// records. Implementations return an empty slice, never an error, when no
// data is available.
type DoctorDirectory interface {
	FindBySpecialization(ctx context.Context, specialization string, limit int) []models.Doctor
}

// DefaultDoctorLimit caps how many doctors are attached to a chat reply.
const DefaultDoctorLimit = 5

const doctorCacheTTL = 5 * time.Minute

// DoctorService serves doctor lookups from an in-memory copy of the Mongo
// doctors collection. The whole directory is small (a few thousand records),
// so it is loaded once and refreshed lazily when the cache ages out.
type DoctorService struct {
	mu       sync.RWMutex
	doctors  []models.Doctor
	loadedAt time.Time
}

func NewDoctorService() *DoctorService {
	return &DoctorService{}
}

// WarmUp loads the directory eagerly at startup so the first chat request
// does not pay the fetch cost. Failure is logged, not fatal.
func (s *DoctorService) WarmUp(ctx context.Context) {
	log.Println("[Doctors] warming up directory cache...")
	if docs := s.load(ctx); docs != nil {
		log.Printf("[Doctors] ready, %d doctors in memory", len(docs))
	} else {
		log.Println("[Doctors] warm-up failed, lookups will retry on demand")
	}
}

// FindBySpecialization returns up to limit doctors whose specialization
// matches (substring containment in either direction), with phone-carrying
// records first.
func (s *DoctorService) FindBySpecialization(ctx context.Context, specialization string, limit int) []models.Doctor {
	if limit <= 0 {
		limit = DefaultDoctorLimit
	}

	all := s.cached()
	if all == nil {
		all = s.load(ctx)
	}
	if len(all) == 0 {
		return []models.Doctor{}
	}

	kw := strings.ToLower(strings.TrimSpace(specialization))
	matched := make([]models.Doctor, 0, limit)
	for _, d := range all {
		spec := strings.ToLower(d.Specialization)
		if spec == "" {
			continue
		}
		if strings.Contains(spec, kw) || strings.Contains(kw, spec) {
			matched = append(matched, d)
		}
	}
	log.Printf("[Doctors] %q matched %d records", kw, len(matched))

	return prioritize(matched, limit)
}

// RefreshCache drops the in-memory copy and reloads from Mongo. Exposed via
// the admin endpoint. Returns how many doctors are now cached.
func (s *DoctorService) RefreshCache(ctx context.Context) int {
	s.mu.Lock()
	s.doctors = nil
	s.loadedAt = time.Time{}
	s.mu.Unlock()

	return len(s.load(ctx))
}

func (s *DoctorService) cached() []models.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Freshness is tracked by loadedAt, not the slice: an empty directory
	// is still a valid cached result for the full TTL window.
	if s.loadedAt.IsZero() || time.Since(s.loadedAt) > doctorCacheTTL {
		return nil
	}
	return s.doctors
}

func (s *DoctorService) load(ctx context.Context) []models.Doctor {
	if !database.IsConnected() {
		log.Println("[Doctors] no database connection, returning nothing")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	cursor, err := database.GetDB().Collection(database.DoctorsCollection).Find(ctx, bson.M{})
	if err != nil {
		log.Printf("[Doctors] fetch failed: %v", err)
		return nil
	}
	defer cursor.Close(ctx)

	var docs []models.Doctor
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("[Doctors] decode failed: %v", err)
		return nil
	}
	if docs == nil {
		docs = []models.Doctor{}
	}

	s.mu.Lock()
	s.doctors = docs
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Printf("[Doctors] loaded %d doctors from MongoDB", len(docs))
	return docs
}

// prioritize keeps records with a known phone number ahead of those without,
// preserving relative order inside each group, then truncates to limit.
func prioritize(doctors []models.Doctor, limit int) []models.Doctor {
	sort.SliceStable(doctors, func(i, j int) bool {
		return doctors[i].Phone != "" && doctors[j].Phone == ""
	})
	if len(doctors) > limit {
		doctors = doctors[:limit]
	}
	return doctors
}

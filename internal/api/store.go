package api

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/honeyphish/honeyphish/internal/services"
)

type memoryStore struct {
	mu                  sync.RWMutex
	usersByEmail        map[string]*services.User
	vendors             map[string]*services.Vendor
	assessmentsByVendor map[string]*services.Assessment
	inboxes             map[string][]*services.Email
	events              map[string][]*services.PhishingEvent
	documents           map[string][]*services.Document
	audit               []services.AuditEntry
}

// NewMemoryStore returns the in-process Store used by default and in tests.
func NewMemoryStore() Store {
	return newMemoryStore()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		usersByEmail:        map[string]*services.User{},
		vendors:             map[string]*services.Vendor{},
		assessmentsByVendor: map[string]*services.Assessment{},
		inboxes:             map[string][]*services.Email{},
		events:              map[string][]*services.PhishingEvent{},
		documents:           map[string][]*services.Document{},
		audit:               []services.AuditEntry{},
	}
}

func (s *memoryStore) AddUser(u *services.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByEmail[strings.ToLower(u.Email)] = u
	return nil
}

func (s *memoryStore) FindUserByEmail(email string) (*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByEmail[strings.ToLower(email)], nil
}

func (s *memoryStore) AddVendor(v *services.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recomputeDerived(v)
	s.vendors[v.ID] = v
	return nil
}

func (s *memoryStore) UpdateVendor(v *services.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vendors[v.ID]; !ok {
		return services.NewNotFoundError("vendor not found")
	}
	recomputeDerived(v)
	s.vendors[v.ID] = v
	return nil
}

func (s *memoryStore) GetVendor(id string) (*services.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vendors[id], nil
}

func (s *memoryStore) GetVendorByEmail(email string) (*services.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lower := strings.ToLower(email)
	for _, v := range s.vendors {
		if strings.ToLower(v.Email) == lower {
			return v, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) ListVendors() ([]*services.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) PutAssessment(a *services.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessmentsByVendor[a.VendorID] = a
	return nil
}

func (s *memoryStore) GetAssessmentByVendor(vendorID string) (*services.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assessmentsByVendor[vendorID], nil
}

func (s *memoryStore) ApplyAssessmentResult(vendorID string, score int, completedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[vendorID]
	if !ok {
		return services.NewNotFoundError("vendor not found")
	}
	v.TrustScore = services.ClampScore(score)
	v.LastAssessment = completedAt
	v.AssessmentCompleted = true
	v.Status = services.VendorActive
	recomputeDerived(v)
	return nil
}

func (s *memoryStore) ListInbox(vendorID string) ([]*services.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*services.Email(nil), s.inboxes[vendorID]...), nil
}

func (s *memoryStore) GetEmail(vendorID, emailID string) (*services.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.inboxes[vendorID] {
		if e.ID == emailID {
			return e, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) MarkEmailRead(vendorID, emailID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.inboxes[vendorID] {
		if e.ID == emailID {
			e.IsRead = true
			return nil
		}
	}
	return services.NewNotFoundError("email not found")
}

func (s *memoryStore) PrependEmail(e *services.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inboxes[e.VendorID] = append([]*services.Email{e}, s.inboxes[e.VendorID]...)
	return nil
}

func (s *memoryStore) AddPhishingEvent(ev *services.PhishingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[ev.VendorID] = append(s.events[ev.VendorID], ev)
	return nil
}

func (s *memoryStore) ListPhishingEvents(vendorID string) ([]*services.PhishingEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*services.PhishingEvent(nil), s.events[vendorID]...), nil
}

func (s *memoryStore) ApplyPhishingDelta(vendorID string, delta int) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[vendorID]
	if !ok {
		return 0, 0, services.NewNotFoundError("vendor not found")
	}
	prev := v.PhishingScore
	v.PhishingScore = services.ClampScore(prev + delta)
	return prev, v.PhishingScore, nil
}

func (s *memoryStore) AddDocument(d *services.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[d.VendorID] = append(s.documents[d.VendorID], d)
	return nil
}

func (s *memoryStore) ListDocuments(vendorID string) ([]*services.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*services.Document(nil), s.documents[vendorID]...), nil
}

func (s *memoryStore) IncrementDocuments(vendorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[vendorID]
	if !ok {
		return services.NewNotFoundError("vendor not found")
	}
	v.DocumentsUploaded++
	return nil
}

func (s *memoryStore) AddAudit(e services.AuditEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, e)
}

func (s *memoryStore) ListAudit() []services.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]services.AuditEntry(nil), s.audit...)
}

// recomputeDerived keeps RiskLevel and Badges consistent with TrustScore.
// Callers must hold the write lock.
func recomputeDerived(v *services.Vendor) {
	v.RiskLevel = services.RiskLevelForScore(v.TrustScore)
	v.Badges = services.BadgesForScore(v.TrustScore)
}

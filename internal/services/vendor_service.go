package services

import (
	"sort"
	"strings"
	"time"
)

// VendorStore abstracts the vendor aggregate collection.
type VendorStore interface {
	AddVendor(v *Vendor) error
	GetVendor(id string) (*Vendor, error)
	GetVendorByEmail(email string) (*Vendor, error)
	ListVendors() ([]*Vendor, error)
	AddAudit(e AuditEntry)
}

// VendorService owns vendor registration, lookup and the leaderboard.
type VendorService struct {
	store VendorStore
	now   func() time.Time
	idGen func() string
}

func NewVendorService(store VendorStore) *VendorService {
	return &VendorService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(8) },
	}
}

// Register creates a vendor record. New vendors start unassessed (trust score
// 0, high risk) with a clean phishing score. Duplicate emails are rejected.
func (s *VendorService) Register(name, email, company, industry string) (*Vendor, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, NewInvalidError("name and email required")
	}
	existing, err := s.store.GetVendorByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("vendor email exists")
	}
	v := &Vendor{
		ID:            s.idGen(),
		Name:          name,
		Email:         email,
		Company:       company,
		Industry:      industry,
		TrustScore:    0,
		RiskLevel:     RiskLevelForScore(0),
		Status:        VendorPending,
		PhishingScore: 100,
	}
	if err := s.store.AddVendor(v); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: email, Action: "vendor_registered", Target: v.ID, Note: company})
	return v, nil
}

// Get returns the vendor by id, or a not_found error.
func (s *VendorService) Get(id string) (*Vendor, error) {
	v, err := s.store.GetVendor(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, NewNotFoundError("vendor not found")
	}
	return v, nil
}

// GetByEmail resolves the session identity (role + email) to a vendor record.
func (s *VendorService) GetByEmail(email string) (*Vendor, error) {
	v, err := s.store.GetVendorByEmail(email)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, NewNotFoundError("vendor not found")
	}
	return v, nil
}

// List returns all vendors in stable id order.
func (s *VendorService) List() ([]*Vendor, error) {
	vendors, err := s.store.ListVendors()
	if err != nil {
		return nil, err
	}
	sort.Slice(vendors, func(i, j int) bool { return vendors[i].ID < vendors[j].ID })
	return vendors, nil
}

// LeaderboardEntry is one ranked standings row.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Vendor Vendor `json:"vendor"`
	Badge  *Badge `json:"badge,omitempty"`
}

// Leaderboard ranks all vendors by trust score descending (ties broken by
// id for stable output), then applies the optional search term (name, email
// or company substring) and badge tier filter. Ranks are assigned before
// filtering so a filtered view keeps absolute positions.
func (s *VendorService) Leaderboard(search, badgeTier string) ([]LeaderboardEntry, error) {
	vendors, err := s.store.ListVendors()
	if err != nil {
		return nil, err
	}
	sort.Slice(vendors, func(i, j int) bool {
		if vendors[i].TrustScore != vendors[j].TrustScore {
			return vendors[i].TrustScore > vendors[j].TrustScore
		}
		return vendors[i].ID < vendors[j].ID
	})

	search = strings.ToLower(strings.TrimSpace(search))
	badgeTier = strings.ToLower(strings.TrimSpace(badgeTier))
	out := make([]LeaderboardEntry, 0, len(vendors))
	for i, v := range vendors {
		badge := BadgeForScore(v.TrustScore)
		if search != "" && !matchesSearch(v, search) {
			continue
		}
		if badgeTier != "" && badgeTier != "all" {
			if badge == nil || badge.Tier != badgeTier {
				continue
			}
		}
		out = append(out, LeaderboardEntry{Rank: i + 1, Vendor: *v, Badge: badge})
	}
	return out, nil
}

func matchesSearch(v *Vendor, term string) bool {
	return strings.Contains(strings.ToLower(v.Name), term) ||
		strings.Contains(strings.ToLower(v.Email), term) ||
		strings.Contains(strings.ToLower(v.Company), term)
}

package services

import (
	"fmt"
	"strconv"
	"time"
)

// AssessmentStore abstracts the persistence operations the assessment
// workflow needs. ApplyAssessmentResult must recompute the vendor's risk
// level and badges from the new trust score in the same operation.
type AssessmentStore interface {
	GetVendor(id string) (*Vendor, error)
	GetAssessmentByVendor(vendorID string) (*Assessment, error)
	PutAssessment(a *Assessment) error
	ApplyAssessmentResult(vendorID string, score int, completedAt time.Time) error
	AddAudit(e AuditEntry)
}

// AssessmentService validates and scores questionnaire submissions against
// the static catalog and applies the result to the owning vendor.
type AssessmentService struct {
	store    AssessmentStore
	sections []Section
	now      func() time.Time
	idGen    func() string
}

func NewAssessmentService(store AssessmentStore) *AssessmentService {
	return &AssessmentService{
		store:    store,
		sections: Catalog(),
		now:      func() time.Time { return time.Now().UTC() },
		idGen:    func() string { return shortID(12) },
	}
}

// Get returns the vendor's assessment, or nil when none exists yet.
func (s *AssessmentService) Get(vendorID string) (*Assessment, error) {
	if vendorID == "" {
		return nil, NewInvalidError("vendor id required")
	}
	return s.store.GetAssessmentByVendor(vendorID)
}

// SaveDraft upserts the vendor's in-progress responses without touching the
// vendor record. Partial response sets are allowed here; only Submit
// validates completeness.
func (s *AssessmentService) SaveDraft(vendorID string, responses map[string]any) (*Assessment, error) {
	vendor, err := s.store.GetVendor(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, NewNotFoundError("vendor not found")
	}
	if responses == nil {
		responses = map[string]any{}
	}
	existing, err := s.store.GetAssessmentByVendor(vendorID)
	if err != nil {
		return nil, err
	}
	draft := &Assessment{
		ID:        s.idGen(),
		VendorID:  vendorID,
		Responses: responses,
		Status:    AssessmentDraft,
	}
	if existing != nil {
		draft.ID = existing.ID
		draft.Score = existing.Score
		draft.CompletedAt = existing.CompletedAt
	}
	if err := s.store.PutAssessment(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Submit scores a complete response set and applies the result to the vendor:
// trust score, derived risk level and badges, last-assessment timestamp and
// the completed flag, all in one store call. Incomplete submissions are
// refused rather than scored as final.
func (s *AssessmentService) Submit(vendorID string, responses map[string]any) (*Assessment, error) {
	vendor, err := s.store.GetVendor(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, NewNotFoundError("vendor not found")
	}
	if missing := s.missingAnswers(responses); missing > 0 {
		return nil, NewInvalidError(fmt.Sprintf("assessment incomplete: %d questions unanswered", missing))
	}

	score := CalculateOverallScore(s.sections, responses)
	now := s.now()
	assessment := &Assessment{
		ID:          s.idGen(),
		VendorID:    vendorID,
		Responses:   responses,
		Score:       score,
		CompletedAt: now,
		Status:      AssessmentSubmitted,
	}
	if existing, err := s.store.GetAssessmentByVendor(vendorID); err != nil {
		return nil, err
	} else if existing != nil {
		// One assessment per vendor: resubmission replaces it.
		assessment.ID = existing.ID
	}
	if err := s.store.PutAssessment(assessment); err != nil {
		return nil, err
	}
	if err := s.store.ApplyAssessmentResult(vendorID, score, now); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: vendor.Email, Action: "assessment_submitted", Target: vendorID, Note: strconv.Itoa(score)})
	return assessment, nil
}

// SectionScores reports the per-section breakdown for a response set, used by
// the questionnaire progress display.
func (s *AssessmentService) SectionScores(responses map[string]any) map[string]int {
	out := make(map[string]int, len(s.sections))
	for _, sec := range s.sections {
		out[sec.ID] = CalculateSectionScore(sec, responses)
	}
	return out
}

func (s *AssessmentService) missingAnswers(responses map[string]any) int {
	missing := 0
	for _, sec := range s.sections {
		for _, q := range sec.Questions {
			if v, ok := responses[q.ID]; !ok || v == nil {
				missing++
			}
		}
	}
	return missing
}

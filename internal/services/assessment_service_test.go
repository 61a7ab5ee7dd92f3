package services

import (
	"testing"
	"time"
)

type assessmentStubStore struct {
	vendors     map[string]*Vendor
	assessments map[string]*Assessment
	applied     []int
	audit       []AuditEntry
}

func newAssessmentStubStore() *assessmentStubStore {
	return &assessmentStubStore{
		vendors:     map[string]*Vendor{},
		assessments: map[string]*Assessment{},
	}
}

func (s *assessmentStubStore) GetVendor(id string) (*Vendor, error) {
	if v, ok := s.vendors[id]; ok {
		copy := *v
		return &copy, nil
	}
	return nil, nil
}

func (s *assessmentStubStore) GetAssessmentByVendor(vendorID string) (*Assessment, error) {
	if a, ok := s.assessments[vendorID]; ok {
		copy := *a
		return &copy, nil
	}
	return nil, nil
}

func (s *assessmentStubStore) PutAssessment(a *Assessment) error {
	copy := *a
	s.assessments[a.VendorID] = &copy
	return nil
}

func (s *assessmentStubStore) ApplyAssessmentResult(vendorID string, score int, completedAt time.Time) error {
	v := s.vendors[vendorID]
	v.TrustScore = ClampScore(score)
	v.RiskLevel = RiskLevelForScore(v.TrustScore)
	v.Badges = BadgesForScore(v.TrustScore)
	v.LastAssessment = completedAt
	v.AssessmentCompleted = true
	s.applied = append(s.applied, score)
	return nil
}

func (s *assessmentStubStore) AddAudit(e AuditEntry) { s.audit = append(s.audit, e) }

func newTestAssessmentService(store *assessmentStubStore) *AssessmentService {
	svc := NewAssessmentService(store)
	svc.now = func() time.Time { return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC) }
	svc.idGen = func() string { return "assessment1" }
	return svc
}

func TestSubmitRefusesIncomplete(t *testing.T) {
	store := newAssessmentStubStore()
	store.vendors["v1"] = &Vendor{ID: "v1", Email: "v1@example.com"}
	svc := newTestAssessmentService(store)

	_, err := svc.Submit("v1", map[string]any{"https_enabled": true})
	if err == nil {
		t.Fatalf("expected validation error for partial submission")
	}
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid error, got %v", err)
	}
	if len(store.applied) != 0 {
		t.Fatalf("vendor must not be updated on refused submission")
	}
}

func TestSubmitScoresAndUpdatesVendor(t *testing.T) {
	store := newAssessmentStubStore()
	store.vendors["v1"] = &Vendor{ID: "v1", Email: "v1@example.com", TrustScore: 50, RiskLevel: RiskHigh}
	svc := newTestAssessmentService(store)

	responses := fullCatalogResponses()
	a, err := svc.Submit("v1", responses)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if a.Status != AssessmentSubmitted {
		t.Fatalf("status = %s, want submitted", a.Status)
	}
	if a.Score != CalculateOverallScore(Catalog(), responses) {
		t.Fatalf("score mismatch: %d", a.Score)
	}
	v := store.vendors["v1"]
	if !v.AssessmentCompleted || v.TrustScore != a.Score {
		t.Fatalf("vendor not updated: %+v", v)
	}
	if v.RiskLevel != RiskLevelForScore(a.Score) {
		t.Fatalf("risk level not recomputed with trust score")
	}
	if v.LastAssessment != a.CompletedAt {
		t.Fatalf("last assessment timestamp not applied")
	}
	if len(store.audit) != 1 || store.audit[0].Action != "assessment_submitted" {
		t.Fatalf("expected audit entry, got %+v", store.audit)
	}
}

func TestSubmitUnknownVendor(t *testing.T) {
	svc := newTestAssessmentService(newAssessmentStubStore())
	_, err := svc.Submit("missing", fullCatalogResponses())
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestResubmissionReplacesAssessment(t *testing.T) {
	store := newAssessmentStubStore()
	store.vendors["v1"] = &Vendor{ID: "v1", Email: "v1@example.com"}
	svc := newTestAssessmentService(store)

	first, err := svc.Submit("v1", fullCatalogResponses())
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	svc.idGen = func() string { return "other-id" }
	second, err := svc.Submit("v1", fullCatalogResponses())
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("resubmission must keep assessment id %q, got %q", first.ID, second.ID)
	}
	if len(store.assessments) != 1 {
		t.Fatalf("expected one assessment per vendor")
	}
}

func TestSaveDraftAllowsPartial(t *testing.T) {
	store := newAssessmentStubStore()
	store.vendors["v1"] = &Vendor{ID: "v1", Email: "v1@example.com"}
	svc := newTestAssessmentService(store)

	draft, err := svc.SaveDraft("v1", map[string]any{"https_enabled": true})
	if err != nil {
		t.Fatalf("SaveDraft returned error: %v", err)
	}
	if draft.Status != AssessmentDraft {
		t.Fatalf("status = %s, want draft", draft.Status)
	}
	if len(store.applied) != 0 {
		t.Fatalf("draft save must not touch the vendor")
	}
	got, err := svc.Get("v1")
	if err != nil || got == nil {
		t.Fatalf("Get after draft: %v %v", got, err)
	}
	if got.Responses["https_enabled"] != true {
		t.Fatalf("draft responses not stored: %+v", got.Responses)
	}
}

func TestSectionScoresBreakdown(t *testing.T) {
	svc := newTestAssessmentService(newAssessmentStubStore())
	scores := svc.SectionScores(map[string]any{"mfa_enabled": true})
	if scores["mfa"] != 100 {
		t.Fatalf("mfa section = %d, want 100", scores["mfa"])
	}
	if scores["https"] != 0 {
		t.Fatalf("unanswered section = %d, want 0", scores["https"])
	}
}

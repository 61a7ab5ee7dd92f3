package services

import (
	"testing"
	"time"
)

type phishingStubStore struct {
	vendors map[string]*Vendor
	inboxes map[string][]*Email
	events  []*PhishingEvent
	audit   []AuditEntry
}

func newPhishingStubStore() *phishingStubStore {
	return &phishingStubStore{
		vendors: map[string]*Vendor{},
		inboxes: map[string][]*Email{},
	}
}

func (s *phishingStubStore) GetVendor(id string) (*Vendor, error) {
	if v, ok := s.vendors[id]; ok {
		copy := *v
		return &copy, nil
	}
	return nil, nil
}

func (s *phishingStubStore) ListInbox(vendorID string) ([]*Email, error) {
	return append([]*Email(nil), s.inboxes[vendorID]...), nil
}

func (s *phishingStubStore) GetEmail(vendorID, emailID string) (*Email, error) {
	for _, e := range s.inboxes[vendorID] {
		if e.ID == emailID {
			copy := *e
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *phishingStubStore) MarkEmailRead(vendorID, emailID string) error {
	for _, e := range s.inboxes[vendorID] {
		if e.ID == emailID {
			e.IsRead = true
		}
	}
	return nil
}

func (s *phishingStubStore) PrependEmail(e *Email) error {
	copy := *e
	s.inboxes[e.VendorID] = append([]*Email{&copy}, s.inboxes[e.VendorID]...)
	return nil
}

func (s *phishingStubStore) AddPhishingEvent(ev *PhishingEvent) error {
	copy := *ev
	s.events = append(s.events, &copy)
	return nil
}

func (s *phishingStubStore) ApplyPhishingDelta(vendorID string, delta int) (int, int, error) {
	v, ok := s.vendors[vendorID]
	if !ok {
		return 0, 0, NewNotFoundError("vendor not found")
	}
	prev := v.PhishingScore
	v.PhishingScore = ClampScore(prev + delta)
	return prev, v.PhishingScore, nil
}

func (s *phishingStubStore) AddAudit(e AuditEntry) { s.audit = append(s.audit, e) }

func newTestPhishingService(store *phishingStubStore) *PhishingService {
	svc := NewPhishingService(store)
	svc.now = func() time.Time { return time.Date(2024, 1, 21, 9, 0, 0, 0, time.UTC) }
	svc.idGen = func() string { return "ev1" }
	svc.pick = func(n int) int { return 0 }
	return svc
}

func seedVendorInbox(store *phishingStubStore, vendorID string, score int) {
	store.vendors[vendorID] = &Vendor{ID: vendorID, PhishingScore: score}
	for i := len(SeedInboxEmails(vendorID)) - 1; i >= 0; i-- {
		_ = store.PrependEmail(SeedInboxEmails(vendorID)[i])
	}
}

func TestInboxSeedsOnFirstAccess(t *testing.T) {
	store := newPhishingStubStore()
	store.vendors["v1"] = &Vendor{ID: "v1", PhishingScore: 85}
	svc := newTestPhishingService(store)

	emails, err := svc.Inbox("v1")
	if err != nil {
		t.Fatalf("Inbox returned error: %v", err)
	}
	if len(emails) != 3 {
		t.Fatalf("expected 3 seeded emails, got %d", len(emails))
	}
	if emails[0].ID != "seed-1" || emails[2].ID != "seed-3" {
		t.Fatalf("unexpected inbox order: %s .. %s", emails[0].ID, emails[2].ID)
	}

	// Second access must not reseed.
	again, err := svc.Inbox("v1")
	if err != nil || len(again) != 3 {
		t.Fatalf("reseeded inbox: %d emails, err=%v", len(again), err)
	}
}

func TestInboxUnknownVendor(t *testing.T) {
	svc := newTestPhishingService(newPhishingStubStore())
	_, err := svc.Inbox("missing")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	store := newPhishingStubStore()
	seedVendorInbox(store, "v1", 85)
	svc := newTestPhishingService(store)

	first, err := svc.Open("v1", "seed-1")
	if err != nil || !first.IsRead {
		t.Fatalf("first open: %+v, err=%v", first, err)
	}
	second, err := svc.Open("v1", "seed-1")
	if err != nil || !second.IsRead {
		t.Fatalf("second open: %+v, err=%v", second, err)
	}
	if len(store.events) != 0 || len(store.inboxes["v1"]) != 3 {
		t.Fatalf("open must have no side effects beyond read flag")
	}
}

func TestClickPhishingLinkClampsAtZero(t *testing.T) {
	store := newPhishingStubStore()
	seedVendorInbox(store, "v1", 5)
	svc := newTestPhishingService(store)

	res, err := svc.ClickLink("v1", "seed-1")
	if err != nil {
		t.Fatalf("ClickLink returned error: %v", err)
	}
	if !res.Phishing {
		t.Fatalf("expected phishing result")
	}
	if res.PreviousScore != 5 || res.NewScore != 0 {
		t.Fatalf("scores = %d -> %d, want 5 -> 0 (clamped)", res.PreviousScore, res.NewScore)
	}
	if res.Tip == "" {
		t.Fatalf("expected a security tip")
	}
	if len(store.events) != 1 || store.events[0].Action != ActionClicked || store.events[0].ScoreChange != ClickPenalty {
		t.Fatalf("unexpected ledger: %+v", store.events)
	}
}

func TestClickSafeLinkIsNoop(t *testing.T) {
	store := newPhishingStubStore()
	seedVendorInbox(store, "v1", 85)
	svc := newTestPhishingService(store)

	res, err := svc.ClickLink("v1", "seed-2")
	if err != nil {
		t.Fatalf("ClickLink returned error: %v", err)
	}
	if res.Phishing {
		t.Fatalf("safe email must not trigger the failure path")
	}
	if store.vendors["v1"].PhishingScore != 85 || len(store.events) != 0 {
		t.Fatalf("safe click must not change anything")
	}
}

func TestReportPhishingClampsAtHundred(t *testing.T) {
	store := newPhishingStubStore()
	seedVendorInbox(store, "v1", 95)
	svc := newTestPhishingService(store)

	res, err := svc.Report("v1", "seed-1")
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if !res.Correct || res.ScoreChange != ReportReward {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.NewScore != 100 {
		t.Fatalf("score = %d, want 100 (clamped from 95+15)", res.NewScore)
	}
	if res.Followup == nil || res.Followup.Type != EmailReward || res.Followup.IsPhishing {
		t.Fatalf("unexpected followup: %+v", res.Followup)
	}
	inbox := store.inboxes["v1"]
	if inbox[0].Type != EmailReward {
		t.Fatalf("reward email must be prepended, got %s first", inbox[0].Type)
	}
	if len(store.events) != 1 || store.events[0].ScoreChange != ReportReward {
		t.Fatalf("unexpected ledger: %+v", store.events)
	}
}

func TestMisreportQueuesEducationWithoutPenalty(t *testing.T) {
	store := newPhishingStubStore()
	seedVendorInbox(store, "v1", 85)
	svc := newTestPhishingService(store)

	res, err := svc.Report("v1", "seed-2")
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if res.Correct || res.ScoreChange != 0 || res.NewScore != 85 {
		t.Fatalf("misreport must not change the score: %+v", res)
	}
	if res.Followup == nil || res.Followup.Type != EmailMisreport {
		t.Fatalf("expected educational followup, got %+v", res.Followup)
	}
	if store.inboxes["v1"][0].Type != EmailMisreport {
		t.Fatalf("educational email must be prepended")
	}
}

func TestFollowupEmailsCannotScoreAgain(t *testing.T) {
	store := newPhishingStubStore()
	seedVendorInbox(store, "v1", 50)
	svc := newTestPhishingService(store)

	if _, err := svc.Report("v1", "seed-1"); err != nil {
		t.Fatalf("report: %v", err)
	}
	reward := store.inboxes["v1"][0]

	// Reporting the synthesized reward email is a misreport, not a reward.
	res, err := svc.Report("v1", reward.ID)
	if err != nil {
		t.Fatalf("report reward email: %v", err)
	}
	if res.Correct || res.ScoreChange != 0 {
		t.Fatalf("followup email scored again: %+v", res)
	}
	// Clicking its link is a no-op.
	click, err := svc.ClickLink("v1", reward.ID)
	if err != nil || click.Phishing {
		t.Fatalf("followup click must be a no-op: %+v err=%v", click, err)
	}
}

func TestRepeatedPenaltiesNeverGoNegative(t *testing.T) {
	store := newPhishingStubStore()
	seedVendorInbox(store, "v1", 15)
	svc := newTestPhishingService(store)

	for i := 0; i < 4; i++ {
		if _, err := svc.ClickLink("v1", "seed-3"); err != nil {
			t.Fatalf("click %d: %v", i, err)
		}
	}
	if got := store.vendors["v1"].PhishingScore; got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}

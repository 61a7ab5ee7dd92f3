package services

import (
	"math/rand"
	"strconv"
	"time"
)

// Score deltas for simulated email interactions.
const (
	ClickPenalty  = -10
	ReportReward  = 15
	MisreportCost = 0
)

// PhishingStore abstracts persistence for the phishing simulation. Inbox
// emails are scoped per vendor; ApplyPhishingDelta clamps the vendor's
// phishing score to [0,100] and returns the previous and new values.
type PhishingStore interface {
	GetVendor(id string) (*Vendor, error)
	ListInbox(vendorID string) ([]*Email, error)
	GetEmail(vendorID, emailID string) (*Email, error)
	MarkEmailRead(vendorID, emailID string) error
	PrependEmail(e *Email) error
	AddPhishingEvent(ev *PhishingEvent) error
	ApplyPhishingDelta(vendorID string, delta int) (int, int, error)
	AddAudit(e AuditEntry)
}

// PhishingService runs one vendor's interaction with the simulated inbox:
// opening emails, clicking links and reporting, with the append-only event
// ledger and the clamped phishing-score updates.
type PhishingService struct {
	store PhishingStore
	now   func() time.Time
	idGen func() string
	pick  func(n int) int
}

func NewPhishingService(store PhishingStore) *PhishingService {
	return &PhishingService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
		pick:  rand.Intn,
	}
}

// ClickResult carries the failed-simulation view data: the score before and
// after the penalty and a random security tip.
type ClickResult struct {
	Phishing      bool   `json:"phishing"`
	PreviousScore int    `json:"previous_score"`
	NewScore      int    `json:"new_score"`
	Tip           string `json:"tip,omitempty"`
}

// ReportResult describes the outcome of a report action, including the
// synthesized follow-up email placed at the top of the inbox.
type ReportResult struct {
	Correct     bool   `json:"correct"`
	ScoreChange int    `json:"score_change"`
	NewScore    int    `json:"new_score"`
	Followup    *Email `json:"followup"`
}

// Inbox returns the vendor's emails, newest first. A vendor's inbox is
// populated from the seed templates on first access.
func (s *PhishingService) Inbox(vendorID string) ([]*Email, error) {
	vendor, err := s.store.GetVendor(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, NewNotFoundError("vendor not found")
	}
	emails, err := s.store.ListInbox(vendorID)
	if err != nil {
		return nil, err
	}
	if len(emails) > 0 {
		return emails, nil
	}
	seeds := SeedInboxEmails(vendorID)
	for i := len(seeds) - 1; i >= 0; i-- {
		if err := s.store.PrependEmail(seeds[i]); err != nil {
			return nil, err
		}
	}
	return s.store.ListInbox(vendorID)
}

// Open marks an email read and returns it. Opening an already-read email is
// idempotent: no state change and no side effects.
func (s *PhishingService) Open(vendorID, emailID string) (*Email, error) {
	email, err := s.lookup(vendorID, emailID)
	if err != nil {
		return nil, err
	}
	if !email.IsRead {
		if err := s.store.MarkEmailRead(vendorID, emailID); err != nil {
			return nil, err
		}
		email.IsRead = true
	}
	return email, nil
}

// ClickLink simulates following a link inside an email. Links in safe emails
// do nothing. A phishing link records a clicked event, applies the clamped
// penalty and returns the before/after scores for the failure view.
func (s *PhishingService) ClickLink(vendorID, emailID string) (*ClickResult, error) {
	email, err := s.lookup(vendorID, emailID)
	if err != nil {
		return nil, err
	}
	if !email.IsPhishing {
		return &ClickResult{Phishing: false}, nil
	}
	now := s.now()
	prev, next, err := s.store.ApplyPhishingDelta(vendorID, ClickPenalty)
	if err != nil {
		return nil, err
	}
	ev := &PhishingEvent{
		ID:          s.idGen(),
		VendorID:    vendorID,
		EmailID:     emailID,
		Action:      ActionClicked,
		Timestamp:   now,
		ScoreChange: ClickPenalty,
	}
	if err := s.store.AddPhishingEvent(ev); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: vendorID, Action: "phishing_link_clicked", Target: emailID, Note: strconv.Itoa(next)})
	return &ClickResult{
		Phishing:      true,
		PreviousScore: prev,
		NewScore:      next,
		Tip:           securityTips[s.pick(len(securityTips))],
	}, nil
}

// Report handles "report as phishing". A correct report earns the reward and
// a congratulatory email; reporting a legitimate email costs nothing but
// queues an educational follow-up. Both follow-ups are prepended to the inbox
// and are never phishing themselves, so they cannot score again.
func (s *PhishingService) Report(vendorID, emailID string) (*ReportResult, error) {
	email, err := s.lookup(vendorID, emailID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	change := MisreportCost
	if email.IsPhishing {
		change = ReportReward
	}
	next := 0
	if change != 0 {
		if _, next, err = s.store.ApplyPhishingDelta(vendorID, change); err != nil {
			return nil, err
		}
	} else {
		vendor, err := s.store.GetVendor(vendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, NewNotFoundError("vendor not found")
		}
		next = vendor.PhishingScore
	}
	ev := &PhishingEvent{
		ID:          s.idGen(),
		VendorID:    vendorID,
		EmailID:     emailID,
		Action:      ActionReported,
		Timestamp:   now,
		ScoreChange: change,
	}
	if err := s.store.AddPhishingEvent(ev); err != nil {
		return nil, err
	}

	var followup *Email
	if email.IsPhishing {
		followup = rewardEmail(vendorID, s.idGen(), now)
		s.store.AddAudit(AuditEntry{Time: now, Actor: vendorID, Action: "phishing_reported", Target: emailID, Note: strconv.Itoa(next)})
	} else {
		followup = misreportEmail(vendorID, s.idGen(), now)
		s.store.AddAudit(AuditEntry{Time: now, Actor: vendorID, Action: "phishing_misreported", Target: emailID})
	}
	if err := s.store.PrependEmail(followup); err != nil {
		return nil, err
	}
	return &ReportResult{
		Correct:     email.IsPhishing,
		ScoreChange: change,
		NewScore:    next,
		Followup:    followup,
	}, nil
}

func (s *PhishingService) lookup(vendorID, emailID string) (*Email, error) {
	if vendorID == "" || emailID == "" {
		return nil, NewInvalidError("vendor id and email id required")
	}
	email, err := s.store.GetEmail(vendorID, emailID)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, NewNotFoundError("email not found")
	}
	return email, nil
}

var securityTips = []string{
	"Always verify the sender's email address carefully",
	"Look for spelling and grammar mistakes in emails",
	"Hover over links to see the actual destination URL",
	"Be suspicious of urgent or threatening language",
	"When in doubt, contact the sender through a separate channel",
	"Check for official company branding and signatures",
}

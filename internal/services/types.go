package services

import "time"

// QuestionType identifies how a question is answered and scored.
type QuestionType string

const (
	QuestionBoolean  QuestionType = "boolean"
	QuestionMultiple QuestionType = "multiple"
	QuestionScale    QuestionType = "scale"
)

// Question is a single catalog question. The weight sign encodes direction:
// positive weights reward a "yes"/high answer, negative weights reward the
// absence of a bad practice (e.g. breach history).
type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
	Weight  int          `json:"weight"`
}

// Section groups weighted questions covering one security topic.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type VendorStatus string

const (
	VendorActive   VendorStatus = "active"
	VendorPending  VendorStatus = "pending"
	VendorInactive VendorStatus = "inactive"
)

// Vendor is the aggregate record the scoring engine and phishing ledger
// mutate. RiskLevel and Badges are derived from TrustScore; every store
// operation that writes TrustScore recomputes them in the same call.
type Vendor struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Email               string       `json:"email"`
	Company             string       `json:"company"`
	Industry            string       `json:"industry"`
	TrustScore          int          `json:"trust_score"`
	RiskLevel           RiskLevel    `json:"risk_level"`
	Status              VendorStatus `json:"status"`
	LastAssessment      time.Time    `json:"last_assessment"`
	AssessmentCompleted bool         `json:"assessment_completed"`
	PhishingScore       int          `json:"phishing_score"`
	DocumentsUploaded   int          `json:"documents_uploaded"`
	Badges              []string     `json:"badges"`
}

type AssessmentStatus string

const (
	AssessmentDraft     AssessmentStatus = "draft"
	AssessmentSubmitted AssessmentStatus = "submitted"
	AssessmentReviewed  AssessmentStatus = "reviewed"
)

// Assessment holds one vendor's answers keyed by question id. Answer shapes
// follow the question type: bool, option string, or 0-100 number.
type Assessment struct {
	ID          string           `json:"id"`
	VendorID    string           `json:"vendor_id"`
	Responses   map[string]any   `json:"responses"`
	Score       int              `json:"score"`
	CompletedAt time.Time        `json:"completed_at"`
	Status      AssessmentStatus `json:"status"`
}

type PhishingAction string

const (
	ActionClicked  PhishingAction = "clicked"
	ActionReported PhishingAction = "reported"
	ActionIgnored  PhishingAction = "ignored"
)

// PhishingEvent is one immutable ledger entry. Its ScoreChange is applied
// exactly once to the owning vendor's phishing score, clamped to [0,100].
type PhishingEvent struct {
	ID          string         `json:"id"`
	VendorID    string         `json:"vendor_id"`
	EmailID     string         `json:"email_id"`
	Action      PhishingAction `json:"action"`
	Timestamp   time.Time      `json:"timestamp"`
	ScoreChange int            `json:"score_change"`
}

type EmailType string

const (
	EmailPhishing  EmailType = "phishing"
	EmailSafe      EmailType = "safe"
	EmailReward    EmailType = "reward"
	EmailMisreport EmailType = "misreport"
)

// Email is one message in a vendor's simulated inbox. Reward and misreport
// emails are synthesized by report actions and are never phishing themselves.
type Email struct {
	ID            string    `json:"id"`
	VendorID      string    `json:"vendor_id"`
	Sender        string    `json:"sender"`
	SenderEmail   string    `json:"sender_email"`
	Subject       string    `json:"subject"`
	Timestamp     time.Time `json:"timestamp"`
	IsRead        bool      `json:"is_read"`
	IsPhishing    bool      `json:"is_phishing"`
	Content       string    `json:"content"`
	Type          EmailType `json:"type"`
	HasAttachment bool      `json:"has_attachment,omitempty"`
	Priority      string    `json:"priority,omitempty"`
}

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// Document is an uploaded evidence record counted on the vendor.
type Document struct {
	ID         string         `json:"id"`
	VendorID   string         `json:"vendor_id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	UploadedAt time.Time      `json:"uploaded_at"`
	Status     DocumentStatus `json:"status"`
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
)

// User is a login identity. Vendor users map to their Vendor record by email.
type User struct {
	ID        string
	Email     string
	PassHash  []byte
	Role      Role
	Name      string
	Company   string
	CreatedAt time.Time
}

type AuditEntry struct {
	Time   time.Time `json:"time"`
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	Target string    `json:"target"`
	Note   string    `json:"note,omitempty"`
}

package api

import (
	"time"

	"github.com/honeyphish/honeyphish/internal/services"
)

// Store is the aggregate persistence surface behind the HTTP layer. Each
// service declares the narrow subset it needs; a Store satisfies all of them.
// Getters return (nil, nil) for missing rows; the services translate that
// into not_found. Write operations that touch scores recompute the vendor's
// derived fields (risk level, badges) before committing.
type Store interface {
	AddUser(u *services.User) error
	FindUserByEmail(email string) (*services.User, error)

	AddVendor(v *services.Vendor) error
	UpdateVendor(v *services.Vendor) error
	GetVendor(id string) (*services.Vendor, error)
	GetVendorByEmail(email string) (*services.Vendor, error)
	ListVendors() ([]*services.Vendor, error)

	PutAssessment(a *services.Assessment) error
	GetAssessmentByVendor(vendorID string) (*services.Assessment, error)
	ApplyAssessmentResult(vendorID string, score int, completedAt time.Time) error

	ListInbox(vendorID string) ([]*services.Email, error)
	GetEmail(vendorID, emailID string) (*services.Email, error)
	MarkEmailRead(vendorID, emailID string) error
	PrependEmail(e *services.Email) error
	AddPhishingEvent(ev *services.PhishingEvent) error
	ListPhishingEvents(vendorID string) ([]*services.PhishingEvent, error)
	ApplyPhishingDelta(vendorID string, delta int) (int, int, error)

	AddDocument(d *services.Document) error
	ListDocuments(vendorID string) ([]*services.Document, error)
	IncrementDocuments(vendorID string) error

	AddAudit(e services.AuditEntry)
	ListAudit() []services.AuditEntry
}

var _ Store = (*memoryStore)(nil)

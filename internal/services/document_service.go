package services

import (
	"strings"
	"time"
)

// DocumentStore abstracts the append-only document collection.
// IncrementDocuments bumps the vendor's upload counter by one.
type DocumentStore interface {
	GetVendor(id string) (*Vendor, error)
	AddDocument(d *Document) error
	ListDocuments(vendorID string) ([]*Document, error)
	IncrementDocuments(vendorID string) error
	AddAudit(e AuditEntry)
}

// DocumentService records evidence uploads against a vendor.
type DocumentService struct {
	store DocumentStore
	now   func() time.Time
	idGen func() string
}

func NewDocumentService(store DocumentStore) *DocumentService {
	return &DocumentService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
	}
}

// Upload stores a document record (status pending) and increments the
// vendor's upload counter in the same call.
func (s *DocumentService) Upload(vendorID, name, docType string) (*Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewInvalidError("document name required")
	}
	vendor, err := s.store.GetVendor(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, NewNotFoundError("vendor not found")
	}
	doc := &Document{
		ID:         s.idGen(),
		VendorID:   vendorID,
		Name:       name,
		Type:       docType,
		UploadedAt: s.now(),
		Status:     DocumentPending,
	}
	if err := s.store.AddDocument(doc); err != nil {
		return nil, err
	}
	if err := s.store.IncrementDocuments(vendorID); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: doc.UploadedAt, Actor: vendor.Email, Action: "document_uploaded", Target: vendorID, Note: name})
	return doc, nil
}

// List returns the vendor's documents, newest first.
func (s *DocumentService) List(vendorID string) ([]*Document, error) {
	if vendorID == "" {
		return nil, NewInvalidError("vendor id required")
	}
	return s.store.ListDocuments(vendorID)
}

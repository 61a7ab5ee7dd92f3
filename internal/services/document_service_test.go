package services

import (
	"testing"
	"time"
)

type documentStubStore struct {
	vendors map[string]*Vendor
	docs    []*Document
	audit   []AuditEntry
}

func newDocumentStubStore() *documentStubStore {
	return &documentStubStore{vendors: map[string]*Vendor{}}
}

func (s *documentStubStore) GetVendor(id string) (*Vendor, error) {
	if v, ok := s.vendors[id]; ok {
		copy := *v
		return &copy, nil
	}
	return nil, nil
}

func (s *documentStubStore) AddDocument(d *Document) error {
	copy := *d
	s.docs = append([]*Document{&copy}, s.docs...)
	return nil
}

func (s *documentStubStore) ListDocuments(vendorID string) ([]*Document, error) {
	out := []*Document{}
	for _, d := range s.docs {
		if d.VendorID == vendorID {
			copy := *d
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (s *documentStubStore) IncrementDocuments(vendorID string) error {
	s.vendors[vendorID].DocumentsUploaded++
	return nil
}

func (s *documentStubStore) AddAudit(e AuditEntry) { s.audit = append(s.audit, e) }

func TestDocumentUpload(t *testing.T) {
	store := newDocumentStubStore()
	store.vendors["v1"] = &Vendor{ID: "v1", Email: "v1@example.com", DocumentsUploaded: 2}
	svc := NewDocumentService(store)
	svc.now = func() time.Time { return time.Unix(0, 0).UTC() }
	svc.idGen = func() string { return "doc1" }

	doc, err := svc.Upload("v1", "SOC2 Report.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if doc.Status != DocumentPending {
		t.Fatalf("status = %s, want pending", doc.Status)
	}
	if store.vendors["v1"].DocumentsUploaded != 3 {
		t.Fatalf("counter = %d, want 3", store.vendors["v1"].DocumentsUploaded)
	}
	if len(store.audit) != 1 || store.audit[0].Action != "document_uploaded" {
		t.Fatalf("expected audit entry, got %+v", store.audit)
	}

	docs, err := svc.List("v1")
	if err != nil || len(docs) != 1 || docs[0].ID != "doc1" {
		t.Fatalf("List: %+v err=%v", docs, err)
	}
}

func TestDocumentUploadValidation(t *testing.T) {
	store := newDocumentStubStore()
	svc := NewDocumentService(store)

	if _, err := svc.Upload("v1", "", "pdf"); err == nil {
		t.Fatalf("expected validation error for empty name")
	}
	if _, err := svc.Upload("missing", "a.pdf", "pdf"); err == nil {
		t.Fatalf("expected not_found for unknown vendor")
	}
}

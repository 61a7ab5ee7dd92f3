package services

import (
	"errors"
	"testing"
	"time"
)

type authStubStore struct {
	users   map[string]*User
	vendors map[string]*Vendor
	audit   []AuditEntry
}

func newAuthStubStore() *authStubStore {
	return &authStubStore{users: map[string]*User{}, vendors: map[string]*Vendor{}}
}

func (s *authStubStore) FindUserByEmail(email string) (*User, error) {
	if u, ok := s.users[email]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, nil
}

func (s *authStubStore) AddUser(u *User) error {
	if _, ok := s.users[u.Email]; ok {
		return errors.New("duplicate user")
	}
	copy := *u
	s.users[u.Email] = &copy
	return nil
}

func (s *authStubStore) GetVendorByEmail(email string) (*Vendor, error) {
	if v, ok := s.vendors[email]; ok {
		copy := *v
		return &copy, nil
	}
	return nil, nil
}

func (s *authStubStore) AddVendor(v *Vendor) error {
	copy := *v
	s.vendors[v.Email] = &copy
	return nil
}

func (s *authStubStore) AddAudit(e AuditEntry) { s.audit = append(s.audit, e) }

func TestAuthRegisterAndLogin(t *testing.T) {
	store := newAuthStubStore()
	svc := NewAuthService(store, func(uid, email string, role Role, ttl time.Duration) (string, error) {
		return "token:" + uid + ":" + string(role), nil
	})
	svc.now = func() time.Time { return time.Unix(0, 0) }
	svc.idGen = func(prefix string, n int) string { return prefix + "1234567" }

	res, err := svc.Register("jane@acme.com", "Secret123", "Jane Smith", "Acme Corp")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.UserID == "" || res.VendorID == "" {
		t.Fatalf("expected ids in result: %+v", res)
	}
	if res.Role != RoleVendor {
		t.Fatalf("registered role = %s, want vendor", res.Role)
	}
	if res.Token != "token:"+res.UserID+":vendor" {
		t.Fatalf("unexpected token %q", res.Token)
	}
	v := store.vendors["jane@acme.com"]
	if v == nil || v.PhishingScore != 100 || v.TrustScore != 0 {
		t.Fatalf("vendor record not created correctly: %+v", v)
	}

	if _, err = svc.Register("jane@acme.com", "Secret123", "Jane", "Acme"); err == nil {
		t.Fatalf("expected conflict error on duplicate registration")
	}

	loginRes, err := svc.Login("jane@acme.com", "Secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loginRes.Token == "" || loginRes.VendorID != res.VendorID {
		t.Fatalf("unexpected login result: %+v", loginRes)
	}

	if _, err := svc.Login("jane@acme.com", "wrong"); err == nil {
		t.Fatalf("expected error for wrong password")
	}
	if _, err := svc.Login("missing@acme.com", "Secret123"); err == nil {
		t.Fatalf("expected error for missing user")
	}
}

func TestRegisterKeepsSeededVendor(t *testing.T) {
	store := newAuthStubStore()
	store.vendors["sarah.chen@techcorp.com"] = &Vendor{ID: "seeded", Email: "sarah.chen@techcorp.com", TrustScore: 88}
	svc := NewAuthService(store, func(uid, email string, role Role, ttl time.Duration) (string, error) {
		return "tok", nil
	})

	res, err := svc.Register("sarah.chen@techcorp.com", "vendor123", "Sarah Chen", "TechCorp Solutions")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.VendorID != "seeded" {
		t.Fatalf("must reuse seeded vendor record, got %q", res.VendorID)
	}
	if store.vendors["sarah.chen@techcorp.com"].TrustScore != 88 {
		t.Fatalf("seeded vendor must not be overwritten")
	}
}

func TestAuthValidation(t *testing.T) {
	store := newAuthStubStore()
	svc := NewAuthService(store, func(uid, email string, role Role, ttl time.Duration) (string, error) {
		return "tok", nil
	})

	if _, err := svc.Register("", "", "", ""); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := svc.Login("", ""); err == nil {
		t.Fatalf("expected validation error on login")
	}
}

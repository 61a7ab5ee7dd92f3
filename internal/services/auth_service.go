package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthStore abstracts the identity records and the vendor record created
// alongside a vendor registration.
type AuthStore interface {
	FindUserByEmail(email string) (*User, error)
	AddUser(u *User) error
	GetVendorByEmail(email string) (*Vendor, error)
	AddVendor(v *Vendor) error
	AddAudit(e AuditEntry)
}

// TokenSigner mints the bearer token for a session identity.
type TokenSigner func(uid, email string, role Role, ttl time.Duration) (string, error)

// AuthService handles vendor registration and login. Vendor users get a
// matching vendor aggregate record keyed by the same email; the core consumes
// the resulting role+email identity read-only to select "this respondent's"
// vendor.
type AuthService struct {
	store     AuthStore
	now       func() time.Time
	idGen     func(prefix string, n int) string
	signToken TokenSigner
	tokenTTL  time.Duration
}

// AuthResult is the session identity handed back to the login collaborator.
type AuthResult struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Role     Role   `json:"role"`
	Name     string `json:"name,omitempty"`
	Company  string `json:"company,omitempty"`
	VendorID string `json:"vendor_id,omitempty"`
}

func NewAuthService(store AuthStore, signer TokenSigner) *AuthService {
	return &AuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		idGen:     func(prefix string, n int) string { return prefix + shortID(n) },
		signToken: signer,
		tokenTTL:  30 * 24 * time.Hour,
	}
}

// Register creates a vendor user plus its vendor record and returns a signed
// session token.
func (s *AuthService) Register(email, password, name, company string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	existing, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("email exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.now()
	userID := s.idGen("u", 7)
	if err := s.store.AddUser(&User{ID: userID, Email: email, PassHash: hash, Role: RoleVendor, Name: name, Company: company, CreatedAt: now}); err != nil {
		return nil, err
	}
	vendorID := ""
	if existingVendor, err := s.store.GetVendorByEmail(email); err != nil {
		return nil, err
	} else if existingVendor != nil {
		// Seeded demo vendors already have an aggregate record.
		vendorID = existingVendor.ID
	} else {
		v := &Vendor{
			ID:            s.idGen("v", 7),
			Name:          name,
			Email:         email,
			Company:       company,
			TrustScore:    0,
			RiskLevel:     RiskLevelForScore(0),
			Status:        VendorPending,
			PhishingScore: 100,
		}
		if err := s.store.AddVendor(v); err != nil {
			return nil, err
		}
		vendorID = v.ID
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(userID, email, RoleVendor, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: email, Action: "user_registered", Target: userID})
	return &AuthResult{Token: token, UserID: userID, Role: RoleVendor, Name: name, Company: company, VendorID: vendorID}, nil
}

// Login verifies credentials and returns a signed session token carrying the
// user's role.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(u.ID, u.Email, u.Role, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	result := &AuthResult{Token: token, UserID: u.ID, Role: u.Role, Name: u.Name, Company: u.Company}
	if u.Role == RoleVendor {
		if v, err := s.store.GetVendorByEmail(u.Email); err == nil && v != nil {
			result.VendorID = v.ID
		}
	}
	return result, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

package api

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/honeyphish/honeyphish/internal/services"
)

var seedCompanies = []string{
	"TechCorp Solutions", "SecureNet Systems", "CloudTech Ltd.", "DataFlow Inc.", "NetworkPro Solutions",
	"CyberGuard Technologies", "InfoSec Partners", "Digital Fortress", "SafeData Systems", "TrustShield Corp",
	"SecureCloud Services", "DataProtect Inc.", "CyberDefense Group", "InfoGuard Solutions", "SecureTech Labs",
	"DigitalSafe Systems", "TrustNet Technologies", "CyberShield Corp", "DataSecure Partners", "InfoTrust Solutions",
}

var seedIndustries = []string{
	"Technology", "Healthcare", "Finance", "Manufacturing", "Retail", "Education", "Government",
	"Energy", "Transportation", "Telecommunications", "Media", "Real Estate", "Insurance", "Legal",
}

var seedFirstNames = []string{"Sarah", "Michael", "Emily", "David", "Lisa", "James", "Maria", "Robert", "Jennifer", "William"}
var seedLastNames = []string{"Chen", "Rodriguez", "Johnson", "Kim", "Wang", "Wilson", "Garcia", "Brown", "Davis", "Miller"}

// demoAccounts are login-capable vendor identities with a known password, so
// the demo environment works out of the box.
var demoAccounts = []struct {
	Email   string
	Name    string
	Company string
}{
	{"sarah.chen@techcorp.com", "Sarah Chen", "TechCorp Solutions"},
	{"michael.r@securenet.com", "Michael Rodriguez", "SecureNet Systems"},
	{"emily.j@cloudtech.com", "Emily Johnson", "CloudTech Ltd."},
	{"david.kim@dataflow.com", "David Kim", "DataFlow Inc."},
	{"lisa.wang@networkpro.com", "Lisa Wang", "NetworkPro Solutions"},
}

const demoVendorPassword = "vendor123"

// SeedDemoData populates a fresh store with 127 generated vendors, five demo
// vendor accounts and the admin user. Generation is deterministic (fixed PRNG
// seed) so restarts produce the same roster; only the assessment timestamps
// shift relative to startup time.
func SeedDemoData(store Store, adminEmail, adminPassword string) error {
	now := time.Now().UTC()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 127; i++ {
		first := seedFirstNames[rng.Intn(len(seedFirstNames))]
		last := seedLastNames[rng.Intn(len(seedLastNames))]
		company := seedCompanies[rng.Intn(len(seedCompanies))]
		industry := seedIndustries[rng.Intn(len(seedIndustries))]

		trust := rng.Intn(40) + 60
		phishing := rng.Intn(30) + 70

		status := services.VendorActive
		if rng.Float64() <= 0.1 {
			if rng.Float64() > 0.5 {
				status = services.VendorPending
			} else {
				status = services.VendorInactive
			}
		}

		domain := strings.ReplaceAll(strings.ToLower(company), " ", "")
		domain = strings.ReplaceAll(domain, ".", "")
		v := &services.Vendor{
			ID:                  fmt.Sprintf("v%03d", i+1),
			Name:                first + " " + last,
			Email:               fmt.Sprintf("%s.%s%d@%s.com", strings.ToLower(first), strings.ToLower(last), i+1, domain),
			Company:             company,
			Industry:            industry,
			TrustScore:          trust,
			Status:              status,
			LastAssessment:      now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
			AssessmentCompleted: rng.Float64() > 0.3,
			PhishingScore:       phishing,
			DocumentsUploaded:   rng.Intn(5),
		}
		if err := store.AddVendor(v); err != nil {
			return fmt.Errorf("seed vendor %s: %w", v.ID, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoVendorPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	for i, acct := range demoAccounts {
		id := fmt.Sprintf("demo-%d", i+1)
		v := &services.Vendor{
			ID:                  id,
			Name:                acct.Name,
			Email:               acct.Email,
			Company:             acct.Company,
			Industry:            "Technology",
			TrustScore:          70 + i*6,
			Status:              services.VendorActive,
			LastAssessment:      now.Add(-time.Duration(i+1) * 24 * time.Hour),
			AssessmentCompleted: true,
			PhishingScore:       85,
		}
		if err := store.AddVendor(v); err != nil {
			return fmt.Errorf("seed demo vendor %s: %w", id, err)
		}
		u := &services.User{
			ID:        "u-" + id,
			Email:     acct.Email,
			PassHash:  hash,
			Role:      services.RoleVendor,
			Name:      acct.Name,
			Company:   acct.Company,
			CreatedAt: now,
		}
		if err := store.AddUser(u); err != nil {
			return fmt.Errorf("seed demo user %s: %w", acct.Email, err)
		}
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &services.User{
		ID:        "u-admin",
		Email:     adminEmail,
		PassHash:  adminHash,
		Role:      services.RoleAdmin,
		Name:      "Administrator",
		CreatedAt: now,
	}
	if err := store.AddUser(admin); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}

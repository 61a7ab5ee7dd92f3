package services

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func readCSV(b []byte) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(string(b)))
	return r.ReadAll()
}

func TestExportLeaderboardCSV(t *testing.T) {
	entries := []LeaderboardEntry{
		{Rank: 1, Vendor: Vendor{ID: "v1", Name: "Sarah Chen", Company: "TechCorp", TrustScore: 96, RiskLevel: RiskLow, PhishingScore: 100}, Badge: &Badge{Name: "Platinum Guardian", Tier: "platinum"}},
		{Rank: 2, Vendor: Vendor{ID: "v2", Name: "Bob Reyes", Company: "Acme", TrustScore: 60, RiskLevel: RiskHigh, PhishingScore: 80}},
	}
	b, err := ExportLeaderboardCSV(entries)
	if err != nil {
		t.Fatalf("export leaderboard: %v", err)
	}
	recs, err := readCSV(b)
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("want 3 rows, got %d", len(recs))
	}
	if got := strings.Join(recs[0], ","); got != "rank,vendor_id,name,company,trust_score,risk_level,badge,phishing_score" {
		t.Fatalf("bad header: %s", got)
	}
	if recs[1][6] != "Platinum Guardian" {
		t.Fatalf("row 1 badge = %q", recs[1][6])
	}
	if recs[2][6] != "" {
		t.Fatalf("row 2 badge should be empty, got %q", recs[2][6])
	}
	if recs[2][0] != "2" || recs[2][4] != "60" {
		t.Fatalf("row 2 rank/score = %q/%q", recs[2][0], recs[2][4])
	}
}

func TestExportPhishingEventsCSV(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	events := []PhishingEvent{
		{ID: "e1", VendorID: "v1", EmailID: "seed-1", Action: ActionClicked, ScoreChange: -10, Timestamp: at},
		{ID: "e2", VendorID: "v1", EmailID: "seed-3", Action: ActionReported, ScoreChange: 15, Timestamp: at.Add(time.Minute)},
	}
	b, err := ExportPhishingEventsCSV(events)
	if err != nil {
		t.Fatalf("export events: %v", err)
	}
	recs, err := readCSV(b)
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("want 3 rows, got %d", len(recs))
	}
	if recs[1][3] != "-10" {
		t.Fatalf("click score change = %q", recs[1][3])
	}
	if recs[2][4] != "2025-03-01T10:31:00Z" {
		t.Fatalf("timestamp = %q", recs[2][4])
	}
}

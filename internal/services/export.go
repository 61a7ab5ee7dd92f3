package services

import (
	"bytes"
	"encoding/csv"
)

// ExportLeaderboardCSV renders current standings into CSV, one row per vendor
// in rank order. Vendors without a badge get an empty badge cell.
func ExportLeaderboardCSV(entries []LeaderboardEntry) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"rank", "vendor_id", "name", "company", "trust_score", "risk_level", "badge", "phishing_score"})
	for _, e := range entries {
		badge := ""
		if e.Badge != nil {
			badge = e.Badge.Name
		}
		rec := []string{
			itoa(e.Rank),
			e.Vendor.ID,
			e.Vendor.Name,
			e.Vendor.Company,
			itoa(e.Vendor.TrustScore),
			string(e.Vendor.RiskLevel),
			badge,
			itoa(e.Vendor.PhishingScore),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportPhishingEventsCSV renders a vendor's simulation ledger for review.
func ExportPhishingEventsCSV(events []PhishingEvent) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"vendor_id", "email_id", "action", "score_change", "timestamp"})
	for _, ev := range events {
		rec := []string{
			ev.VendorID,
			ev.EmailID,
			string(ev.Action),
			itoa(ev.ScoreChange),
			ev.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func itoa(i int) string {
	// local small int->string to avoid importing strconv everywhere
	if i == 0 {
		return "0"
	}
	neg := false
	if i < 0 {
		neg = true
		i = -i
	}
	var b [20]byte
	bp := len(b)
	for i > 0 {
		bp--
		b[bp] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		bp--
		b[bp] = '-'
	}
	return string(b[bp:])
}

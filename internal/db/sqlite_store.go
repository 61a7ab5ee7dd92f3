package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/honeyphish/honeyphish/internal/api"
	"github.com/honeyphish/honeyphish/internal/services"
)

// SQLiteStore persists the vendor aggregate, inbox and ledgers in SQLite.
// It mirrors the in-memory Store semantics: getters return (nil, nil) for
// missing rows, and score-writing operations recompute the vendor's derived
// fields inside the same transaction.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

var _ api.Store = (*SQLiteStore)(nil)

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func int64ToBool(v int64) bool { return v != 0 }

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}

func parseTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *SQLiteStore) AddUser(u *services.User) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO users (id, email, pass_hash, role, name, company, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(u.Email), u.PassHash, string(u.Role), toNullString(u.Name), toNullString(u.Company),
		u.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindUserByEmail(email string) (*services.User, error) {
	row := s.db.QueryRow(`SELECT id, email, pass_hash, role, name, company, created_at
		FROM users WHERE email = ?`, strings.ToLower(email))
	var u services.User
	var role, createdAt string
	var name, company sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PassHash, &role, &name, &company, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	u.Role = services.Role(role)
	u.Name = name.String
	u.Company = company.String
	u.CreatedAt = parseTime(sql.NullString{String: createdAt, Valid: true})
	return &u, nil
}

func (s *SQLiteStore) AddVendor(v *services.Vendor) error {
	recomputeDerived(v)
	badges, err := json.Marshal(badgesOrEmpty(v.Badges))
	if err != nil {
		return fmt.Errorf("marshal badges: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO vendors
		(id, name, email, company, industry, trust_score, risk_level, status, last_assessment,
		 assessment_completed, phishing_score, documents_uploaded, badges)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, strings.ToLower(v.Email), toNullString(v.Company), toNullString(v.Industry),
		v.TrustScore, string(v.RiskLevel), string(v.Status), toNullTime(v.LastAssessment),
		boolToInt64(v.AssessmentCompleted), v.PhishingScore, v.DocumentsUploaded, string(badges))
	if err != nil {
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateVendor(v *services.Vendor) error {
	recomputeDerived(v)
	badges, err := json.Marshal(badgesOrEmpty(v.Badges))
	if err != nil {
		return fmt.Errorf("marshal badges: %w", err)
	}
	res, err := s.db.Exec(`UPDATE vendors SET
		name = ?, email = ?, company = ?, industry = ?, trust_score = ?, risk_level = ?, status = ?,
		last_assessment = ?, assessment_completed = ?, phishing_score = ?, documents_uploaded = ?, badges = ?
		WHERE id = ?`,
		v.Name, strings.ToLower(v.Email), toNullString(v.Company), toNullString(v.Industry),
		v.TrustScore, string(v.RiskLevel), string(v.Status), toNullTime(v.LastAssessment),
		boolToInt64(v.AssessmentCompleted), v.PhishingScore, v.DocumentsUploaded, string(badges), v.ID)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return services.NewNotFoundError("vendor not found")
	}
	return nil
}

const vendorColumns = `id, name, email, company, industry, trust_score, risk_level, status,
	last_assessment, assessment_completed, phishing_score, documents_uploaded, badges`

func scanVendor(row interface{ Scan(...any) error }) (*services.Vendor, error) {
	var v services.Vendor
	var risk, status, badges string
	var company, industry, lastAssessment sql.NullString
	var completed int64
	err := row.Scan(&v.ID, &v.Name, &v.Email, &company, &industry, &v.TrustScore, &risk, &status,
		&lastAssessment, &completed, &v.PhishingScore, &v.DocumentsUploaded, &badges)
	if err != nil {
		return nil, err
	}
	v.Company = company.String
	v.Industry = industry.String
	v.RiskLevel = services.RiskLevel(risk)
	v.Status = services.VendorStatus(status)
	v.LastAssessment = parseTime(lastAssessment)
	v.AssessmentCompleted = int64ToBool(completed)
	if err := json.Unmarshal([]byte(badges), &v.Badges); err != nil {
		v.Badges = nil
	}
	return &v, nil
}

func (s *SQLiteStore) GetVendor(id string) (*services.Vendor, error) {
	v, err := scanVendor(s.db.QueryRow(`SELECT `+vendorColumns+` FROM vendors WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select vendor: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) GetVendorByEmail(email string) (*services.Vendor, error) {
	v, err := scanVendor(s.db.QueryRow(`SELECT `+vendorColumns+` FROM vendors WHERE email = ?`, strings.ToLower(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select vendor by email: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) ListVendors() ([]*services.Vendor, error) {
	rows, err := s.db.Query(`SELECT ` + vendorColumns + ` FROM vendors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var out []*services.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) PutAssessment(a *services.Assessment) error {
	responses, err := json.Marshal(a.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO assessments (id, vendor_id, responses, score, completed_at, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(vendor_id) DO UPDATE SET
			id = excluded.id, responses = excluded.responses, score = excluded.score,
			completed_at = excluded.completed_at, status = excluded.status`,
		a.ID, a.VendorID, string(responses), a.Score, toNullTime(a.CompletedAt), string(a.Status))
	if err != nil {
		return fmt.Errorf("upsert assessment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAssessmentByVendor(vendorID string) (*services.Assessment, error) {
	row := s.db.QueryRow(`SELECT id, vendor_id, responses, score, completed_at, status
		FROM assessments WHERE vendor_id = ?`, vendorID)
	var a services.Assessment
	var responses, status string
	var completedAt sql.NullString
	err := row.Scan(&a.ID, &a.VendorID, &responses, &a.Score, &completedAt, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select assessment: %w", err)
	}
	if err := json.Unmarshal([]byte(responses), &a.Responses); err != nil {
		return nil, fmt.Errorf("unmarshal responses: %w", err)
	}
	a.CompletedAt = parseTime(completedAt)
	a.Status = services.AssessmentStatus(status)
	return &a, nil
}

func (s *SQLiteStore) ApplyAssessmentResult(vendorID string, score int, completedAt time.Time) error {
	v, err := s.GetVendor(vendorID)
	if err != nil {
		return err
	}
	if v == nil {
		return services.NewNotFoundError("vendor not found")
	}
	v.TrustScore = services.ClampScore(score)
	v.LastAssessment = completedAt
	v.AssessmentCompleted = true
	v.Status = services.VendorActive
	return s.UpdateVendor(v)
}

func (s *SQLiteStore) ListInbox(vendorID string) ([]*services.Email, error) {
	rows, err := s.db.Query(`SELECT id, vendor_id, sender, sender_email, subject, ts, is_read,
		is_phishing, content, type, has_attachment, priority
		FROM emails WHERE vendor_id = ? ORDER BY rowid DESC`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}
	defer rows.Close()
	var out []*services.Email
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEmail(row interface{ Scan(...any) error }) (*services.Email, error) {
	var e services.Email
	var sender, senderEmail, subject, ts, content, priority sql.NullString
	var typ string
	var isRead, isPhishing, hasAttachment int64
	err := row.Scan(&e.ID, &e.VendorID, &sender, &senderEmail, &subject, &ts, &isRead,
		&isPhishing, &content, &typ, &hasAttachment, &priority)
	if err != nil {
		return nil, err
	}
	e.Sender = sender.String
	e.SenderEmail = senderEmail.String
	e.Subject = subject.String
	e.Timestamp = parseTime(ts)
	e.IsRead = int64ToBool(isRead)
	e.IsPhishing = int64ToBool(isPhishing)
	e.Content = content.String
	e.Type = services.EmailType(typ)
	e.HasAttachment = int64ToBool(hasAttachment)
	e.Priority = priority.String
	return &e, nil
}

func (s *SQLiteStore) GetEmail(vendorID, emailID string) (*services.Email, error) {
	row := s.db.QueryRow(`SELECT id, vendor_id, sender, sender_email, subject, ts, is_read,
		is_phishing, content, type, has_attachment, priority
		FROM emails WHERE vendor_id = ? AND id = ?`, vendorID, emailID)
	e, err := scanEmail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select email: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) MarkEmailRead(vendorID, emailID string) error {
	res, err := s.db.Exec(`UPDATE emails SET is_read = 1 WHERE vendor_id = ? AND id = ?`, vendorID, emailID)
	if err != nil {
		return fmt.Errorf("mark email read: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return services.NewNotFoundError("email not found")
	}
	return nil
}

func (s *SQLiteStore) PrependEmail(e *services.Email) error {
	_, err := s.db.Exec(`INSERT INTO emails
		(id, vendor_id, sender, sender_email, subject, ts, is_read, is_phishing, content, type, has_attachment, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.VendorID, toNullString(e.Sender), toNullString(e.SenderEmail), toNullString(e.Subject),
		toNullTime(e.Timestamp), boolToInt64(e.IsRead), boolToInt64(e.IsPhishing), toNullString(e.Content),
		string(e.Type), boolToInt64(e.HasAttachment), toNullString(e.Priority))
	if err != nil {
		return fmt.Errorf("insert email: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddPhishingEvent(ev *services.PhishingEvent) error {
	_, err := s.db.Exec(`INSERT INTO phishing_events (id, vendor_id, email_id, action, ts, score_change)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.VendorID, ev.EmailID, string(ev.Action), ev.Timestamp.UTC().Format(time.RFC3339Nano), ev.ScoreChange)
	if err != nil {
		return fmt.Errorf("insert phishing event: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListPhishingEvents(vendorID string) ([]*services.PhishingEvent, error) {
	rows, err := s.db.Query(`SELECT id, vendor_id, email_id, action, ts, score_change
		FROM phishing_events WHERE vendor_id = ? ORDER BY rowid`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list phishing events: %w", err)
	}
	defer rows.Close()
	var out []*services.PhishingEvent
	for rows.Next() {
		var ev services.PhishingEvent
		var action, ts string
		if err := rows.Scan(&ev.ID, &ev.VendorID, &ev.EmailID, &action, &ts, &ev.ScoreChange); err != nil {
			return nil, fmt.Errorf("scan phishing event: %w", err)
		}
		ev.Action = services.PhishingAction(action)
		ev.Timestamp = parseTime(sql.NullString{String: ts, Valid: true})
		out = append(out, &ev)
	}
	return out, rows.Err()
}

// ApplyPhishingDelta clamps inside a transaction so concurrent interactions
// cannot push the score outside [0,100].
func (s *SQLiteStore) ApplyPhishingDelta(vendorID string, delta int) (int, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var prev, trust int
	err = tx.QueryRow(`SELECT phishing_score, trust_score FROM vendors WHERE id = ?`, vendorID).Scan(&prev, &trust)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, services.NewNotFoundError("vendor not found")
	}
	if err != nil {
		return 0, 0, fmt.Errorf("select phishing score: %w", err)
	}
	next := services.ClampScore(prev + delta)
	if _, err := tx.Exec(`UPDATE vendors SET phishing_score = ? WHERE id = ?`, next, vendorID); err != nil {
		return 0, 0, fmt.Errorf("update phishing score: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit: %w", err)
	}
	return prev, next, nil
}

func (s *SQLiteStore) AddDocument(d *services.Document) error {
	_, err := s.db.Exec(`INSERT INTO documents (id, vendor_id, name, type, uploaded_at, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.VendorID, d.Name, toNullString(d.Type), d.UploadedAt.UTC().Format(time.RFC3339Nano), string(d.Status))
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListDocuments(vendorID string) ([]*services.Document, error) {
	rows, err := s.db.Query(`SELECT id, vendor_id, name, type, uploaded_at, status
		FROM documents WHERE vendor_id = ? ORDER BY rowid`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var out []*services.Document
	for rows.Next() {
		var d services.Document
		var typ sql.NullString
		var uploadedAt, status string
		if err := rows.Scan(&d.ID, &d.VendorID, &d.Name, &typ, &uploadedAt, &status); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Type = typ.String
		d.UploadedAt = parseTime(sql.NullString{String: uploadedAt, Valid: true})
		d.Status = services.DocumentStatus(status)
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) IncrementDocuments(vendorID string) error {
	res, err := s.db.Exec(`UPDATE vendors SET documents_uploaded = documents_uploaded + 1 WHERE id = ?`, vendorID)
	if err != nil {
		return fmt.Errorf("increment documents: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return services.NewNotFoundError("vendor not found")
	}
	return nil
}

func (s *SQLiteStore) AddAudit(e services.AuditEntry) {
	_, err := s.db.Exec(`INSERT INTO audit_log (ts, actor, action, target, note)
		VALUES (?, ?, ?, ?, ?)`,
		e.Time.UTC().Format(time.RFC3339Nano), toNullString(e.Actor), e.Action, toNullString(e.Target), toNullString(e.Note))
	if err != nil {
		// audit writes are best effort, matching the memory store's no-error surface
		log.Printf("sqlite store: insert audit: %v", err)
	}
}

func (s *SQLiteStore) ListAudit() []services.AuditEntry {
	rows, err := s.db.Query(`SELECT ts, actor, action, target, note FROM audit_log ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var out []services.AuditEntry
	for rows.Next() {
		var e services.AuditEntry
		var ts string
		var actor, target, note sql.NullString
		if err := rows.Scan(&ts, &actor, &e.Action, &target, &note); err != nil {
			return out
		}
		e.Time = parseTime(sql.NullString{String: ts, Valid: true})
		e.Actor = actor.String
		e.Target = target.String
		e.Note = note.String
		out = append(out, e)
	}
	return out
}

func recomputeDerived(v *services.Vendor) {
	v.RiskLevel = services.RiskLevelForScore(v.TrustScore)
	v.Badges = services.BadgesForScore(v.TrustScore)
}

func badgesOrEmpty(b []string) []string {
	if b == nil {
		return []string{}
	}
	return b
}

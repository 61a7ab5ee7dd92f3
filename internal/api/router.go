package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/honeyphish/honeyphish/internal/middleware"
	"github.com/honeyphish/honeyphish/internal/services"
)

// Router wires the HTTP surface to the domain services over a shared Store.
type Router struct {
	store       Store
	auth        *services.AuthService
	vendors     *services.VendorService
	assessments *services.AssessmentService
	phishing    *services.PhishingService
	documents   *services.DocumentService
	assistant   *services.AssistantService
}

func NewRouter(store Store) *Router {
	signer := func(uid, email string, role services.Role, ttl time.Duration) (string, error) {
		return middleware.SignToken(uid, email, string(role), ttl)
	}
	return &Router{
		store:       store,
		auth:        services.NewAuthService(store, signer),
		vendors:     services.NewVendorService(store),
		assessments: services.NewAssessmentService(store),
		phishing:    services.NewPhishingService(store),
		documents:   services.NewDocumentService(store),
		assistant:   services.NewAssistantService(),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleAuthRegister) // POST
	mux.HandleFunc("/api/auth/login", rt.handleAuthLogin)       // POST
	mux.HandleFunc("/api/catalog", rt.handleCatalog)            // GET
	mux.HandleFunc("/api/vendors", rt.handleVendors)            // GET (admin), POST (admin)
	mux.HandleFunc("/api/vendors/", rt.handleVendorByID)        // GET /api/vendors/{id}
	mux.HandleFunc("/api/assessment", rt.handleAssessmentGet)   // GET
	mux.HandleFunc("/api/assessment/draft", rt.handleAssessmentDraft)
	mux.HandleFunc("/api/assessment/submit", rt.handleAssessmentSubmit)
	mux.HandleFunc("/api/inbox", rt.handleInbox)         // GET
	mux.HandleFunc("/api/inbox/", rt.handleInboxAction)  // POST /api/inbox/{id}/open|click|report
	mux.HandleFunc("/api/phishing/events", rt.handlePhishingEvents)
	mux.HandleFunc("/api/documents", rt.handleDocuments) // GET, POST
	mux.HandleFunc("/api/leaderboard", rt.handleLeaderboard)
	mux.HandleFunc("/api/leaderboard/export", rt.handleLeaderboardExport)
	mux.HandleFunc("/api/assistant", rt.handleAssistant) // POST
	mux.HandleFunc("/api/audit", rt.handleAudit)         // GET (admin)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps ServiceError codes onto HTTP statuses; anything uncoded is a 500.
func writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		}
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// claims returns the authenticated identity or writes 401.
func claims(w http.ResponseWriter, r *http.Request) (*middleware.Claims, bool) {
	c, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeErr(w, services.NewUnauthorizedError("authentication required"))
		return nil, false
	}
	return c, true
}

// requireAdmin writes 401/403 unless the caller is an admin.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	c, ok := claims(w, r)
	if !ok {
		return false
	}
	if c.Role != string(services.RoleAdmin) {
		writeErr(w, services.NewForbiddenError("admin only"))
		return false
	}
	return true
}

// vendorID resolves "which vendor is this request about". Vendor users always
// act on their own record (looked up by email); admins pass ?vendor_id=.
func (rt *Router) vendorID(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, ok := claims(w, r)
	if !ok {
		return "", false
	}
	if c.Role == string(services.RoleAdmin) {
		id := r.URL.Query().Get("vendor_id")
		if id == "" {
			writeErr(w, services.NewInvalidError("vendor_id required"))
			return "", false
		}
		return id, true
	}
	v, err := rt.store.GetVendorByEmail(c.Email)
	if err != nil {
		writeErr(w, err)
		return "", false
	}
	if v == nil {
		writeErr(w, services.NewNotFoundError("vendor not found"))
		return "", false
	}
	return v.ID, true
}

// POST /api/auth/register {email, password, name, company}
func (rt *Router) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Company  string `json:"company"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, services.NewInvalidError("bad json"))
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password, req.Name, req.Company)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// POST /api/auth/login {email, password}
func (rt *Router) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, services.NewInvalidError("bad json"))
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/catalog
func (rt *Router) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": services.Catalog()})
}

// GET /api/vendors (admin), POST /api/vendors (admin)
func (rt *Router) handleVendors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !requireAdmin(w, r) {
			return
		}
		vs, err := rt.vendors.List()
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"vendors": vs, "count": len(vs)})
	case http.MethodPost:
		if !requireAdmin(w, r) {
			return
		}
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Company  string `json:"company"`
			Industry string `json:"industry"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, services.NewInvalidError("bad json"))
			return
		}
		v, err := rt.vendors.Register(req.Name, req.Email, req.Company, req.Industry)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/vendors/{id}. Admins read anyone, vendors only themselves.
func (rt *Router) handleVendorByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/vendors/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	c, ok := claims(w, r)
	if !ok {
		return
	}
	v, err := rt.vendors.Get(id)
	if err != nil {
		writeErr(w, err)
		return
	}
	if c.Role != string(services.RoleAdmin) && !strings.EqualFold(v.Email, c.Email) {
		writeErr(w, services.NewForbiddenError("not your vendor record"))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// GET /api/assessment
func (rt *Router) handleAssessmentGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vid, ok := rt.vendorID(w, r)
	if !ok {
		return
	}
	a, err := rt.assessments.Get(vid)
	if err != nil {
		writeErr(w, err)
		return
	}
	// a is null when the vendor has not started yet
	writeJSON(w, http.StatusOK, map[string]any{"assessment": a})
}

// POST /api/assessment/draft {responses}
func (rt *Router) handleAssessmentDraft(w http.ResponseWriter, r *http.Request) {
	rt.handleAssessmentWrite(w, r, rt.assessments.SaveDraft)
}

// POST /api/assessment/submit {responses}
func (rt *Router) handleAssessmentSubmit(w http.ResponseWriter, r *http.Request) {
	rt.handleAssessmentWrite(w, r, rt.assessments.Submit)
}

func (rt *Router) handleAssessmentWrite(w http.ResponseWriter, r *http.Request, op func(string, map[string]any) (*services.Assessment, error)) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vid, ok := rt.vendorID(w, r)
	if !ok {
		return
	}
	var req struct {
		Responses map[string]any `json:"responses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, services.NewInvalidError("bad json"))
		return
	}
	a, err := op(vid, req.Responses)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"assessment":     a,
		"section_scores": rt.assessments.SectionScores(a.Responses),
	})
}

// GET /api/inbox
func (rt *Router) handleInbox(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vid, ok := rt.vendorID(w, r)
	if !ok {
		return
	}
	emails, err := rt.phishing.Inbox(vid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"emails": emails})
}

// POST /api/inbox/{id}/open | /api/inbox/{id}/click | /api/inbox/{id}/report
func (rt *Router) handleInboxAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/inbox/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	vid, ok := rt.vendorID(w, r)
	if !ok {
		return
	}
	emailID := parts[0]
	switch parts[1] {
	case "open":
		email, err := rt.phishing.Open(vid, emailID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, email)
	case "click":
		res, err := rt.phishing.ClickLink(vid, emailID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	case "report":
		res, err := rt.phishing.Report(vid, emailID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	default:
		http.NotFound(w, r)
	}
}

// GET /api/phishing/events?vendor_id=... (admin)
func (rt *Router) handlePhishingEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !requireAdmin(w, r) {
		return
	}
	vid := r.URL.Query().Get("vendor_id")
	if vid == "" {
		writeErr(w, services.NewInvalidError("vendor_id required"))
		return
	}
	events, err := rt.store.ListPhishingEvents(vid)
	if err != nil {
		writeErr(w, err)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		rows := make([]services.PhishingEvent, 0, len(events))
		for _, ev := range events {
			rows = append(rows, *ev)
		}
		b, err := services.ExportPhishingEventsCSV(rows)
		if err != nil {
			writeErr(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=phishing_events.csv")
		_, _ = w.Write(b)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// GET /api/documents, POST /api/documents {name, type}
func (rt *Router) handleDocuments(w http.ResponseWriter, r *http.Request) {
	vid, ok := rt.vendorID(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		docs, err := rt.documents.List(vid)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, services.NewInvalidError("bad json"))
			return
		}
		doc, err := rt.documents.Upload(vid, req.Name, req.Type)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, doc)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/leaderboard?search=...&badge=...
func (rt *Router) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := rt.vendors.Leaderboard(r.URL.Query().Get("search"), r.URL.Query().Get("badge"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}

// GET /api/leaderboard/export
func (rt *Router) handleLeaderboardExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	entries, err := rt.vendors.Leaderboard(r.URL.Query().Get("search"), r.URL.Query().Get("badge"))
	if err != nil {
		writeErr(w, err)
		return
	}
	b, err := services.ExportLeaderboardCSV(entries)
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=leaderboard.csv")
	_, _ = w.Write(b)
}

// POST /api/assistant {message}
func (rt *Router) handleAssistant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, services.NewInvalidError("bad json"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeErr(w, services.NewInvalidError("message required"))
		return
	}
	writeJSON(w, http.StatusOK, rt.assistant.Reply(req.Message))
}

// GET /api/audit (admin)
func (rt *Router) handleAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !requireAdmin(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": rt.store.ListAudit()})
}

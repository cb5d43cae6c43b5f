// Package apitest runs an in-process stand-in for the placement backend.
// Tests seed fixtures, point a gateway client at URL() and assert on both
// the decoded results and the recorded requests.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
)

// Secret signs every token the backend mints. Fixed on purpose: tests can
// mint their own tokens with Token and ExpiredToken.
var Secret = []byte("apitest-secret")

// Request is one recorded call, captured before routing.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Backend is the fake server plus its mutable fixture state.
type Backend struct {
	tb  testing.TB
	srv *httptest.Server

	mu             sync.Mutex
	nextID         int64
	passwords      map[string]string
	users          []models.User
	students       []models.StudentProfile
	opportunities  []models.Opportunity
	records        []models.ApplicationRecord
	metrics        models.MLMetrics
	requests       []Request
	companyIDs     []string
	usedCompanyIDs map[string]bool
}

// New starts the backend and registers shutdown with the test's cleanup.
func New(tb testing.TB) *Backend {
	tb.Helper()
	b := &Backend{
		tb:             tb,
		nextID:         1,
		passwords:      make(map[string]string),
		companyIDs:     []string{"CMP001", "CMP002", "CMP003"},
		usedCompanyIDs: make(map[string]bool),
	}
	b.srv = httptest.NewServer(b.router())
	tb.Cleanup(b.srv.Close)
	return b
}

func (b *Backend) URL() string { return b.srv.URL }

// Requests returns a copy of everything recorded so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// RequestsTo filters recorded requests by method and exact path.
func (b *Backend) RequestsTo(method, path string) []Request {
	var out []Request
	for _, req := range b.Requests() {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

func (b *Backend) id() int64 {
	id := b.nextID
	b.nextID++
	return id
}

// SeedUser registers an account with a login password and returns it.
func (b *Backend) SeedUser(username, password, role string) models.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := models.User{
		ID:       b.id(),
		Username: username,
		Email:    username + "@example.edu",
		Role:     role,
		IsActive: true,
	}
	b.users = append(b.users, u)
	b.passwords[username] = password
	return u
}

func (b *Backend) SeedStudent(p models.StudentProfile) models.StudentProfile {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.ID == 0 {
		p.ID = b.id()
	}
	b.students = append(b.students, p)
	return p
}

func (b *Backend) SeedOpportunity(o models.Opportunity) models.Opportunity {
	b.mu.Lock()
	defer b.mu.Unlock()
	if o.ID == 0 {
		o.ID = b.id()
	}
	b.opportunities = append(b.opportunities, o)
	return o
}

func (b *Backend) SeedRecord(rec models.ApplicationRecord) models.ApplicationRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	if rec.ID == 0 {
		rec.ID = b.id()
	}
	b.records = append(b.records, rec)
	return rec
}

func (b *Backend) SetMetrics(m models.MLMetrics) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metrics = m
}

// Record looks up a seeded application record by id.
func (b *Backend) Record(id int64) (models.ApplicationRecord, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rec := range b.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.ApplicationRecord{}, false
}

// Token mints a bearer token the backend will accept for one hour.
func Token(tb testing.TB, username, role string) string {
	tb.Helper()
	return signed(tb, username, role, time.Now().Add(time.Hour))
}

// ExpiredToken mints a token whose expiry is already in the past.
func ExpiredToken(tb testing.TB, username, role string) string {
	tb.Helper()
	return signed(tb, username, role, time.Now().Add(-time.Hour))
}

func signed(tb testing.TB, username, role string, exp time.Time) string {
	tb.Helper()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  exp.Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(Secret)
	if err != nil {
		tb.Fatalf("sign token: %v", err)
	}
	return s
}

func (b *Backend) router() http.Handler {
	r := mux.NewRouter()
	r.Use(b.record)

	r.HandleFunc("/api/auth/login", b.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/register/company", b.handleRegisterCompany).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/company-ids", b.handleCompanyIDs).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/logout", b.handleLogout).Methods(http.MethodPost)
	r.Handle("/api/auth/me", b.auth("", http.HandlerFunc(b.handleMe))).Methods(http.MethodGet)

	// registered before the admin subrouter: the application listing is
	// read by both the admin and company views
	r.Handle("/api/admin/placements/{id}/records",
		b.auth("", b.requireRoles(http.HandlerFunc(b.handleOpportunityRecords), models.RoleAdmin, models.RoleCompany))).
		Methods(http.MethodGet)

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(b.roleGuard(models.RoleAdmin))
	admin.HandleFunc("/users", b.handleListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users", b.handleCreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", b.handleUpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", b.handleDeactivateUser).Methods(http.MethodDelete)
	admin.HandleFunc("/students", b.handleListStudents).Methods(http.MethodGet)
	admin.HandleFunc("/students/{id}", b.handleStudent).Methods(http.MethodGet)
	admin.HandleFunc("/students/{id}", b.handleAdminUpdateStudent).Methods(http.MethodPut)
	admin.HandleFunc("/students/{id}/verify", b.handleToggleVerify).Methods(http.MethodPut)
	admin.HandleFunc("/placements", b.handleListOpportunities).Methods(http.MethodGet)
	admin.HandleFunc("/placements", b.handleCreateOpportunity).Methods(http.MethodPost)
	admin.HandleFunc("/placements/{id}", b.handleUpdateOpportunity).Methods(http.MethodPut)
	admin.HandleFunc("/placements/{id}", b.handleDeleteOpportunity).Methods(http.MethodDelete)
	admin.HandleFunc("/recalculate-scores", b.handleRecalculate).Methods(http.MethodPost)
	admin.HandleFunc("/reports", b.handleReport).Methods(http.MethodGet)
	admin.HandleFunc("/reports/pdf", b.handleReport).Methods(http.MethodGet)

	student := r.PathPrefix("/api/student").Subrouter()
	student.Use(b.roleGuard(models.RoleStudent))
	student.HandleFunc("/profile", b.handleProfile).Methods(http.MethodGet)
	student.HandleFunc("/profile", b.handleUpdateProfile).Methods(http.MethodPut)
	student.HandleFunc("/placements", b.handleStudentOpportunities).Methods(http.MethodGet)
	student.HandleFunc("/placements/{id}/apply", b.handleApply).Methods(http.MethodPost)
	student.HandleFunc("/status", b.handleStatus).Methods(http.MethodGet)
	student.HandleFunc("/applications/{id}/flow", b.handleFlow).Methods(http.MethodGet)
	student.HandleFunc("/upload/{kind}", b.handleUpload).Methods(http.MethodPost)
	student.HandleFunc("/evaluation/{kind}", b.handleEvaluation).Methods(http.MethodGet)

	company := r.PathPrefix("/api/company").Subrouter()
	company.Use(b.roleGuard(models.RoleCompany))
	company.HandleFunc("/students", b.handleListStudents).Methods(http.MethodGet)
	company.HandleFunc("/students/{id}", b.handleStudent).Methods(http.MethodGet)
	company.HandleFunc("/placements", b.handleListOpportunities).Methods(http.MethodGet)
	company.HandleFunc("/placements", b.handleCreateOpportunity).Methods(http.MethodPost)
	company.HandleFunc("/placements/{id}", b.handleUpdateOpportunity).Methods(http.MethodPut)
	company.HandleFunc("/placements/{id}", b.handleDeleteOpportunity).Methods(http.MethodDelete)
	company.HandleFunc("/reports", b.handleCompanyReports).Methods(http.MethodGet)
	company.HandleFunc("/applications/{id}/status", b.handleStatusUpdate).Methods(http.MethodPut)

	ml := r.PathPrefix("/api/ml").Subrouter()
	ml.Use(b.roleGuard(""))
	ml.HandleFunc("/metrics", b.handleMetrics).Methods(http.MethodGet)
	ml.HandleFunc("/predict/my-profile", b.handlePredict).Methods(http.MethodGet)
	ml.HandleFunc("/recommend", b.handleRecommend).Methods(http.MethodPost)
	ml.HandleFunc("/feature-importance", b.handleFeatureImportance).Methods(http.MethodGet)

	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		b.mu.Lock()
		b.requests = append(b.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// bearerClaims validates the bearer token and returns its claims.
func bearerClaims(r *http.Request) (jwt.MapClaims, error) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" || raw == r.Header.Get("Authorization") {
		return nil, fmt.Errorf("missing bearer token")
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// auth wraps a handler with token validation; role "" accepts any role.
func (b *Backend) auth(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := bearerClaims(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}
		if role != "" {
			if got, _ := claims["role"].(string); got != role {
				writeError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireRoles admits callers whose token carries any of the given roles.
func (b *Backend) requireRoles(next http.Handler, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := bearerClaims(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}
		got, _ := claims["role"].(string)
		for _, role := range roles {
			if got == role {
				next.ServeHTTP(w, r)
				return
			}
		}
		writeError(w, http.StatusForbidden, "Insufficient permissions")
	})
}

func (b *Backend) roleGuard(role string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return b.auth(role, next)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Username != req.Username {
			continue
		}
		if b.passwords[u.Username] != req.Password {
			break
		}
		if !u.IsActive {
			writeError(w, http.StatusForbidden, "Account is deactivated")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"access_token": Token(b.tb, u.Username, u.Role),
			"role":         u.Role,
			"username":     u.Username,
		})
		return
	}
	writeError(w, http.StatusUnauthorized, "Invalid username or password")
}

func (b *Backend) handleRegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyID   string `json:"company_id"`
		CompanyName string `json:"company_name"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id := strings.ToUpper(strings.TrimSpace(req.CompanyID))
	name := strings.TrimSpace(req.CompanyName)
	if id == "" || name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "company_id, company_name, and password are required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	verified := false
	for _, known := range b.companyIDs {
		if known == id {
			verified = true
			break
		}
	}
	if !verified {
		writeError(w, http.StatusForbidden, "Invalid or unverified Company ID. Contact the placement office.")
		return
	}
	if b.usedCompanyIDs[id] {
		writeError(w, http.StatusConflict, "This Company ID has already been registered")
		return
	}
	for _, u := range b.users {
		if u.Username == name {
			writeError(w, http.StatusConflict, "Company name already taken as username")
			return
		}
	}

	u := models.User{
		ID:       b.id(),
		Username: name,
		Email:    strings.ToLower(id) + "@company.placement.edu",
		Role:     models.RoleCompany,
		IsActive: true,
	}
	b.users = append(b.users, u)
	b.passwords[name] = req.Password
	b.usedCompanyIDs[id] = true
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":      "Company registered successfully",
		"access_token": Token(b.tb, u.Username, u.Role),
		"role":         u.Role,
		"username":     u.Username,
	})
}

func (b *Backend) handleCompanyIDs(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"company_ids": b.companyIDs})
}

func (b *Backend) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (b *Backend) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, err := bearerClaims(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}
	username, _ := claims["sub"].(string)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Username == username {
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func (b *Backend) handleListUsers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.User, 0, len(b.users))
	for _, u := range b.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Username == req.Username {
			writeError(w, http.StatusConflict, "Username already exists")
			return
		}
	}
	u := models.User{ID: b.id(), Username: req.Username, Email: req.Email, Role: req.Role, IsActive: true}
	b.users = append(b.users, u)
	b.passwords[u.Username] = req.Password
	writeJSON(w, http.StatusCreated, map[string]any{"message": "User created", "user": u})
}

func (b *Backend) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var req struct {
		Username string  `json:"username"`
		Email    string  `json:"email"`
		Role     string  `json:"role"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.users {
		if b.users[i].ID != id {
			continue
		}
		b.users[i].Username = req.Username
		b.users[i].Email = req.Email
		b.users[i].Role = req.Role
		if req.Password != nil {
			b.passwords[req.Username] = *req.Password
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "User updated", "user": b.users[i]})
		return
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func (b *Backend) handleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.users {
		if b.users[i].ID == id {
			b.users[i].IsActive = false
			writeJSON(w, http.StatusOK, map[string]string{"message": "User deactivated"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func (b *Backend) handleListStudents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minCGPA, _ := strconv.ParseFloat(q.Get("min_cgpa"), 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.StudentProfile, 0, len(b.students))
	for _, s := range b.students {
		if dep := q.Get("department"); dep != "" && s.Department != dep {
			continue
		}
		if s.CGPA < minCGPA {
			continue
		}
		if q.Get("verified") == "true" && !s.IsVerified {
			continue
		}
		if ps := q.Get("placement_status"); ps != "" && s.PlacementStatus != ps {
			continue
		}
		out = append(out, s)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleStudent(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.students {
		if s.ID == id {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Student not found")
}

// handleAdminUpdateStudent applies the provided fields only; blanks and
// zeroes leave the stored value alone.
func (b *Backend) handleAdminUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var p models.StudentProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.students {
		if b.students[i].ID != id {
			continue
		}
		if p.FullName != "" {
			b.students[i].FullName = p.FullName
		}
		if p.Department != "" {
			b.students[i].Department = p.Department
		}
		if p.RollNumber != "" {
			b.students[i].RollNumber = p.RollNumber
		}
		if p.CGPA != 0 {
			b.students[i].CGPA = p.CGPA
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Profile updated", "profile": b.students[i]})
		return
	}
	writeError(w, http.StatusNotFound, "Profile not found")
}

func (b *Backend) handleToggleVerify(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.students {
		if b.students[i].ID == id {
			b.students[i].IsVerified = !b.students[i].IsVerified
			writeJSON(w, http.StatusOK, map[string]any{
				"message":     "Verification updated",
				"is_verified": b.students[i].IsVerified,
			})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Student not found")
}

func (b *Backend) handleListOpportunities(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Opportunity, len(b.opportunities))
	copy(out, b.opportunities)
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleCreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var o models.Opportunity
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	o.ID = b.id()
	b.opportunities = append(b.opportunities, o)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Placement created", "opportunity": o})
}

func (b *Backend) handleUpdateOpportunity(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var o models.Opportunity
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.opportunities {
		if b.opportunities[i].ID == id {
			o.ID = id
			b.opportunities[i] = o
			writeJSON(w, http.StatusOK, map[string]any{"message": "Placement updated", "opportunity": o})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Placement not found")
}

func (b *Backend) handleDeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.opportunities {
		if b.opportunities[i].ID == id {
			b.opportunities = append(b.opportunities[:i], b.opportunities[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Placement deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Placement not found")
}

func (b *Backend) handleOpportunityRecords(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.ApplicationRecord, 0)
	for _, rec := range b.records {
		if rec.OpportunityID == id {
			out = append(out, rec)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleProfile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.students) == 0 {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, b.students[0])
}

func (b *Backend) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p models.StudentProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.students) == 0 {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	p.ID = b.students[0].ID
	b.students[0] = p
	writeJSON(w, http.StatusOK, map[string]any{"message": "Profile updated", "profile": p})
}

func (b *Backend) handleStudentOpportunities(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Opportunity, len(b.opportunities))
	copy(out, b.opportunities)
	for i := range out {
		for _, rec := range b.records {
			if rec.OpportunityID == out[i].ID {
				out[i].AppliedStatus = rec.Status
			}
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleApply(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rec := range b.records {
		if rec.OpportunityID == id {
			writeError(w, http.StatusConflict, "Already applied to this placement")
			return
		}
	}
	var opp *models.Opportunity
	for i := range b.opportunities {
		if b.opportunities[i].ID == id {
			opp = &b.opportunities[i]
			break
		}
	}
	if opp == nil {
		writeError(w, http.StatusNotFound, "Placement not found")
		return
	}
	rec := models.ApplicationRecord{
		ID:            b.id(),
		OpportunityID: id,
		Status:        models.StatusApplied,
		AppliedAt:     time.Now().UTC().Format(time.RFC3339),
		CompanyName:   opp.CompanyName,
		RoleTitle:     opp.RoleTitle,
	}
	b.records = append(b.records, rec)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Application submitted", "record": rec})
}

func (b *Backend) handleStatus(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	report := models.StatusReport{PlacementStatus: "not placed", Applications: b.records}
	if len(b.students) > 0 && b.students[0].PlacementStatus != "" {
		report.PlacementStatus = b.students[0].PlacementStatus
		report.PlacementCompany = b.students[0].PlacementCompany
	}
	writeJSON(w, http.StatusOK, report)
}

// flowFor builds the ordered stage manifest for a record's status, keeping
// the at-most-one-active contract.
func flowFor(status string) []models.FlowStage {
	if status == models.StatusRejected {
		return []models.FlowStage{
			{Stage: "Applied", Completed: true},
			{Stage: "Rejected", Active: true},
		}
	}
	order := map[string]int{
		models.StatusApplied:     0,
		models.StatusShortlisted: 1,
		models.StatusSelected:    2,
	}
	current := order[status]
	stages := []string{"Applied", "Shortlisted", "Selected"}
	out := make([]models.FlowStage, len(stages))
	for i, name := range stages {
		out[i] = models.FlowStage{
			Stage:     name,
			Completed: i < current,
			Active:    i == current,
		}
	}
	return out
}

func (b *Backend) handleFlow(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rec := range b.records {
		if rec.ID == id {
			writeJSON(w, http.StatusOK, models.ApplicationFlow{Application: rec, Flow: flowFor(rec.Status)})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Application not found")
}

func (b *Backend) handleCompanyReports(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	report := models.CompanyReport{
		TotalStudents:       len(b.students),
		DepartmentBreakdown: map[string]int{},
		Students:            b.students,
	}
	var cgpaSum, scoreSum float64
	for _, s := range b.students {
		cgpaSum += s.CGPA
		scoreSum += s.EmployabilityScore
		report.DepartmentBreakdown[s.Department]++
	}
	if len(b.students) > 0 {
		report.AverageCGPA = cgpaSum / float64(len(b.students))
		report.AverageScore = scoreSum / float64(len(b.students))
	}
	writeJSON(w, http.StatusOK, report)
}

// legalTransition enforces the hiring pipeline: forward one step at a
// time, rejection only from a non-terminal stage.
func legalTransition(from, to string) bool {
	switch from {
	case models.StatusApplied:
		return to == models.StatusShortlisted || to == models.StatusRejected
	case models.StatusShortlisted:
		return to == models.StatusSelected || to == models.StatusRejected
	default:
		return false
	}
}

func (b *Backend) handleStatusUpdate(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.records {
		if b.records[i].ID != id {
			continue
		}
		if !legalTransition(b.records[i].Status, req.Status) {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("Cannot move application from %s to %s", b.records[i].Status, req.Status))
			return
		}
		b.records[i].Status = req.Status
		writeJSON(w, http.StatusOK, map[string]any{"message": "Status updated", "record": b.records[i]})
		return
	}
	writeError(w, http.StatusNotFound, "Application not found")
}

func (b *Backend) handleMetrics(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.metrics)
}

func (b *Backend) handlePredict(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.students) == 0 {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	s := b.students[0]
	placed := 0
	status := "Not Placed"
	if s.CGPA >= 7 {
		placed = 1
		status = "Placed"
	}
	salary := s.CGPA * 0.8
	writeJSON(w, http.StatusOK, models.ProfilePrediction{
		PlacementPrediction: models.PlacementPrediction{
			Prediction:           placed,
			Status:               status,
			Confidence:           0.85,
			ProbabilityPlaced:    0.85,
			ProbabilityNotPlaced: 0.15,
		},
		SalaryPrediction: models.SalaryPrediction{
			PredictedSalaryLPA: salary,
			SalaryRange:        models.SalaryRange{Min: salary - 1, Max: salary + 1},
		},
		ProfileFeatures: models.ProfileFeatures{
			CGPA:               s.CGPA,
			ProgrammingRating:  s.ProgrammingRating,
			SoftSkillsRating:   s.SoftSkillsRating,
			InternshipCount:    s.InternshipCount,
			CertificationCount: len(s.Certifications),
		},
	})
}

func (b *Backend) handleFeatureImportance(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"feature_importances": b.metrics.FeatureImportances})
}

func (b *Backend) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Skills string `json:"skills"`
		TopN   int    `json:"top_n"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	wanted := strings.Split(strings.ToLower(req.Skills), ",")

	b.mu.Lock()
	defer b.mu.Unlock()
	recs := make([]models.Recommendation, 0)
	for _, s := range b.students {
		matched := 0
		for _, want := range wanted {
			want = strings.TrimSpace(want)
			for _, have := range s.Skills {
				if strings.ToLower(have) == want {
					matched++
					break
				}
			}
		}
		if matched == 0 {
			continue
		}
		recs = append(recs, models.Recommendation{
			ID:                 s.ID,
			FullName:           s.FullName,
			Department:         s.Department,
			CGPA:               s.CGPA,
			Skills:             s.Skills,
			EmployabilityScore: s.EmployabilityScore,
			PlacementStatus:    s.PlacementStatus,
			MatchPercentage:    float64(matched) / float64(len(wanted)) * 100,
		})
	}
	if req.TopN > 0 && len(recs) > req.TopN {
		recs = recs[:req.TopN]
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

func (b *Backend) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Recalculated scores for %d students", len(b.students)),
	})
}

func (b *Backend) handleReport(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/pdf") {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake report"))
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	_, _ = w.Write([]byte("full_name,department,cgpa\n"))
}

func (b *Backend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "File uploaded",
		"path":    "uploads/" + mux.Vars(r)["kind"] + "/" + header.Filename,
	})
}

func (b *Backend) handleEvaluation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write([]byte("\x89PNG fake " + mux.Vars(r)["kind"]))
}

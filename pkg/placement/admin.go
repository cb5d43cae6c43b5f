package placement

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
)

// AccountPayload is the create/update body for user accounts. Password is
// required on create; on update an empty password means "leave unchanged"
// and the field is omitted from the request.
type AccountPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

type userEnvelope struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// ListUsers lists all accounts, optionally filtered by role.
func (c *Client) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	var q url.Values
	if role != "" {
		q = url.Values{"role": {role}}
	}
	var out []models.User
	err := c.do(ctx, http.MethodGet, "/api/admin/users", q, nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, p AccountPayload) (models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/admin/users", nil, p, &out)
	return out.User, err
}

func (c *Client) UpdateUser(ctx context.Context, id int64, p AccountPayload) (models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPut, "/api/admin/users/"+strconv.FormatInt(id, 10), nil, p, &out)
	return out.User, err
}

// DeactivateUser soft-deletes an account. The backend keeps the row and
// flips is_active.
func (c *Client) DeactivateUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/users/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// StudentFilter narrows student listings. Zero values mean "no filter".
type StudentFilter struct {
	Department      string
	MinCGPA         float64
	Skills          string // comma-separated, matched server-side
	PlacementStatus string
	VerifiedOnly    bool
}

func (f StudentFilter) values() url.Values {
	q := url.Values{}
	if f.Department != "" {
		q.Set("department", f.Department)
	}
	if f.MinCGPA > 0 {
		q.Set("min_cgpa", strconv.FormatFloat(f.MinCGPA, 'f', -1, 64))
	}
	if strings.TrimSpace(f.Skills) != "" {
		q.Set("skills", f.Skills)
	}
	if f.PlacementStatus != "" {
		q.Set("placement_status", f.PlacementStatus)
	}
	if f.VerifiedOnly {
		q.Set("verified", "true")
	}
	if len(q) == 0 {
		return nil
	}
	return q
}

func (c *Client) ListStudents(ctx context.Context, f StudentFilter) ([]models.StudentProfile, error) {
	var out []models.StudentProfile
	err := c.do(ctx, http.MethodGet, "/api/admin/students", f.values(), nil, &out)
	return out, err
}

func (c *Client) Student(ctx context.Context, id int64) (models.StudentProfile, error) {
	var out models.StudentProfile
	err := c.do(ctx, http.MethodGet, "/api/admin/students/"+strconv.FormatInt(id, 10), nil, nil, &out)
	return out, err
}

// UpdateStudent submits an admin edit of a student profile. The server
// recomputes the employability score on save, same as a self-service edit.
func (c *Client) UpdateStudent(ctx context.Context, id int64, p ProfilePayload) (models.StudentProfile, error) {
	var out profileEnvelope
	err := c.do(ctx, http.MethodPut, "/api/admin/students/"+strconv.FormatInt(id, 10), nil, p, &out)
	return out.Profile, err
}

// ToggleVerify flips a student's verification flag and returns the new
// value. The request carries no body; the server owns the toggle.
func (c *Client) ToggleVerify(ctx context.Context, id int64) (bool, error) {
	var out struct {
		Message    string `json:"message"`
		IsVerified bool   `json:"is_verified"`
	}
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin/students/%d/verify", id), nil, nil, &out)
	return out.IsVerified, err
}

// OpportunityRecords lists the application records for one opportunity.
func (c *Client) OpportunityRecords(ctx context.Context, opportunityID int64) ([]models.ApplicationRecord, error) {
	var out []models.ApplicationRecord
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/admin/placements/%d/records", opportunityID), nil, nil, &out)
	return out, err
}

// RecalculateScores triggers a bulk employability-score recompute and
// returns the server's summary message.
func (c *Client) RecalculateScores(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/api/admin/recalculate-scores", nil, nil, &out)
	return out.Message, err
}

// ReportFormat selects the admin report variant.
type ReportFormat string

const (
	ReportCSV ReportFormat = "csv"
	ReportPDF ReportFormat = "pdf"
)

// Report downloads the admin student report as an opaque byte stream.
func (c *Client) Report(ctx context.Context, format ReportFormat) ([]byte, error) {
	path := "/api/admin/reports"
	if format == ReportPDF {
		path += "/pdf"
	}
	return c.download(ctx, path, nil)
}

package placement

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
)

// ProfilePayload is the student profile update body. The server recomputes
// the employability score on every update; client-submitted ratings are
// presentation hints, not authoritative values.
type ProfilePayload struct {
	FullName          string   `json:"full_name"`
	Department        string   `json:"department"`
	RollNumber        string   `json:"roll_number"`
	CGPA              float64  `json:"cgpa"`
	TenthPercentage   float64  `json:"tenth_percentage"`
	TwelfthPercentage float64  `json:"twelfth_percentage"`
	ProgrammingRating int      `json:"programming_skills_rating"`
	SoftSkillsRating  int      `json:"soft_skills_rating"`
	Skills            []string `json:"skills"`
	Certifications    []string `json:"certifications"`
	Projects          []string `json:"projects"`
	Internships       []string `json:"internships"`
	InternshipCount   int      `json:"internship_count"`
	CareerPreferences string   `json:"career_preferences"`
}

type profileEnvelope struct {
	Message string                `json:"message"`
	Profile models.StudentProfile `json:"profile"`
}

// Profile returns the logged-in student's own profile.
func (c *Client) Profile(ctx context.Context) (models.StudentProfile, error) {
	var out models.StudentProfile
	err := c.do(ctx, http.MethodGet, "/api/student/profile", nil, nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, p ProfilePayload) (models.StudentProfile, error) {
	var out profileEnvelope
	err := c.do(ctx, http.MethodPut, "/api/student/profile", nil, p, &out)
	return out.Profile, err
}

// UploadKind selects the student upload slot.
type UploadKind string

const (
	UploadResume   UploadKind = "resume"
	UploadPhoto    UploadKind = "photo"
	UploadDocument UploadKind = "document"
)

// Upload stores one file against the student profile and returns the
// server-side path.
func (c *Client) Upload(ctx context.Context, kind UploadKind, filename string, r io.Reader) (string, error) {
	var out struct {
		Message string `json:"message"`
		Path    string `json:"path"`
	}
	err := c.upload(ctx, "/api/student/upload/"+string(kind), filename, r, &out)
	return out.Path, err
}

// StudentOpportunities lists open opportunities with the caller's own
// applied status folded in.
func (c *Client) StudentOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	var out []models.Opportunity
	err := c.do(ctx, http.MethodGet, "/api/student/placements", nil, nil, &out)
	return out, err
}

type recordEnvelope struct {
	Message string                   `json:"message"`
	Record  models.ApplicationRecord `json:"record"`
}

// Apply submits an application against an opportunity. Applying twice is a
// server-side conflict surfaced as an APIError.
func (c *Client) Apply(ctx context.Context, opportunityID int64) (models.ApplicationRecord, error) {
	var out recordEnvelope
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/student/placements/%d/apply", opportunityID), nil, nil, &out)
	return out.Record, err
}

// Status returns the student's placement standing and application records.
func (c *Client) Status(ctx context.Context) (models.StatusReport, error) {
	var out models.StatusReport
	err := c.do(ctx, http.MethodGet, "/api/student/status", nil, nil, &out)
	return out, err
}

// ApplicationFlow fetches the ordered stage manifest for one application.
func (c *Client) ApplicationFlow(ctx context.Context, recordID int64) (models.ApplicationFlow, error) {
	var out models.ApplicationFlow
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/student/applications/%d/flow", recordID), nil, nil, &out)
	return out, err
}

// GraphKind selects a student evaluation graph.
type GraphKind string

const (
	GraphCGPA          GraphKind = "cgpa"
	GraphEmployability GraphKind = "employability"
)

// EvaluationGraph downloads a rendered evaluation graph as an opaque PNG.
func (c *Client) EvaluationGraph(ctx context.Context, kind GraphKind) ([]byte, error) {
	return c.download(ctx, "/api/student/evaluation/"+string(kind), nil)
}

package placement

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
)

// BrowseStudents lists verified student profiles for the company view,
// ordered by employability score.
func (c *Client) BrowseStudents(ctx context.Context, f StudentFilter) ([]models.StudentProfile, error) {
	var out []models.StudentProfile
	err := c.do(ctx, http.MethodGet, "/api/company/students", f.values(), nil, &out)
	return out, err
}

// StudentDetail returns one verified student profile.
func (c *Client) StudentDetail(ctx context.Context, id int64) (models.StudentProfile, error) {
	var out models.StudentProfile
	err := c.do(ctx, http.MethodGet, "/api/company/students/"+strconv.FormatInt(id, 10), nil, nil, &out)
	return out, err
}

// CompanyReports returns the consolidated verified-student summary.
func (c *Client) CompanyReports(ctx context.Context) (models.CompanyReport, error) {
	var out models.CompanyReport
	err := c.do(ctx, http.MethodGet, "/api/company/reports", nil, nil, &out)
	return out, err
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateApplicationStatus advances one application through the hiring
// pipeline. The server enforces the flow rules (no change after a terminal
// status, selected requires shortlisted first).
func (c *Client) UpdateApplicationStatus(ctx context.Context, recordID int64, status string) (models.ApplicationRecord, error) {
	var out recordEnvelope
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/company/applications/%d/status", recordID), nil,
		statusUpdateRequest{Status: status}, &out)
	return out.Record, err
}

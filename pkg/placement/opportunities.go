package placement

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
)

// OpportunityScope is the base path for opportunity mutations. The scope is
// a pure function of the caller's role, never of which panel is visible.
type OpportunityScope string

const (
	ScopeAdmin   OpportunityScope = "/api/admin/placements"
	ScopeCompany OpportunityScope = "/api/company/placements"
)

// ScopeFor resolves the opportunity endpoint for a role. Companies get
// their own scope; everyone else goes through the admin one.
func ScopeFor(role string) OpportunityScope {
	if role == models.RoleCompany {
		return ScopeCompany
	}
	return ScopeAdmin
}

// OpportunityPayload is the create/update body for placement opportunities.
type OpportunityPayload struct {
	CompanyName         string   `json:"company_name"`
	RoleTitle           string   `json:"role_title"`
	Package             string   `json:"package"`
	EligibilityCriteria string   `json:"eligibility_criteria"`
	MinCGPA             float64  `json:"min_cgpa"`
	RequiredSkills      []string `json:"required_skills"`
	Deadline            *string  `json:"deadline"`
}

type opportunityEnvelope struct {
	Message     string             `json:"message"`
	Opportunity models.Opportunity `json:"opportunity"`
}

// Opportunities lists the opportunities visible under a scope: all of them
// for admin, only the company's own for the company scope.
func (c *Client) Opportunities(ctx context.Context, scope OpportunityScope) ([]models.Opportunity, error) {
	var out []models.Opportunity
	err := c.do(ctx, http.MethodGet, string(scope), nil, nil, &out)
	return out, err
}

func (c *Client) CreateOpportunity(ctx context.Context, scope OpportunityScope, p OpportunityPayload) (models.Opportunity, error) {
	var out opportunityEnvelope
	err := c.do(ctx, http.MethodPost, string(scope), nil, p, &out)
	return out.Opportunity, err
}

func (c *Client) UpdateOpportunity(ctx context.Context, scope OpportunityScope, id int64, p OpportunityPayload) (models.Opportunity, error) {
	var out opportunityEnvelope
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", scope, id), nil, p, &out)
	return out.Opportunity, err
}

func (c *Client) DeleteOpportunity(ctx context.Context, scope OpportunityScope, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", scope, id), nil, nil, nil)
}

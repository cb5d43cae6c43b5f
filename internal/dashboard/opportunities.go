package dashboard

import (
	"context"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/session"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

// OpportunityOps binds the generic controller to placement-opportunity
// management. The endpoint scope is resolved once from the session role,
// since admin and company hit different base paths for the same protocol, and
// every operation of the controller shares that resolution.
func OpportunityOps(sess *session.Session, gw *placement.Client) EntityOps {
	scope := placement.ScopeFor(sess.Role)

	return EntityOps{
		Kind:       "Opportunity",
		DeletedMsg: "Deleted",
		List: func(ctx context.Context) ([]Record, error) {
			opps, err := gw.Opportunities(ctx, scope)
			if err != nil {
				return nil, err
			}
			recs := make([]Record, 0, len(opps))
			for _, o := range opps {
				recs = append(recs, Record{ID: o.ID, Form: opportunityForm(o)})
			}
			return recs, nil
		},
		Create: func(ctx context.Context, form FormState) error {
			_, err := gw.CreateOpportunity(ctx, scope, opportunityPayload(form))
			return err
		},
		Update: func(ctx context.Context, id int64, form FormState) error {
			_, err := gw.UpdateOpportunity(ctx, scope, id, opportunityPayload(form))
			return err
		},
		Delete: func(ctx context.Context, id int64) error {
			return gw.DeleteOpportunity(ctx, scope, id)
		},
	}
}

func opportunityForm(o models.Opportunity) FormState {
	return FormState{
		"company_name":         o.CompanyName,
		"role_title":           o.RoleTitle,
		"package":              o.Package,
		"min_cgpa":             formatFloat(o.MinCGPA),
		"eligibility_criteria": o.EligibilityCriteria,
		"required_skills":      JoinList(o.RequiredSkills),
		"deadline":             o.Deadline,
	}
}

func opportunityPayload(form FormState) placement.OpportunityPayload {
	var deadline *string
	if d := form.Get("deadline"); d != "" {
		deadline = &d
	}
	return placement.OpportunityPayload{
		CompanyName:         form.Get("company_name"),
		RoleTitle:           form.Get("role_title"),
		Package:             form.Get("package"),
		EligibilityCriteria: form.Get("eligibility_criteria"),
		MinCGPA:             ParseFloat(form.Get("min_cgpa")),
		RequiredSkills:      SplitList(form.Get("required_skills")),
		Deadline:            deadline,
	}
}

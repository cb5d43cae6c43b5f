package dashboard

import (
	"context"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

// VerificationOps binds the controller to the admin student panel: profile
// edits go through the admin endpoint, and the toggle workflow drives
// verification. The toggle carries no body; the flag shown in the UI is
// whatever the last listing reported, so two toggles in flight can
// disagree with the server until the reload lands.
func VerificationOps(gw *placement.Client, filter func() placement.StudentFilter) EntityOps {
	if filter == nil {
		filter = func() placement.StudentFilter { return placement.StudentFilter{} }
	}
	return EntityOps{
		Kind: "Student",
		List: func(ctx context.Context) ([]Record, error) {
			students, err := gw.ListStudents(ctx, filter())
			if err != nil {
				return nil, err
			}
			recs := make([]Record, 0, len(students))
			for _, s := range students {
				recs = append(recs, Record{ID: s.ID, Form: studentForm(s)})
			}
			return recs, nil
		},
		Update: func(ctx context.Context, id int64, form FormState) error {
			_, err := gw.UpdateStudent(ctx, id, placement.ProfilePayload{
				FullName:   form.Get("full_name"),
				Department: form.Get("department"),
				RollNumber: form.Get("roll_number"),
				CGPA:       ParseFloat(form.Get("cgpa")),
			})
			return err
		},
		Toggle: func(ctx context.Context, id int64) error {
			_, err := gw.ToggleVerify(ctx, id)
			return err
		},
	}
}

func studentForm(s models.StudentProfile) FormState {
	verified := "false"
	if s.IsVerified {
		verified = "true"
	}
	return FormState{
		"full_name":        s.FullName,
		"department":       s.Department,
		"roll_number":      s.RollNumber,
		"cgpa":             formatFloat(s.CGPA),
		"is_verified":      verified,
		"placement_status": s.PlacementStatus,
	}
}

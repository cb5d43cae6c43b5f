package dashboard

import (
	"context"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

// AccountOps binds the generic controller to user-account management.
// Accounts are administrator-only, so the endpoint is fixed regardless of
// role. Admin rows carry no delete control; the rule reads the role off
// the listing rather than asking the server.
func AccountOps(gw *placement.Client) EntityOps {
	return EntityOps{
		Kind:        "User",
		SecretField: "password",
		DeletedMsg:  "User deactivated",
		List: func(ctx context.Context) ([]Record, error) {
			users, err := gw.ListUsers(ctx, "")
			if err != nil {
				return nil, err
			}
			recs := make([]Record, 0, len(users))
			for _, u := range users {
				recs = append(recs, Record{ID: u.ID, Form: accountForm(u)})
			}
			return recs, nil
		},
		Create: func(ctx context.Context, form FormState) error {
			_, err := gw.CreateUser(ctx, accountPayload(form))
			return err
		},
		Update: func(ctx context.Context, id int64, form FormState) error {
			_, err := gw.UpdateUser(ctx, id, accountPayload(form))
			return err
		},
		Delete: gw.DeactivateUser,
		CanDelete: func(rec Record) bool {
			return rec.Form.Get("role") != models.RoleAdmin
		},
	}
}

func accountForm(u models.User) FormState {
	return FormState{
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
	}
}

func accountPayload(form FormState) placement.AccountPayload {
	return placement.AccountPayload{
		Username: form.Get("username"),
		Email:    form.Get("email"),
		Role:     form.Get("role"),
		Password: form.Get("password"),
	}
}

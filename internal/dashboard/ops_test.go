package dashboard_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/apitest"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/dashboard"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
)

func TestAccountOps_CreateThenEdit(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	gw := newGateway(t, backend.URL(), apitest.Token(t, "root", models.RoleAdmin))
	notifier := &fakeNotifier{}
	c := dashboard.NewController(dashboard.AccountOps(gw), notifier, confirmAlways(), nil, nil)

	c.OpenCreate()
	require.NoError(t, c.Submit(ctx, dashboard.FormState{
		"username": "dana", "email": "dana@example.edu", "role": "student", "password": "pw1",
	}))

	posts := backend.RequestsTo(http.MethodPost, "/api/admin/users")
	require.Len(t, posts, 1)
	var created map[string]any
	require.NoError(t, json.Unmarshal(posts[0].Body, &created))
	require.NotContains(t, created, "id", "create body must carry no record id")
	require.Equal(t, "pw1", created["password"])

	users, err := gw.ListUsers(ctx, "")
	require.NoError(t, err)
	require.Len(t, users, 1)
	id := users[0].ID

	// edit with a blank password leaves the credential unchanged
	require.NoError(t, c.OpenEdit(ctx, id))
	form := c.Form()
	form["email"] = "dana@dept.example.edu"
	require.NoError(t, c.Submit(ctx, form))

	puts := backend.RequestsTo(http.MethodPut, fmt.Sprintf("/api/admin/users/%d", id))
	require.Len(t, puts, 1)
	var updated map[string]any
	require.NoError(t, json.Unmarshal(puts[0].Body, &updated))
	require.NotContains(t, updated, "password")
	require.Equal(t, "dana@dept.example.edu", updated["email"])
}

func TestAccountOps_AdminRowsAreNotDeletable(t *testing.T) {
	gw := newGateway(t, "http://localhost:5000", "tok")
	c := dashboard.NewController(dashboard.AccountOps(gw), &fakeNotifier{}, confirmAlways(), nil, nil)

	adminRow := dashboard.Record{ID: 1, Form: dashboard.FormState{"role": models.RoleAdmin}}
	studentRow := dashboard.Record{ID: 2, Form: dashboard.FormState{"role": models.RoleStudent}}
	require.False(t, c.AllowDelete(adminRow))
	require.True(t, c.AllowDelete(studentRow))
}

func TestAccountOps_AdminRowBlockedInDeleteWorkflow(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	root := backend.SeedUser("root", "pw", models.RoleAdmin)

	gw := newGateway(t, backend.URL(), apitest.Token(t, "root", models.RoleAdmin))
	notifier := &fakeNotifier{}
	c := dashboard.NewController(dashboard.AccountOps(gw), notifier, confirmAlways(), nil, nil)

	err := c.Delete(ctx, root.ID)
	require.ErrorIs(t, err, dashboard.ErrDeleteNotAllowed)
	require.Empty(t, backend.RequestsTo(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", root.ID)),
		"a blocked delete must never reach the server")
	require.Contains(t, notifier.Errors(), "This user cannot be deleted")

	users, err := gw.ListUsers(ctx, "")
	require.NoError(t, err)
	require.True(t, users[0].IsActive)
}

func TestAccountOps_DeactivateIsSoftDelete(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	victim := backend.SeedUser("ravi", "pw", models.RoleStudent)

	gw := newGateway(t, backend.URL(), apitest.Token(t, "root", models.RoleAdmin))
	notifier := &fakeNotifier{}
	c := dashboard.NewController(dashboard.AccountOps(gw), notifier, confirmAlways(), nil, nil)

	require.NoError(t, c.Delete(ctx, victim.ID))
	require.Contains(t, notifier.Successes(), "User deactivated")

	users, err := gw.ListUsers(ctx, "")
	require.NoError(t, err)
	require.Len(t, users, 1, "deactivation keeps the row")
	require.False(t, users[0].IsActive)
}

func TestOpportunityOps_ScopeFollowsRole(t *testing.T) {
	ctx := context.Background()
	form := dashboard.FormState{
		"company_name": "Acme", "role_title": "SDE", "package": "12 LPA",
		"min_cgpa": "7.5", "required_skills": "Go, SQL",
	}

	tests := []struct {
		role     string
		wantPath string
	}{
		{models.RoleAdmin, "/api/admin/placements"},
		{models.RoleCompany, "/api/company/placements"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			backend := apitest.New(t)
			gw := newGateway(t, backend.URL(), apitest.Token(t, "actor", tt.role))
			sess := adminSession()
			sess.Role = tt.role

			c := dashboard.NewController(dashboard.OpportunityOps(sess, gw), &fakeNotifier{}, confirmAlways(), nil, nil)
			c.OpenCreate()
			require.NoError(t, c.Submit(ctx, form))

			require.Len(t, backend.RequestsTo(http.MethodPost, tt.wantPath), 1)

			var body map[string]any
			require.NoError(t, json.Unmarshal(backend.RequestsTo(http.MethodPost, tt.wantPath)[0].Body, &body))
			require.Equal(t, []any{"Go", "SQL"}, body["required_skills"])
			require.Equal(t, 7.5, body["min_cgpa"])
			// blank deadline is an explicit null, not a zero date
			require.Contains(t, body, "deadline")
			require.Nil(t, body["deadline"])
		})
	}
}

func TestVerificationOps_EditGoesThroughAdminEndpoint(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	s := backend.SeedStudent(models.StudentProfile{FullName: "Asha", Department: "CSE", CGPA: 8.2})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "root", models.RoleAdmin))
	c := dashboard.NewController(dashboard.VerificationOps(gw, nil), &fakeNotifier{}, confirmAlways(), nil, nil)

	require.NoError(t, c.OpenEdit(ctx, s.ID))
	form := c.Form()
	form["cgpa"] = "9.1"
	require.NoError(t, c.Submit(ctx, form))

	require.Len(t, backend.RequestsTo(http.MethodPut, fmt.Sprintf("/api/admin/students/%d", s.ID)), 1)
	detail, err := gw.Student(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, 9.1, detail.CGPA)
	require.Equal(t, "Asha", detail.FullName, "untouched fields survive the edit")
}

func TestVerificationOps_ToggleUsesCurrentFilter(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	s := backend.SeedStudent(models.StudentProfile{FullName: "Asha", Department: "CSE", CGPA: 9.0})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "root", models.RoleAdmin))
	notifier := &fakeNotifier{}
	c := dashboard.NewController(dashboard.VerificationOps(gw, nil), notifier, confirmAlways(), nil, nil)

	require.NoError(t, c.ToggleFlag(ctx, s.ID))
	require.Contains(t, notifier.Successes(), "Verification toggled")

	detail, err := gw.Student(ctx, s.ID)
	require.NoError(t, err)
	require.True(t, detail.IsVerified)
}

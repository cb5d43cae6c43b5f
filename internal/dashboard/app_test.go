package dashboard_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/apitest"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/dashboard"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

func TestApp_CompanyShortlistEndToEnd(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	opp := backend.SeedOpportunity(models.Opportunity{CompanyName: "Acme", RoleTitle: "SDE"})
	rec := backend.SeedRecord(models.ApplicationRecord{
		OpportunityID: opp.ID, Status: models.StatusApplied, StudentName: "Asha",
	})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "acme", models.RoleCompany))
	renderer := &fakeRenderer{}
	notifier := &fakeNotifier{}
	app := dashboard.NewApp(ctx, companySession(), gw, renderer, notifier, confirmAlways(), nil)
	app.Router.Wait()

	require.NoError(t, app.OpenApplications(ctx, opp.ID))
	require.True(t, app.ApplicationsOpen())
	last, ok := renderer.Last()
	require.True(t, ok)
	require.NotNil(t, last.Table)
	require.Equal(t, "Asha", last.Table.Rows[0][0])

	app.OpenStatusUpdate(rec.ID)
	require.True(t, app.StatusUpdateOpen())

	require.NoError(t, app.SubmitStatusUpdate(ctx, models.StatusShortlisted))

	// success closes both the status picker and the detail surface
	require.False(t, app.StatusUpdateOpen())
	require.False(t, app.ApplicationsOpen())
	require.Contains(t, notifier.Successes(), "Status updated")

	updated, found := backend.Record(rec.ID)
	require.True(t, found)
	require.Equal(t, models.StatusShortlisted, updated.Status)

	puts := backend.RequestsTo(http.MethodPut, fmt.Sprintf("/api/company/applications/%d/status", rec.ID))
	require.Len(t, puts, 1)
	var body map[string]string
	require.NoError(t, json.Unmarshal(puts[0].Body, &body))
	require.Equal(t, map[string]string{"status": models.StatusShortlisted}, body)
}

func TestApp_StatusUpdateRejectionKeepsSurfacesOpen(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	opp := backend.SeedOpportunity(models.Opportunity{CompanyName: "Acme", RoleTitle: "SDE"})
	rec := backend.SeedRecord(models.ApplicationRecord{
		OpportunityID: opp.ID, Status: models.StatusSelected, StudentName: "Asha",
	})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "acme", models.RoleCompany))
	notifier := &fakeNotifier{}
	app := dashboard.NewApp(ctx, companySession(), gw, &fakeRenderer{}, notifier, confirmAlways(), nil)
	app.Router.Wait()

	require.NoError(t, app.OpenApplications(ctx, opp.ID))
	app.OpenStatusUpdate(rec.ID)

	// selected is terminal; the server refuses and both surfaces stay open
	err := app.SubmitStatusUpdate(ctx, models.StatusShortlisted)
	require.Error(t, err)
	require.True(t, app.StatusUpdateOpen())
	require.True(t, app.ApplicationsOpen())
	require.Contains(t, notifier.Errors(), "Cannot move application from selected to shortlisted")

	unchanged, found := backend.Record(rec.ID)
	require.True(t, found)
	require.Equal(t, models.StatusSelected, unchanged.Status)
}

func TestApp_EmptyApplicationsIsInformational(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	opp := backend.SeedOpportunity(models.Opportunity{CompanyName: "Acme", RoleTitle: "SDE"})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "acme", models.RoleCompany))
	notifier := &fakeNotifier{}
	app := dashboard.NewApp(ctx, companySession(), gw, &fakeRenderer{}, notifier, confirmAlways(), nil)
	app.Router.Wait()

	require.NoError(t, app.OpenApplications(ctx, opp.ID))
	require.False(t, app.ApplicationsOpen())
	require.Contains(t, notifier.Successes(), "No applications found for this opportunity.")
}

func TestApp_StudentApplyRefreshesListing(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	backend.SeedStudent(models.StudentProfile{FullName: "Asha", Department: "CSE", CGPA: 8.9})
	opp := backend.SeedOpportunity(models.Opportunity{CompanyName: "Acme", RoleTitle: "SDE", MinCGPA: 7})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "asha", models.RoleStudent))
	renderer := &fakeRenderer{}
	notifier := &fakeNotifier{}
	app := dashboard.NewApp(ctx, studentSession(), gw, renderer, notifier, confirmAlways(), nil)
	app.Router.Wait()

	require.NoError(t, app.Router.Activate(dashboard.PanelMyPlacements))
	app.Router.Wait()
	view, ok := renderer.Last()
	require.True(t, ok)
	require.Equal(t, "not applied", view.Table.Rows[0][5])

	require.NoError(t, app.Apply(ctx, opp.ID))
	app.Router.Wait()
	require.Contains(t, notifier.Successes(), "Application submitted")

	view, ok = renderer.Last()
	require.True(t, ok)
	require.Equal(t, models.StatusApplied, view.Table.Rows[0][5])

	// applying twice is a conflict surfaced with the server's text
	require.Error(t, app.Apply(ctx, opp.ID))
	require.Contains(t, notifier.Errors(), "Already applied to this placement")
}

func TestApp_ShowFlowRendersLifecycle(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	backend.SeedStudent(models.StudentProfile{FullName: "Asha"})
	opp := backend.SeedOpportunity(models.Opportunity{CompanyName: "Acme", RoleTitle: "SDE"})
	rec := backend.SeedRecord(models.ApplicationRecord{
		OpportunityID: opp.ID, Status: models.StatusShortlisted,
		CompanyName: "Acme", RoleTitle: "SDE",
	})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "asha", models.RoleStudent))
	renderer := &fakeRenderer{}
	app := dashboard.NewApp(ctx, studentSession(), gw, renderer, &fakeNotifier{}, confirmAlways(), nil)
	app.Router.Wait()

	require.NoError(t, app.ShowFlow(ctx, rec.ID))

	view, ok := renderer.Last()
	require.True(t, ok)
	require.Len(t, view.Flow, 3)
	require.Equal(t, dashboard.ClassCompleted, view.Flow[0].Class)
	require.Equal(t, dashboard.ClassActive, view.Flow[1].Class)
	require.True(t, view.Flow[1].Current)
	require.Equal(t, dashboard.ClassFuture, view.Flow[2].Class)
}

func TestApp_FindMatchesRejectsBlankInputLocally(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)

	gw := newGateway(t, backend.URL(), apitest.Token(t, "acme", models.RoleCompany))
	notifier := &fakeNotifier{}
	app := dashboard.NewApp(ctx, companySession(), gw, &fakeRenderer{}, notifier, confirmAlways(), nil)
	app.Router.Wait()

	require.NoError(t, app.FindMatches(ctx, "   "))
	require.Contains(t, notifier.Errors(), "Please enter some skills to search for.")
	require.Empty(t, backend.RequestsTo(http.MethodPost, "/api/ml/recommend"))
}

func TestApp_FindMatchesRendersTopCandidates(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	backend.SeedStudent(models.StudentProfile{FullName: "Asha", Skills: []string{"Go", "SQL"}, CGPA: 8.9})
	backend.SeedStudent(models.StudentProfile{FullName: "Ravi", Skills: []string{"Java"}, CGPA: 8.1})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "acme", models.RoleCompany))
	renderer := &fakeRenderer{}
	app := dashboard.NewApp(ctx, companySession(), gw, renderer, &fakeNotifier{}, confirmAlways(), nil)
	app.Router.Wait()

	require.NoError(t, app.FindMatches(ctx, "go, sql"))

	view, ok := renderer.Last()
	require.True(t, ok)
	require.Equal(t, "AI Matches", view.Title)
	require.Len(t, view.Table.Rows, 1)
	require.Equal(t, "Asha", view.Table.Rows[0][0])
	require.Equal(t, "100%", view.Table.Rows[0][4])
}

func TestApp_SaveProfileSubmitsCoercedForm(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	backend.SeedStudent(models.StudentProfile{FullName: "Asha", Department: "CSE", CGPA: 8.0})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "asha", models.RoleStudent))
	notifier := &fakeNotifier{}
	app := dashboard.NewApp(ctx, studentSession(), gw, &fakeRenderer{}, notifier, confirmAlways(), nil)
	app.Router.Wait()

	require.NoError(t, app.SaveProfile(ctx, dashboard.FormState{
		"full_name":   "Asha R",
		"department":  "CSE",
		"cgpa":        "9.2",
		"skills":      "Go, Rust , Python",
		"internships": "Acme, Initech",
	}))
	app.Router.Wait()
	require.Contains(t, notifier.Successes(), "Profile updated")

	puts := backend.RequestsTo(http.MethodPut, "/api/student/profile")
	require.Len(t, puts, 1)
	var body map[string]any
	require.NoError(t, json.Unmarshal(puts[0].Body, &body))
	require.Equal(t, []any{"Go", "Rust", "Python"}, body["skills"])
	require.Equal(t, 9.2, body["cgpa"])
	// a blank count defaults to the internship list length
	require.Equal(t, float64(2), body["internship_count"])
}

func TestApp_UploadFileHitsUploadSlot(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	backend.SeedStudent(models.StudentProfile{FullName: "Asha"})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "asha", models.RoleStudent))
	notifier := &fakeNotifier{}
	app := dashboard.NewApp(ctx, studentSession(), gw, &fakeRenderer{}, notifier, confirmAlways(), nil)
	app.Router.Wait()

	require.NoError(t, app.UploadFile(ctx, placement.UploadResume, "cv.pdf", strings.NewReader("%PDF-1.4")))
	require.Contains(t, notifier.Successes(), "File uploaded")
	require.Len(t, backend.RequestsTo(http.MethodPost, "/api/student/upload/resume"), 1)
}

func TestApp_DownloadReportFetchesBytes(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)

	gw := newGateway(t, backend.URL(), apitest.Token(t, "root", models.RoleAdmin))
	notifier := &fakeNotifier{}
	app := dashboard.NewApp(ctx, adminSession(), gw, &fakeRenderer{}, notifier, confirmAlways(), nil)
	app.Router.Wait()

	data, err := app.DownloadReport(ctx, placement.ReportCSV)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Contains(t, notifier.Successes(), "Report downloaded")

	pdf, err := app.DownloadReport(ctx, placement.ReportPDF)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	require.Len(t, backend.RequestsTo(http.MethodGet, "/api/admin/reports/pdf"), 1)
}

func TestApp_ShowStudentUsesRoleEndpoint(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	s := backend.SeedStudent(models.StudentProfile{FullName: "Asha", Department: "CSE", CGPA: 8.4})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "acme", models.RoleCompany))
	renderer := &fakeRenderer{}
	app := dashboard.NewApp(ctx, companySession(), gw, renderer, &fakeNotifier{}, confirmAlways(), nil)
	app.Router.Wait()

	require.NoError(t, app.ShowStudent(ctx, s.ID))

	view, ok := renderer.Last()
	require.True(t, ok)
	require.Equal(t, "Asha", view.Title)
	require.Len(t, backend.RequestsTo(http.MethodGet, fmt.Sprintf("/api/company/students/%d", s.ID)), 1)
	require.Empty(t, backend.RequestsTo(http.MethodGet, fmt.Sprintf("/api/admin/students/%d", s.ID)),
		"a company viewer must never touch the admin endpoint")
}

func TestApp_StudentFilterReload(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	backend.SeedStudent(models.StudentProfile{FullName: "Asha", Department: "CSE", CGPA: 9.1, IsVerified: true})
	backend.SeedStudent(models.StudentProfile{FullName: "Ravi", Department: "ECE", CGPA: 7.2, IsVerified: true})

	gw := newGateway(t, backend.URL(), apitest.Token(t, "acme", models.RoleCompany))
	renderer := &fakeRenderer{}
	app := dashboard.NewApp(ctx, companySession(), gw, renderer, &fakeNotifier{}, confirmAlways(), nil)
	app.Router.Wait()

	app.SetStudentFilter(placement.StudentFilter{Department: "CSE", MinCGPA: 8.0})
	app.Router.Wait()

	view, ok := renderer.Last()
	require.True(t, ok)
	require.Len(t, view.Table.Rows, 1)
	require.Equal(t, "Asha", view.Table.Rows[0][0])
}

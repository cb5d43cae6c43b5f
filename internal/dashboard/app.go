package dashboard

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/session"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

// App assembles the dashboard for one authenticated session: the router,
// the entity controllers and the per-panel loaders that pull data through
// the gateway and hand view models to the renderer.
type App struct {
	sess     *session.Session
	gw       *placement.Client
	renderer Renderer
	notifier Notifier
	logger   *slog.Logger

	Router        *Router
	Accounts      *Controller
	Opportunities *Controller
	Verification  *Controller

	mu           sync.Mutex
	filter       placement.StudentFilter
	detailOpen   bool
	statusOpen   bool
	statusRecord int64
	evaluation   map[placement.GraphKind][]byte
}

// NewApp wires the app and activates the first visible panel for the
// session's role. The context bounds every loader the router dispatches.
func NewApp(ctx context.Context, sess *session.Session, gw *placement.Client, renderer Renderer, notifier Notifier, confirm Confirmer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		sess:       sess,
		gw:         gw,
		renderer:   renderer,
		notifier:   notifier,
		logger:     logger,
		evaluation: make(map[placement.GraphKind][]byte),
	}

	reload := func() { a.Router.Reload() }
	a.Accounts = NewController(AccountOps(gw), notifier, confirm, reload, logger)
	a.Opportunities = NewController(OpportunityOps(sess, gw), notifier, confirm, reload, logger)
	a.Verification = NewController(VerificationOps(gw, a.currentFilter), notifier, confirm, reload, logger)

	a.Router = NewRouter(ctx, sess, a.loaders(), notifier, logger)
	return a
}

// Session returns the identity the app was built for.
func (a *App) Session() *session.Session { return a.sess }

func (a *App) loaders() map[Panel]Loader {
	return map[Panel]Loader{
		PanelOverview:          a.loadOverview,
		PanelMetrics:           a.loadMetrics,
		PanelUsers:             a.loadUsers,
		PanelStudents:          a.loadStudents,
		PanelPlacements:        a.loadPlacements,
		PanelProfile:           a.loadProfile,
		PanelMyPlacements:      a.loadMyPlacements,
		PanelMyStatus:          a.loadMyStatus,
		PanelMyPrediction:      a.loadMyPrediction,
		PanelMyEvaluation:      a.loadMyEvaluation,
		PanelBrowse:            a.loadBrowse,
		PanelCompanyPlacements: a.loadCompanyPlacements,
		PanelCompanyReports:    a.loadCompanyReports,
	}
}

// render hands a view to the renderer unless the loader was superseded.
func (a *App) render(ctx context.Context, view PanelView) {
	if ctx.Err() != nil {
		return
	}
	a.renderer.Render(view)
}

func (a *App) currentFilter() placement.StudentFilter {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter
}

// SetStudentFilter replaces the listing filter and refreshes the active
// panel so the new criteria take effect immediately.
func (a *App) SetStudentFilter(f placement.StudentFilter) {
	a.mu.Lock()
	a.filter = f
	a.mu.Unlock()
	a.Router.Reload()
}

func (a *App) loadOverview(ctx context.Context) error {
	users, err := a.gw.ListUsers(ctx, "")
	if err != nil {
		return err
	}
	students, err := a.gw.ListStudents(ctx, placement.StudentFilter{})
	if err != nil {
		return err
	}
	opps, err := a.gw.Opportunities(ctx, placement.ScopeAdmin)
	if err != nil {
		return err
	}
	a.render(ctx, BuildOverview(users, students, opps))
	return nil
}

func (a *App) loadMetrics(ctx context.Context) error {
	m, err := a.gw.MLMetrics(ctx)
	if err != nil {
		return err
	}
	a.render(ctx, BuildMetricsView(m))
	return nil
}

func (a *App) loadUsers(ctx context.Context) error {
	users, err := a.gw.ListUsers(ctx, "")
	if err != nil {
		return err
	}
	a.render(ctx, BuildUsersView(users))
	return nil
}

func (a *App) loadStudents(ctx context.Context) error {
	students, err := a.gw.ListStudents(ctx, a.currentFilter())
	if err != nil {
		return err
	}
	a.render(ctx, BuildStudentsView(students))
	return nil
}

func (a *App) loadPlacements(ctx context.Context) error {
	opps, err := a.gw.Opportunities(ctx, placement.ScopeAdmin)
	if err != nil {
		return err
	}
	a.render(ctx, BuildOpportunitiesView(PanelPlacements, "Manage Placements", opps))
	return nil
}

func (a *App) loadProfile(ctx context.Context) error {
	p, err := a.gw.Profile(ctx)
	if err != nil {
		return err
	}
	a.render(ctx, BuildProfileView(p))
	return nil
}

func (a *App) loadMyPlacements(ctx context.Context) error {
	opps, err := a.gw.StudentOpportunities(ctx)
	if err != nil {
		return err
	}
	a.render(ctx, BuildStudentOpportunitiesView(opps))
	return nil
}

func (a *App) loadMyStatus(ctx context.Context) error {
	report, err := a.gw.Status(ctx)
	if err != nil {
		return err
	}
	a.render(ctx, BuildStatusView(report))
	return nil
}

func (a *App) loadMyPrediction(ctx context.Context) error {
	pred, err := a.gw.PredictMyProfile(ctx)
	if err != nil {
		return err
	}
	a.render(ctx, BuildPredictionView(pred))
	return nil
}

// loadMyEvaluation fetches both evaluation graphs and keeps the raw PNG
// bytes for the renderer to persist or display.
func (a *App) loadMyEvaluation(ctx context.Context) error {
	view := PanelView{Panel: PanelMyEvaluation, Title: "My Evaluation"}
	for _, kind := range []placement.GraphKind{placement.GraphCGPA, placement.GraphEmployability} {
		img, err := a.gw.EvaluationGraph(ctx, kind)
		if err != nil {
			return err
		}
		a.mu.Lock()
		a.evaluation[kind] = img
		a.mu.Unlock()
		view.Notes = append(view.Notes, string(kind)+" graph ready")
	}
	a.render(ctx, view)
	return nil
}

// EvaluationGraph returns the last fetched graph bytes for a kind, nil when
// the evaluation panel has not loaded it yet.
func (a *App) EvaluationGraph(kind placement.GraphKind) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.evaluation[kind]
}

func (a *App) loadBrowse(ctx context.Context) error {
	students, err := a.gw.BrowseStudents(ctx, a.currentFilter())
	if err != nil {
		return err
	}
	a.render(ctx, BuildBrowseView(students))
	return nil
}

func (a *App) loadCompanyPlacements(ctx context.Context) error {
	opps, err := a.gw.Opportunities(ctx, placement.ScopeCompany)
	if err != nil {
		return err
	}
	a.render(ctx, BuildOpportunitiesView(PanelCompanyPlacements, "My Placements", opps))
	return nil
}

func (a *App) loadCompanyReports(ctx context.Context) error {
	report, err := a.gw.CompanyReports(ctx)
	if err != nil {
		return err
	}
	a.render(ctx, BuildCompanyReportView(report))
	return nil
}

// Apply submits the student's application for one opportunity and
// refreshes the listing so the new status column shows up.
func (a *App) Apply(ctx context.Context, opportunityID int64) error {
	if _, err := a.gw.Apply(ctx, opportunityID); err != nil {
		a.notifier.Error(placement.UserMessage(err))
		return err
	}
	a.notifier.Success("Application submitted")
	a.Router.Reload()
	return nil
}

// ShowFlow renders the lifecycle tracker for one of the student's own
// applications.
func (a *App) ShowFlow(ctx context.Context, recordID int64) error {
	flow, err := a.gw.ApplicationFlow(ctx, recordID)
	if err != nil {
		a.notifier.Error(placement.UserMessage(err))
		return err
	}
	view, err := BuildFlowView(flow)
	if err != nil {
		a.logger.Warn("dashboard: malformed flow manifest",
			slog.Int64("record", recordID), slog.Any("err", err))
		a.notifier.Error("Request failed")
		return err
	}
	a.render(ctx, view)
	return nil
}

// SaveProfile maps the profile form to the update payload and submits it.
// Rating fields are prefilled from the picked skill category when the form
// carries categories instead of raw numbers.
func (a *App) SaveProfile(ctx context.Context, form FormState) error {
	internships := SplitList(form.Get("internships"))
	count := ParseInt(form.Get("internship_count"))
	if form.Get("internship_count") == "" {
		count = len(internships)
	}

	progRating := ParseInt(form.Get("programming_skills_rating"))
	if cat := form.Get("tech_category"); cat != "" {
		progRating = SkillRating(TechSkillRatings, cat)
	}
	softRating := ParseInt(form.Get("soft_skills_rating"))
	if cat := form.Get("soft_category"); cat != "" {
		softRating = SkillRating(SoftSkillRatings, cat)
	}

	payload := placement.ProfilePayload{
		FullName:          form.Get("full_name"),
		Department:        form.Get("department"),
		RollNumber:        form.Get("roll_number"),
		CGPA:              ParseFloat(form.Get("cgpa")),
		TenthPercentage:   ParseFloat(form.Get("tenth_percentage")),
		TwelfthPercentage: ParseFloat(form.Get("twelfth_percentage")),
		ProgrammingRating: progRating,
		SoftSkillsRating:  softRating,
		Skills:            SplitList(form.Get("skills")),
		Certifications:    SplitList(form.Get("certifications")),
		Projects:          SplitList(form.Get("projects")),
		Internships:       internships,
		InternshipCount:   count,
		CareerPreferences: form.Get("career_preferences"),
	}

	if _, err := a.gw.UpdateProfile(ctx, payload); err != nil {
		a.notifier.Error(placement.UserMessage(err))
		return err
	}
	a.notifier.Success("Profile updated")
	a.Router.Reload()
	return nil
}

// UploadFile stores one file against the student profile.
func (a *App) UploadFile(ctx context.Context, kind placement.UploadKind, filename string, r io.Reader) error {
	if _, err := a.gw.Upload(ctx, kind, filename, r); err != nil {
		a.notifier.Error(placement.UserMessage(err))
		return err
	}
	a.notifier.Success("File uploaded")
	a.Router.Reload()
	return nil
}

// FindMatches runs the AI skill match and renders the top candidates.
// Blank input is rejected locally without a request.
func (a *App) FindMatches(ctx context.Context, skills string) error {
	if strings.TrimSpace(skills) == "" {
		a.notifier.Error("Please enter some skills to search for.")
		return nil
	}
	recs, err := a.gw.Recommend(ctx, skills, 5)
	if err != nil {
		a.notifier.Error(placement.UserMessage(err))
		return err
	}
	a.render(ctx, BuildRecommendationsView(recs))
	return nil
}

// ShowStudent renders one student profile through the role's endpoint.
func (a *App) ShowStudent(ctx context.Context, id int64) error {
	var p models.StudentProfile
	var err error
	if a.sess.Role == models.RoleCompany {
		p, err = a.gw.StudentDetail(ctx, id)
	} else {
		p, err = a.gw.Student(ctx, id)
	}
	if err != nil {
		a.notifier.Error(placement.UserMessage(err))
		return err
	}
	view := BuildProfileView(p)
	view.Title = p.FullName
	if active, ok := a.Router.Active(); ok {
		view.Panel = active
	}
	a.render(ctx, view)
	return nil
}

// OpenApplications opens the application detail surface for one
// opportunity. An empty record set is informational, not an error.
func (a *App) OpenApplications(ctx context.Context, opportunityID int64) error {
	records, err := a.gw.OpportunityRecords(ctx, opportunityID)
	if err != nil {
		a.notifier.Error(placement.UserMessage(err))
		return err
	}
	if len(records) == 0 {
		a.notifier.Success("No applications found for this opportunity.")
		return nil
	}

	a.mu.Lock()
	a.detailOpen = true
	a.mu.Unlock()
	a.render(ctx, BuildApplicationsView(opportunityID, records))
	return nil
}

// OpenStatusUpdate opens the status picker for one application record. The
// detail surface stays open underneath.
func (a *App) OpenStatusUpdate(recordID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statusOpen = true
	a.statusRecord = recordID
}

// SubmitStatusUpdate advances the open record to status. Success closes
// both the status picker and the detail surface; failure leaves both open
// with the server's explanation surfaced.
func (a *App) SubmitStatusUpdate(ctx context.Context, status string) error {
	a.mu.Lock()
	open, recordID := a.statusOpen, a.statusRecord
	a.mu.Unlock()
	if !open {
		return ErrRecordNotFound
	}

	if _, err := a.gw.UpdateApplicationStatus(ctx, recordID, status); err != nil {
		a.notifier.Error(placement.UserMessage(err))
		return err
	}

	a.mu.Lock()
	a.statusOpen = false
	a.detailOpen = false
	a.statusRecord = 0
	a.mu.Unlock()

	a.notifier.Success("Status updated")
	return nil
}

// CloseStatusUpdate discards the status picker without a request.
func (a *App) CloseStatusUpdate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statusOpen = false
	a.statusRecord = 0
}

// StatusUpdateOpen reports whether the status picker is showing.
func (a *App) StatusUpdateOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statusOpen
}

// ApplicationsOpen reports whether the application detail surface is
// showing.
func (a *App) ApplicationsOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.detailOpen
}

// RecalculateScores asks the backend to recompute every employability
// score and refreshes the active panel.
func (a *App) RecalculateScores(ctx context.Context) error {
	msg, err := a.gw.RecalculateScores(ctx)
	if err != nil {
		a.notifier.Error(placement.UserMessage(err))
		return err
	}
	if msg == "" {
		msg = "Scores recalculated"
	}
	a.notifier.Success(msg)
	a.Router.Reload()
	return nil
}

// DownloadReport fetches the placement report in the requested format.
func (a *App) DownloadReport(ctx context.Context, format placement.ReportFormat) ([]byte, error) {
	data, err := a.gw.Report(ctx, format)
	if err != nil {
		a.notifier.Error(placement.UserMessage(err))
		return nil, err
	}
	a.notifier.Success("Report downloaded")
	return data, nil
}

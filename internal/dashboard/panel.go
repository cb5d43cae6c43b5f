package dashboard

// Panel identifies one full-screen content region. Exactly one panel is
// shown at a time. The set is closed: adding a panel means adding a
// constant here and, when it has data, a loader in the dispatch table.
type Panel int

const (
	PanelOverview Panel = iota
	PanelMetrics
	PanelUsers
	PanelStudents
	PanelPlacements
	PanelProfile
	PanelMyPlacements
	PanelMyStatus
	PanelMyPrediction
	PanelMyEvaluation
	PanelBrowse
	PanelCompanyPlacements
	PanelCompanyReports
	PanelHelp
)

var panelNames = map[Panel]string{
	PanelOverview:          "overview",
	PanelMetrics:           "metrics",
	PanelUsers:             "users",
	PanelStudents:          "students",
	PanelPlacements:        "placements",
	PanelProfile:           "profile",
	PanelMyPlacements:      "my-placements",
	PanelMyStatus:          "my-status",
	PanelMyPrediction:      "my-prediction",
	PanelMyEvaluation:      "my-evaluation",
	PanelBrowse:            "browse",
	PanelCompanyPlacements: "company-placements",
	PanelCompanyReports:    "company-reports",
	PanelHelp:              "help",
}

func (p Panel) String() string {
	if name, ok := panelNames[p]; ok {
		return name
	}
	return "unknown"
}

// RoleAll marks a nav entry visible to every role.
const RoleAll = "all"

// NavEntry describes one navigation item. RequiredRole gates visibility:
// entries of another role are excluded entirely, not merely hidden.
type NavEntry struct {
	Panel        Panel
	Label        string
	RequiredRole string
	Active       bool
}

// navCatalog is the fixed candidate set, in display order. Visibility per
// session is a pure function of the role resolved at bootstrap.
var navCatalog = []NavEntry{
	{Panel: PanelOverview, Label: "Dashboard", RequiredRole: "admin"},
	{Panel: PanelMetrics, Label: "Model Metrics", RequiredRole: "admin"},
	{Panel: PanelUsers, Label: "Users", RequiredRole: "admin"},
	{Panel: PanelStudents, Label: "Students", RequiredRole: "admin"},
	{Panel: PanelPlacements, Label: "Opportunities", RequiredRole: "admin"},
	{Panel: PanelProfile, Label: "My Profile", RequiredRole: "student"},
	{Panel: PanelMyPlacements, Label: "Opportunities", RequiredRole: "student"},
	{Panel: PanelMyStatus, Label: "My Applications", RequiredRole: "student"},
	{Panel: PanelMyPrediction, Label: "My Prediction", RequiredRole: "student"},
	{Panel: PanelMyEvaluation, Label: "My Evaluation", RequiredRole: "student"},
	{Panel: PanelBrowse, Label: "Browse Students", RequiredRole: "company"},
	{Panel: PanelCompanyPlacements, Label: "My Postings", RequiredRole: "company"},
	{Panel: PanelCompanyReports, Label: "Reports", RequiredRole: "company"},
	{Panel: PanelHelp, Label: "Help", RequiredRole: RoleAll},
}

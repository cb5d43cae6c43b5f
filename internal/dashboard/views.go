package dashboard

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
)

// Stat is a single headline figure on a panel.
type Stat struct {
	Label string
	Value string
}

// TableView is a rendered listing. Rows are display strings only; the row
// IDs let the renderer wire actions back to the record they came from.
type TableView struct {
	Header []string
	RowIDs []int64
	Rows   [][]string
}

// Bar is one entry of a horizontal bar chart, Percent in [0, 100].
type Bar struct {
	Label   string
	Percent float64
}

// PanelView is everything a renderer needs to draw one panel. Builders are
// pure: same inputs, same view, no network and no shared state.
type PanelView struct {
	Panel Panel
	Title string
	Stats []Stat
	Table *TableView
	Flow  []StageView
	Bars  []Bar
	Notes []string
}

// Renderer draws panel views. The console renderer in cmd/dashboard is the
// only implementation shipped; tests substitute a capturing fake.
type Renderer interface {
	Render(view PanelView)
}

func BuildOverview(users []models.User, students []models.StudentProfile, opps []models.Opportunity) PanelView {
	var verified int
	var scoreSum float64
	for _, s := range students {
		if s.IsVerified {
			verified++
		}
		scoreSum += s.EmployabilityScore
	}
	avg := 0.0
	if len(students) > 0 {
		avg = scoreSum / float64(len(students))
	}
	return PanelView{
		Panel: PanelOverview,
		Title: "Overview",
		Stats: []Stat{
			{Label: "Total users", Value: strconv.Itoa(len(users))},
			{Label: "Students", Value: strconv.Itoa(len(students))},
			{Label: "Verified students", Value: strconv.Itoa(verified)},
			{Label: "Placements", Value: strconv.Itoa(len(opps))},
			{Label: "Avg employability", Value: fmt.Sprintf("%.1f", avg)},
		},
	}
}

func BuildMetricsView(m models.MLMetrics) PanelView {
	view := PanelView{
		Panel: PanelMetrics,
		Title: "Model Metrics",
		Stats: []Stat{
			{Label: "Classifier accuracy", Value: fmt.Sprintf("%.2f%%", m.ClassifierAccuracy*100)},
			{Label: "Regressor R²", Value: fmt.Sprintf("%.3f", m.RegressorR2Score)},
			{Label: "Training samples", Value: strconv.Itoa(m.TrainingSamples)},
		},
		Bars: featureBars(m.FeatureImportances),
	}
	classes := make([]string, 0, len(m.ClassifierReport))
	for name := range m.ClassifierReport {
		classes = append(classes, name)
	}
	sort.Strings(classes)
	table := &TableView{Header: []string{"Class", "Precision", "Recall", "F1"}}
	for _, name := range classes {
		r := m.ClassifierReport[name]
		table.Rows = append(table.Rows, []string{
			name,
			fmt.Sprintf("%.3f", r.Precision),
			fmt.Sprintf("%.3f", r.Recall),
			fmt.Sprintf("%.3f", r.F1Score),
		})
	}
	if len(table.Rows) > 0 {
		view.Table = table
	}
	return view
}

// featureBars sorts importances descending and scales them against the
// largest value so the widest bar is always full width.
func featureBars(importances map[string]float64) []Bar {
	bars := make([]Bar, 0, len(importances))
	var max float64
	for name, v := range importances {
		bars = append(bars, Bar{Label: name, Percent: v})
		if v > max {
			max = v
		}
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Percent == bars[j].Percent {
			return bars[i].Label < bars[j].Label
		}
		return bars[i].Percent > bars[j].Percent
	})
	if max > 0 {
		for i := range bars {
			bars[i].Percent = bars[i].Percent / max * 100
		}
	}
	return bars
}

func BuildUsersView(users []models.User) PanelView {
	table := &TableView{Header: []string{"Username", "Email", "Role", "Active"}}
	for _, u := range users {
		table.RowIDs = append(table.RowIDs, u.ID)
		table.Rows = append(table.Rows, []string{u.Username, u.Email, u.Role, yesNo(u.IsActive)})
	}
	return PanelView{Panel: PanelUsers, Title: "Manage Users", Table: table}
}

func BuildStudentsView(students []models.StudentProfile) PanelView {
	table := &TableView{Header: []string{"Name", "Department", "CGPA", "Score", "Verified", "Placement"}}
	for _, s := range students {
		table.RowIDs = append(table.RowIDs, s.ID)
		table.Rows = append(table.Rows, []string{
			s.FullName,
			s.Department,
			fmt.Sprintf("%.2f", s.CGPA),
			fmt.Sprintf("%.1f", s.EmployabilityScore),
			yesNo(s.IsVerified),
			s.PlacementStatus,
		})
	}
	return PanelView{Panel: PanelStudents, Title: "Students", Table: table}
}

func BuildOpportunitiesView(panel Panel, title string, opps []models.Opportunity) PanelView {
	table := &TableView{Header: []string{"Company", "Role", "Package", "Min CGPA", "Deadline"}}
	for _, o := range opps {
		table.RowIDs = append(table.RowIDs, o.ID)
		table.Rows = append(table.Rows, []string{
			o.CompanyName,
			o.RoleTitle,
			o.Package,
			fmt.Sprintf("%.2f", o.MinCGPA),
			o.Deadline,
		})
	}
	return PanelView{Panel: panel, Title: title, Table: table}
}

// BuildStudentOpportunitiesView adds the caller's own application status as
// a trailing column; a blank status means the student may still apply.
func BuildStudentOpportunitiesView(opps []models.Opportunity) PanelView {
	table := &TableView{Header: []string{"Company", "Role", "Package", "Min CGPA", "Deadline", "Status"}}
	for _, o := range opps {
		status := o.AppliedStatus
		if status == "" {
			status = "not applied"
		}
		table.RowIDs = append(table.RowIDs, o.ID)
		table.Rows = append(table.Rows, []string{
			o.CompanyName,
			o.RoleTitle,
			o.Package,
			fmt.Sprintf("%.2f", o.MinCGPA),
			o.Deadline,
			status,
		})
	}
	return PanelView{Panel: PanelMyPlacements, Title: "Placements", Table: table}
}

func BuildProfileView(p models.StudentProfile) PanelView {
	view := PanelView{
		Panel: PanelProfile,
		Title: "My Profile",
		Stats: []Stat{
			{Label: "Name", Value: p.FullName},
			{Label: "Department", Value: p.Department},
			{Label: "CGPA", Value: fmt.Sprintf("%.2f", p.CGPA)},
			{Label: "Employability score", Value: fmt.Sprintf("%.1f", p.EmployabilityScore)},
			{Label: "Score ring offset", Value: fmt.Sprintf("%.1f", RingOffset(p.EmployabilityScore))},
			{Label: "Verified", Value: yesNo(p.IsVerified)},
		},
	}
	if len(p.Skills) > 0 {
		view.Notes = append(view.Notes, "Skills: "+JoinList(p.Skills))
	}
	if len(p.Certifications) > 0 {
		view.Notes = append(view.Notes, "Certifications: "+JoinList(p.Certifications))
	}
	if p.PlacementStatus == "placed" && p.PlacementCompany != "" {
		view.Notes = append(view.Notes, "Placed at "+p.PlacementCompany)
	}
	return view
}

func BuildStatusView(report models.StatusReport) PanelView {
	table := &TableView{Header: []string{"Company", "Role", "Status", "Applied"}}
	for _, rec := range report.Applications {
		table.RowIDs = append(table.RowIDs, rec.ID)
		table.Rows = append(table.Rows, []string{rec.CompanyName, rec.RoleTitle, rec.Status, rec.AppliedAt})
	}
	view := PanelView{
		Panel: PanelMyStatus,
		Title: "My Status",
		Stats: []Stat{{Label: "Placement", Value: report.PlacementStatus}},
		Table: table,
	}
	if report.PlacementCompany != "" {
		view.Stats = append(view.Stats, Stat{Label: "Company", Value: report.PlacementCompany})
	}
	return view
}

// BuildFlowView draws the lifecycle tracker for one application.
func BuildFlowView(flow models.ApplicationFlow) (PanelView, error) {
	stages, err := RenderFlow(flow.Flow)
	if err != nil {
		return PanelView{}, err
	}
	return PanelView{
		Panel: PanelMyStatus,
		Title: fmt.Sprintf("%s / %s", flow.Application.CompanyName, flow.Application.RoleTitle),
		Flow:  stages,
	}, nil
}

func BuildPredictionView(pred models.ProfilePrediction) PanelView {
	pp := pred.PlacementPrediction
	sp := pred.SalaryPrediction
	return PanelView{
		Panel: PanelMyPrediction,
		Title: "Placement Prediction",
		Stats: []Stat{
			{Label: "Outlook", Value: pp.Status},
			{Label: "Confidence", Value: fmt.Sprintf("%.1f%%", pp.Confidence*100)},
			{Label: "P(placed)", Value: fmt.Sprintf("%.1f%%", pp.ProbabilityPlaced*100)},
			{Label: "Expected package", Value: fmt.Sprintf("%.1f LPA", sp.PredictedSalaryLPA)},
			{Label: "Package range", Value: fmt.Sprintf("%.1f – %.1f LPA", sp.SalaryRange.Min, sp.SalaryRange.Max)},
		},
	}
}

func BuildBrowseView(students []models.StudentProfile) PanelView {
	view := BuildStudentsView(students)
	view.Panel = PanelBrowse
	view.Title = "Browse Students"
	return view
}

func BuildCompanyReportView(r models.CompanyReport) PanelView {
	view := PanelView{
		Panel: PanelCompanyReports,
		Title: "Reports",
		Stats: []Stat{
			{Label: "Total students", Value: strconv.Itoa(r.TotalStudents)},
			{Label: "Average CGPA", Value: fmt.Sprintf("%.2f", r.AverageCGPA)},
			{Label: "Average score", Value: fmt.Sprintf("%.1f", r.AverageScore)},
		},
	}
	depts := make([]string, 0, len(r.DepartmentBreakdown))
	for name := range r.DepartmentBreakdown {
		depts = append(depts, name)
	}
	sort.Strings(depts)
	table := &TableView{Header: []string{"Department", "Students"}}
	for _, name := range depts {
		table.Rows = append(table.Rows, []string{name, strconv.Itoa(r.DepartmentBreakdown[name])})
	}
	if len(table.Rows) > 0 {
		view.Table = table
	}
	return view
}

func BuildRecommendationsView(recs []models.Recommendation) PanelView {
	table := &TableView{Header: []string{"Name", "Department", "CGPA", "Score", "Match"}}
	for _, r := range recs {
		table.RowIDs = append(table.RowIDs, r.ID)
		table.Rows = append(table.Rows, []string{
			r.FullName,
			r.Department,
			fmt.Sprintf("%.2f", r.CGPA),
			fmt.Sprintf("%.1f", r.EmployabilityScore),
			fmt.Sprintf("%.0f%%", r.MatchPercentage),
		})
	}
	return PanelView{Panel: PanelBrowse, Title: "AI Matches", Table: table}
}

func BuildApplicationsView(oppID int64, records []models.ApplicationRecord) PanelView {
	table := &TableView{Header: []string{"Student", "Status", "Applied"}}
	for _, rec := range records {
		table.RowIDs = append(table.RowIDs, rec.ID)
		table.Rows = append(table.Rows, []string{rec.StudentName, rec.Status, rec.AppliedAt})
	}
	return PanelView{
		Panel: PanelCompanyPlacements,
		Title: fmt.Sprintf("Applications for placement %d", oppID),
		Table: table,
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

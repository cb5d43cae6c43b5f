package models

// Roles known to the backend. The dashboard derives its whole navigation
// surface from the role resolved at bootstrap.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
	RoleCompany = "company"
)

// Application lifecycle statuses, in pipeline order. Rejected is terminal and
// reachable from applied or shortlisted only.
const (
	StatusApplied     = "applied"
	StatusShortlisted = "shortlisted"
	StatusSelected    = "selected"
	StatusRejected    = "rejected"
)

// Timestamps are kept as the ISO 8601 strings the backend emits; the client
// never does date arithmetic on them.

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

type StudentProfile struct {
	ID                 int64    `json:"id"`
	UserID             int64    `json:"user_id"`
	FullName           string   `json:"full_name"`
	Department         string   `json:"department"`
	RollNumber         string   `json:"roll_number,omitempty"`
	CGPA               float64  `json:"cgpa"`
	TenthPercentage    float64  `json:"tenth_percentage"`
	TwelfthPercentage  float64  `json:"twelfth_percentage"`
	ProgrammingRating  int      `json:"programming_skills_rating"`
	SoftSkillsRating   int      `json:"soft_skills_rating"`
	Skills             []string `json:"skills"`
	Certifications     []string `json:"certifications"`
	Projects           []string `json:"projects"`
	Internships        []string `json:"internships"`
	InternshipCount    int      `json:"internship_count"`
	CareerPreferences  string   `json:"career_preferences"`
	ResumePath         string   `json:"resume_path,omitempty"`
	PhotoPath          string   `json:"photo_path,omitempty"`
	Documents          []string `json:"documents,omitempty"`
	IsVerified         bool     `json:"is_verified"`
	PlacementStatus    string   `json:"placement_status"`
	PlacementCompany   string   `json:"placement_company,omitempty"`
	EmployabilityScore float64  `json:"employability_score"`
	CreatedAt          string   `json:"created_at,omitempty"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}

type Opportunity struct {
	ID                  int64    `json:"id"`
	CompanyName         string   `json:"company_name"`
	RoleTitle           string   `json:"role_title"`
	Package             string   `json:"package"`
	EligibilityCriteria string   `json:"eligibility_criteria"`
	MinCGPA             float64  `json:"min_cgpa"`
	RequiredSkills      []string `json:"required_skills"`
	Deadline            string   `json:"deadline,omitempty"`
	CreatedBy           int64    `json:"created_by,omitempty"`
	CreatedAt           string   `json:"created_at,omitempty"`

	// AppliedStatus is only populated on the student-facing listing: the
	// caller's own application status, empty when not applied.
	AppliedStatus string `json:"applied_status,omitempty"`
}

type ApplicationRecord struct {
	ID            int64  `json:"id"`
	StudentID     int64  `json:"student_id"`
	OpportunityID int64  `json:"opportunity_id"`
	Status        string `json:"status"`
	AppliedAt     string `json:"applied_at,omitempty"`
	StudentName   string `json:"student_name,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
	RoleTitle     string `json:"role_title,omitempty"`
}

// StatusReport is the student's own placement standing plus every
// application record, newest first.
type StatusReport struct {
	PlacementStatus  string              `json:"placement_status"`
	PlacementCompany string              `json:"placement_company,omitempty"`
	Applications     []ApplicationRecord `json:"applications"`
}

// FlowStage is one entry of the ordered lifecycle stage manifest served per
// application. The upstream contract guarantees at most one active stage.
type FlowStage struct {
	Stage     string `json:"stage"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

type ApplicationFlow struct {
	Application ApplicationRecord `json:"application"`
	Flow        []FlowStage       `json:"flow"`
}

type CompanyReport struct {
	TotalStudents       int              `json:"total_students"`
	AverageCGPA         float64          `json:"average_cgpa"`
	AverageScore        float64          `json:"average_score"`
	DepartmentBreakdown map[string]int   `json:"department_breakdown"`
	Students            []StudentProfile `json:"students"`
}

// ClassReport carries per-class classifier metrics.
type ClassReport struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1-score"`
}

type MLMetrics struct {
	ClassifierAccuracy float64                `json:"classifier_accuracy"`
	ClassifierReport   map[string]ClassReport `json:"classifier_report"`
	RegressorR2Score   float64                `json:"regressor_r2_score"`
	FeatureImportances map[string]float64     `json:"feature_importances"`
	TrainingSamples    int                    `json:"training_samples"`
}

type PlacementPrediction struct {
	Prediction           int     `json:"prediction"`
	Status               string  `json:"status"`
	Confidence           float64 `json:"confidence"`
	ProbabilityPlaced    float64 `json:"probability_placed"`
	ProbabilityNotPlaced float64 `json:"probability_not_placed"`
}

type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type SalaryPrediction struct {
	PredictedSalaryLPA float64     `json:"predicted_salary_lpa"`
	SalaryRange        SalaryRange `json:"salary_range"`
}

type ProfileFeatures struct {
	CGPA               float64 `json:"cgpa"`
	ProgrammingRating  int     `json:"programming_skills_rating"`
	SoftSkillsRating   int     `json:"soft_skills_rating"`
	InternshipCount    int     `json:"internship_count"`
	CertificationCount int     `json:"certification_count"`
}

// ProfilePrediction is the combined ML read-out for the logged-in student.
type ProfilePrediction struct {
	PlacementPrediction PlacementPrediction `json:"placement_prediction"`
	SalaryPrediction    SalaryPrediction    `json:"salary_prediction"`
	ProfileFeatures     ProfileFeatures     `json:"profile_features"`
}

type Recommendation struct {
	ID                 int64    `json:"id"`
	FullName           string   `json:"full_name"`
	Department         string   `json:"department"`
	CGPA               float64  `json:"cgpa"`
	Skills             []string `json:"skills"`
	EmployabilityScore float64  `json:"employability_score"`
	PlacementStatus    string   `json:"placement_status"`
	MatchPercentage    float64  `json:"match_percentage"`
}

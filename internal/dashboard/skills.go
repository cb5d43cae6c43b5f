package dashboard

// Skill-category rating tables used to prefill numeric ratings when a
// student picks a category. These are presentation defaults only: the
// server recomputes the employability score on every profile update and
// client-submitted ratings are never treated as authoritative.
var TechSkillRatings = map[string]int{
	"Python & Data Analysis": 8,
	"Full Stack Development": 9,
	"Cloud Computing":        7,
	"Cybersecurity":          8,
	"AI & Machine Learning":  10,
	"Mobile App Development": 7,
	"DevOps Engineering":     8,
	"Database Management":    6,
	"Business Intelligence":  6,
	"Embedded Systems":       7,
}

var SoftSkillRatings = map[string]int{
	"Leadership & Teamwork":   9,
	"Critical Thinking":       8,
	"Effective Communication": 8,
	"Adaptability":            7,
	"Problem Solving":         9,
	"Time Management":         7,
	"Creativity":              8,
	"Decision Making":         7,
	"Emotional Intelligence":  6,
	"Collaboration":           8,
}

// defaultSkillRating is used for categories missing from the tables.
const defaultSkillRating = 5

// SkillRating looks up the numeric rating for a skill category.
func SkillRating(table map[string]int, category string) int {
	if v, ok := table[category]; ok {
		return v
	}
	return defaultSkillRating
}

package scoring

// SkillCatalog holds the reference skills matched against resume text.
// Technical and soft entries are disjoint; order is significant for output.
type SkillCatalog struct {
	Technical []string
	Soft      []string
}

// All returns technical entries followed by soft entries.
func (c SkillCatalog) All() []string {
	out := make([]string, 0, len(c.Technical)+len(c.Soft))
	out = append(out, c.Technical...)
	out = append(out, c.Soft...)
	return out
}

// Len returns the total number of catalog entries.
func (c SkillCatalog) Len() int {
	return len(c.Technical) + len(c.Soft)
}

// DefaultCatalog returns the built-in skill catalog. The slices are fresh
// copies so callers cannot mutate the shared reference data.
func DefaultCatalog() SkillCatalog {
	return SkillCatalog{
		Technical: append([]string(nil), technicalSkills...),
		Soft:      append([]string(nil), softSkills...),
	}
}

// DefaultATSKeywords returns the built-in lowercase action verbs and phrases.
func DefaultATSKeywords() []string {
	return append([]string(nil), atsKeywords...)
}

var technicalSkills = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "PHP", "Ruby", "Go", "Rust",
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring", "Laravel",
	"SQL", "MongoDB", "PostgreSQL", "MySQL", "Redis", "Docker", "Kubernetes", "AWS", "Azure", "GCP",
	"Git", "CI/CD", "Jenkins", "GitHub Actions", "REST API", "GraphQL", "Microservices",
}

var softSkills = []string{
	"Leadership", "Communication", "Teamwork", "Problem Solving", "Critical Thinking",
	"Project Management", "Agile", "Scrum", "Time Management", "Collaboration",
}

var atsKeywords = []string{
	"experience", "managed", "led", "developed", "created", "implemented", "designed",
	"achieved", "improved", "increased", "reduced", "analyzed", "coordinated",
}

package scoring

// Suggestion tiers.
const (
	TierCritical  = "critical"
	TierImportant = "important"
	TierOptional  = "optional"
)

// Grammar issue types.
const (
	IssueCapitalization = "capitalization"
	IssueSentenceLength = "sentence_length"
	IssueFormatting     = "formatting"
)

// ResumeAnalysis is the heuristic quality report for one resume text.
type ResumeAnalysis struct {
	OverallScore     int            `json:"overallScore"`
	ATSScore         int            `json:"atsScore"`
	ReadabilityScore int            `json:"readabilityScore"`
	SkillsFound      []string       `json:"skillsFound"`
	MissingSkills    []string       `json:"missingSkills"`
	Suggestions      Suggestions    `json:"suggestions"`
	GrammarIssues    []GrammarIssue `json:"grammarIssues"`
	Keywords         []string       `json:"keywords"`
}

// Suggestions groups improvement hints by urgency.
type Suggestions struct {
	Critical  []string `json:"critical"`
	Important []string `json:"important"`
	Optional  []string `json:"optional"`
}

// GrammarIssue is a single pattern-based writing flag.
type GrammarIssue struct {
	Type        string   `json:"type"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

package scoring

import "strings"

const (
	msgTooShort       = "Your resume is too short. Aim for at least 500-800 words to properly showcase your experience."
	msgAddSkills      = "Add more relevant skills to your resume. Include both technical and soft skills."
	msgAddExperience  = "Include a clear work experience section with your previous roles."
	msgActionVerbs    = "Use more action verbs (managed, led, developed, created, implemented) to improve ATS compatibility."
	msgProfileLinks   = "Add links to your LinkedIn profile, GitHub, or personal website."
	msgMoreKeywords   = "Include more industry-standard keywords to improve ATS scanning."
	msgQuantify       = `Consider adding quantifiable achievements (e.g., "Increased sales by 25%").`
	msgCleanFormat    = "Ensure your resume is in a clean, professional format."
	msgTailorPerJob   = "Tailor your resume for each job application by matching keywords from the job description."
	minSkillsFound    = 5
	minKeywordsFound  = 5
	minATSForNoVerbs  = 60
)

// staticOptionalTips are appended to every report.
var staticOptionalTips = []string{msgQuantify, msgCleanFormat, msgTailorPerJob}

func ruleSuggestions(text string, skillsFound, keywords []string, ats int) Suggestions {
	lower := strings.ToLower(text)
	out := Suggestions{
		Critical:  []string{},
		Important: []string{},
		Optional:  []string{},
	}

	if charCount(text) < minCharCount {
		out.Critical = append(out.Critical, msgTooShort)
	}
	if len(skillsFound) < minSkillsFound {
		out.Critical = append(out.Critical, msgAddSkills)
	}
	if !strings.Contains(lower, "experience") && !strings.Contains(lower, "work history") {
		out.Critical = append(out.Critical, msgAddExperience)
	}

	if ats < minATSForNoVerbs {
		out.Important = append(out.Important, msgActionVerbs)
	}
	if !strings.Contains(lower, "http") && !strings.Contains(lower, "linkedin") && !strings.Contains(lower, "github") {
		out.Important = append(out.Important, msgProfileLinks)
	}
	if len(keywords) < minKeywordsFound {
		out.Important = append(out.Important, msgMoreKeywords)
	}

	out.Optional = append(out.Optional, staticOptionalTips...)
	return out
}

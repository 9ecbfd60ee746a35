package hh

// Employer is the employer block embedded in vacancy responses.
type Employer struct {
	Name string `json:"name"`
}

// Vacancy is a single search result item. The search endpoint returns a
// shortened shape; the full description requires a separate detail fetch.
type Vacancy struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Employer     Employer `json:"employer"`
	AlternateURL string   `json:"alternate_url"`
	PublishedAt  string   `json:"published_at"`
}

// SearchResponse is the paginated search envelope.
type SearchResponse struct {
	Items []Vacancy `json:"items"`
	Found int       `json:"found"`
	Pages int       `json:"pages"`
	Page  int       `json:"page"`
}

// VacancyDetail is the full vacancy: adds the HTML-bearing description.
type VacancyDetail struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Employer     Employer `json:"employer"`
	AlternateURL string   `json:"alternate_url"`
}

// ResumeRef is a resume as listed by /resumes/mine.
type ResumeRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type resumeListResponse struct {
	Items []ResumeRef `json:"items"`
}

// Experience is a single job entry in a resume.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Start       string `json:"start"` // "2021-03-01"
	End         string `json:"end"`   // empty = current
	Description string `json:"description"`
}

// KeySkill is a named skill tag.
type KeySkill struct {
	Name string `json:"name"`
}

// EducationEntry is a single education record.
type EducationEntry struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Year         int    `json:"year"`
}

// Education groups education records; only primary is used.
type Education struct {
	Primary []EducationEntry `json:"primary"`
}

// LanguageLevel is the proficiency level of a spoken language.
type LanguageLevel struct {
	Name string `json:"name"`
}

// Language is a spoken language entry.
type Language struct {
	Name  string        `json:"name"`
	Level LanguageLevel `json:"level"`
}

// ResumeDetail is the full resume used for letter drafting. Fields beyond
// these exist in the API response but are not needed for the prompt.
type ResumeDetail struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Experience []Experience `json:"experience"`
	KeySkills  []KeySkill   `json:"key_skills"`
	Education  Education    `json:"education"`
	Language   []Language   `json:"language"`
}

// apiError is one entry of the structured error body HH returns on 4xx.
type apiError struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// errorResponse is the structured error envelope.
type errorResponse struct {
	Errors      []apiError `json:"errors"`
	Description string     `json:"description"`
}

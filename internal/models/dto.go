package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	DocType      string `json:"doc_type"`
	TextPreview  string `json:"text_preview,omitempty"`
}

type MatchRequest struct {
	ResumeID string `json:"resume_id" validate:"required,uuid"`
	JobID    string `json:"job_id" validate:"required,uuid"`
}

type MatchQueuedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// MatchResponse is returned once a match job has completed. It bundles the
// document identifiers, the score breakdown, the skill detail and the
// ordered recommendation list.
type MatchResponse struct {
	ID       string       `json:"id"`
	ResumeID string       `json:"resume_id"`
	JobID    string       `json:"job_id"`
	Status   string       `json:"status"`
	Result   *MatchDetail `json:"result,omitempty"`

	ErrorMessage *string `json:"error_message,omitempty"`
}

type MatchDetail struct {
	OverallScore         float64             `json:"overall_score"`
	SemanticScore        float64             `json:"semantic_score"`
	SkillMatchPercentage float64             `json:"skill_match_percentage"`
	ExperienceMatch      bool                `json:"experience_match"`
	EducationMatch       bool                `json:"education_match"`
	MatchedSkills        []string            `json:"matched_skills"`
	MissingSkills        []string            `json:"missing_skills"`
	Recommendations      []string            `json:"recommendations"`
	Entities             map[string][]string `json:"entities,omitempty"`
	Explanation          string              `json:"explanation"`
}

type SimilarDocument struct {
	ID       string  `json:"id"`
	DocType  string  `json:"doc_type"`
	Filename string  `json:"filename"`
	Score    float32 `json:"score"`
}

type SimilarDocumentsResponse struct {
	DocumentID string            `json:"document_id"`
	Similar    []SimilarDocument `json:"similar"`
}

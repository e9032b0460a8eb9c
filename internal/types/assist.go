package types

import "github.com/go-playground/validator/v10"

// CoverLetterRequest carries the inputs for cover letter generation.
type CoverLetterRequest struct {
	Name        string `json:"name" validate:"required"`
	Role        string `json:"role" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Degree      string `json:"degree,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Skills      string `json:"skills" validate:"required"`
	Achievement string `json:"achievement,omitempty"`
	WhyCompany  string `json:"why_company,omitempty"`
	Tone        string `json:"tone,omitempty" validate:"omitempty,oneof=professional enthusiastic confident creative"`
}

// Validate validates the CoverLetterRequest using the validator.
func (r *CoverLetterRequest) Validate() error {
	return validator.New().Struct(r)
}

// LinkedInRequest carries the inputs for a LinkedIn "About" section.
type LinkedInRequest struct {
	Name        string `json:"name,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Target      string `json:"target" validate:"required"`
	Skills      string `json:"skills" validate:"required"`
	Projects    string `json:"projects,omitempty"`
	Achievement string `json:"achievement,omitempty"`
	Personality string `json:"personality,omitempty"`
}

// Validate validates the LinkedInRequest using the validator.
func (r *LinkedInRequest) Validate() error {
	return validator.New().Struct(r)
}

// ATSRating buckets an ATS match score.
type ATSRating string

// ATS rating bands.
const (
	RatingExcellent ATSRating = "excellent"
	RatingGood      ATSRating = "good"
	RatingAverage   ATSRating = "average"
	RatingPoor      ATSRating = "poor"
	RatingUnknown   ATSRating = "unknown"
)

// RatingForScore maps a 0-100 score onto a rating band.
func RatingForScore(score int) ATSRating {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 60:
		return RatingGood
	case score >= 40:
		return RatingAverage
	default:
		return RatingPoor
	}
}

// ATSReport is the parsed result of an ATS match analysis.
type ATSReport struct {
	Score           int       `json:"score"`
	ScoreFound      bool      `json:"score_found"`
	Rating          ATSRating `json:"rating"`
	MatchedKeywords string    `json:"matched_keywords,omitempty"`
	MissingKeywords string    `json:"missing_keywords,omitempty"`
	SkillGaps       string    `json:"skill_gaps,omitempty"`
	Strengths       string    `json:"strengths,omitempty"`
	Recommendations string    `json:"recommendations,omitempty"`
	Verdict         string    `json:"verdict,omitempty"`
	Raw             string    `json:"raw"`
}

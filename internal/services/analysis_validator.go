package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/ai"
)

// ValidationError represents a missing part of the analysis
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// ValidationWarning represents a non-critical issue
type ValidationWarning struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of checking a model answer against the
// requested layout.
type ValidationResult struct {
	Valid       bool                `json:"valid"`
	NeedsReview bool                `json:"needs_review"`
	Errors      []ValidationError   `json:"errors"`
	Warnings    []ValidationWarning `json:"warnings"`
	Hashtags    []string            `json:"hashtags"`
}

var (
	headingPattern = regexp.MustCompile(`^\s*(?:#{1,6}\s*|\*\*)(.+?)(?:\*\*)?\s*:?\s*#*\s*$`)
	hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
)

// AnalysisValidator checks that a model answer has the three requested
// sections and a sensible number of hashtags. It never rewrites the answer.
type AnalysisValidator struct {
	minHashtags int
	maxHashtags int
}

// NewAnalysisValidator creates a validator expecting 5 to 10 hashtags
func NewAnalysisValidator() *AnalysisValidator {
	return &AnalysisValidator{minHashtags: 5, maxHashtags: 10}
}

// Validate inspects the Markdown answer
func (v *AnalysisValidator) Validate(markdown string) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
	}

	sections := splitSections(markdown)

	// 1. All three headings present
	for _, heading := range []string{ai.HeadingImprovedText, ai.HeadingSuggestedHashtags, ai.HeadingEngagementAdvice} {
		if _, ok := sections[strings.ToLower(heading)]; !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fieldName(heading),
				Code:    "missing_section",
				Message: "Section not found: " + heading,
			})
		}
	}

	// 2. Hashtag count
	v.validateHashtags(sections, result)

	// 3. Advice body
	if body, ok := sections[strings.ToLower(ai.HeadingEngagementAdvice)]; ok && strings.TrimSpace(body) == "" {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   fieldName(ai.HeadingEngagementAdvice),
			Code:    "empty_section",
			Message: "Engagement advice is empty",
		})
	}

	result.Valid = len(result.Errors) == 0
	result.NeedsReview = len(result.Warnings) > 0

	return result
}

// validateHashtags checks the suggested hashtag count is within range
func (v *AnalysisValidator) validateHashtags(sections map[string]string, result *ValidationResult) {
	body, ok := sections[strings.ToLower(ai.HeadingSuggestedHashtags)]
	if !ok {
		return
	}

	seen := make(map[string]bool)
	for _, tag := range hashtagPattern.FindAllString(body, -1) {
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		result.Hashtags = append(result.Hashtags, tag)
	}

	n := len(result.Hashtags)
	if n < v.minHashtags || n > v.maxHashtags {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   fieldName(ai.HeadingSuggestedHashtags),
			Code:    "hashtag_count",
			Message: fmt.Sprintf("Expected %d-%d hashtags, got %d", v.minHashtags, v.maxHashtags, n),
		})
	}
}

// splitSections maps lower-cased heading text to the body below it
func splitSections(markdown string) map[string]string {
	sections := make(map[string]string)
	current := ""
	var body strings.Builder
	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(body.String())
		}
		body.Reset()
	}

	for _, line := range strings.Split(markdown, "\n") {
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			name := strings.ToLower(strings.Trim(m[1], "*: "))
			if isKnownHeading(name) {
				flush()
				current = name
				continue
			}
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()

	return sections
}

func isKnownHeading(name string) bool {
	switch name {
	case strings.ToLower(ai.HeadingImprovedText),
		strings.ToLower(ai.HeadingSuggestedHashtags),
		strings.ToLower(ai.HeadingEngagementAdvice):
		return true
	}
	return false
}

func fieldName(heading string) string {
	return strings.ReplaceAll(strings.ToLower(heading), " ", "_")
}

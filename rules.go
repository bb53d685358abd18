package pitchprofile

import (
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"strings"
	"time"
)

// ValidDevelopmentStages lists the development stages reviewers recognise
var ValidDevelopmentStages = map[string]bool{
	"idea":      true,
	"prototype": true,
	"mvp":       true,
	"growth":    true,
	"scale":     true,
}

// earliestEducationYear bounds education years from below.
const earliestEducationYear = 1900

// ValidateProfile is the exported wrapper for profile content validation
func ValidateProfile(profile Profile) []string {
	return validateProfileStruct(profile, time.Now())
}

// validateProfileStruct validates the profile content. Structural problems
// (missing keys, wrong types) are caught earlier by Parse; this checks values.
func validateProfileStruct(profile Profile, now time.Time) []string {
	var errors []string

	// Team
	for i, member := range profile.Team {
		prefix := fmt.Sprintf("team[%d]", i)
		if strings.TrimSpace(member.FullName) == "" {
			errors = append(errors, prefix+".full_name is required")
		}
		if strings.TrimSpace(member.Role) == "" {
			errors = append(errors, prefix+".role is required")
		}
		if strings.TrimSpace(member.Bio) == "" {
			errors = append(errors, prefix+".bio is required")
		}
		if member.YearsExperience < 0 {
			errors = append(errors, fmt.Sprintf("%s.years_experience must not be negative, got: %d", prefix, member.YearsExperience))
		}
		if member.Email != "" {
			if _, err := mail.ParseAddress(member.Email); err != nil {
				errors = append(errors, fmt.Sprintf("%s.email is not a valid email: %s", prefix, member.Email))
			}
		}
		if member.LinkedIn != "" && !isValidURL(member.LinkedIn) {
			errors = append(errors, fmt.Sprintf("%s.linkedin is not a valid URL: %s", prefix, member.LinkedIn))
		}
		if member.GitHub != "" && !isValidURL(member.GitHub) {
			errors = append(errors, fmt.Sprintf("%s.github is not a valid URL: %s", prefix, member.GitHub))
		}
		for j, skill := range member.Skills {
			if strings.TrimSpace(skill) == "" {
				errors = append(errors, fmt.Sprintf("%s.skills[%d] cannot be empty", prefix, j))
			}
		}
		for j, edu := range member.Education {
			eduPrefix := fmt.Sprintf("%s.education[%d]", prefix, j)
			if strings.TrimSpace(edu.Institution) == "" {
				errors = append(errors, eduPrefix+".institution is required")
			}
			if strings.TrimSpace(edu.Degree) == "" {
				errors = append(errors, eduPrefix+".degree is required")
			}
			if year, ok := edu.Year.Int(); ok && (year < earliestEducationYear || year > now.Year()+10) {
				errors = append(errors, fmt.Sprintf("%s.year is out of range: %d", eduPrefix, year))
			}
		}
	}

	// Basic info
	info := profile.BasicInfo
	errors = appendRequired(errors, "basic_info.project_name", info.ProjectName)
	errors = appendRequired(errors, "basic_info.tagline", info.Tagline)
	errors = appendRequired(errors, "basic_info.development_stage", info.DevelopmentStage)
	errors = appendRequired(errors, "basic_info.sector", info.Sector)
	if len(info.Industry) == 0 {
		errors = append(errors, "basic_info.industry is required and cannot be empty")
	}
	if info.Website != "" && !isValidURL(info.Website) {
		errors = append(errors, fmt.Sprintf("basic_info.website is not a valid URL: %s", info.Website))
	}
	if info.GitHubRepo != "" && !isValidURL(info.GitHubRepo) {
		errors = append(errors, fmt.Sprintf("basic_info.github_repo is not a valid URL: %s", info.GitHubRepo))
	}
	if !info.FoundingDate.IsZero() {
		if t, err := info.FoundingDate.Time(); err != nil {
			errors = append(errors, fmt.Sprintf("basic_info.founding_date: %v", err))
		} else if t.After(now) {
			errors = append(errors, fmt.Sprintf("basic_info.founding_date is in the future: %s", info.FoundingDate))
		}
	}

	// Details
	details := profile.Details
	errors = appendRequired(errors, "details.problem_statement", details.ProblemStatement)
	errors = appendRequired(errors, "details.solution_description", details.SolutionDescription)
	errors = appendRequired(errors, "details.unique_value_proposition", details.UniqueValueProposition)
	errors = appendRequired(errors, "details.target_audience", details.TargetAudience)
	errors = appendRequired(errors, "details.business_model", details.BusinessModel)
	for i, c := range details.Competitors {
		errors = appendRequired(errors, fmt.Sprintf("details.competitors[%d].name", i), c.Name)
		errors = appendRequired(errors, fmt.Sprintf("details.competitors[%d].differentiator", i), c.Differentiator)
	}
	for _, e := range details.Roadmap {
		if strings.TrimSpace(e.Key) == "" {
			errors = append(errors, "details.roadmap has an empty period")
			continue
		}
		if strings.TrimSpace(e.Value) == "" {
			errors = append(errors, fmt.Sprintf("details.roadmap[%q] milestone cannot be empty", e.Key))
		}
	}

	// Technical
	if len(profile.Technical.TechStack) == 0 {
		errors = append(errors, "technical.tech_stack is required and cannot be empty")
	}

	// Funding
	for _, e := range profile.Funding.UseOfFunds {
		if _, err := ParsePercent(e.Value); err != nil {
			errors = append(errors, fmt.Sprintf("funding.use_of_funds[%q]: %v", e.Key, err))
		}
	}

	// Incubator preferences
	prefs := profile.IncubatorPreferences
	errors = appendRequired(errors, "incubator_preferences.program_length_preference", prefs.ProgramLengthPreference)
	for i, r := range prefs.ResourcesNeeded {
		if strings.TrimSpace(r) == "" {
			errors = append(errors, fmt.Sprintf("incubator_preferences.resources_needed[%d] cannot be empty", i))
		}
	}

	return errors
}

// CheckContent returns content-sanity warnings. They do not make a profile
// invalid unless the caller runs in strict mode.
func CheckContent(profile Profile) []string {
	var warnings []string

	if len(profile.Team) == 0 {
		warnings = append(warnings, "team is empty")
	}
	for i, member := range profile.Team {
		if dup := duplicates(member.Skills); len(dup) > 0 {
			warnings = append(warnings, fmt.Sprintf("team[%d].skills has duplicate entries: %s", i, strings.Join(dup, ", ")))
		}
	}

	stage := profile.BasicInfo.DevelopmentStage
	if stage != "" && !ValidDevelopmentStages[strings.ToLower(strings.TrimSpace(stage))] {
		warnings = append(warnings, fmt.Sprintf("basic_info.development_stage has unusual value %q (expected one of: Idea, Prototype, MVP, Growth, Scale)", stage))
	}
	if dup := duplicates(profile.BasicInfo.Industry); len(dup) > 0 {
		warnings = append(warnings, fmt.Sprintf("basic_info.industry has duplicate entries: %s", strings.Join(dup, ", ")))
	}

	if len(profile.Funding.UseOfFunds) > 0 {
		total, err := FundsTotal(profile.Funding.UseOfFunds)
		if err == nil && math.Abs(total-100) > percentTolerance {
			warnings = append(warnings, fmt.Sprintf("funding.use_of_funds sums to %s%%, expected 100%%", formatPercent(total)))
		}
	}

	return warnings
}

func appendRequired(errors []string, path, value string) []string {
	if strings.TrimSpace(value) == "" {
		return append(errors, path+" is required")
	}
	return errors
}

// duplicates returns the values that appear more than once, compared case-insensitively.
func duplicates(values []string) []string {
	seen := make(map[string]int, len(values))
	var dup []string
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		seen[key]++
		if seen[key] == 2 {
			dup = append(dup, v)
		}
	}
	return dup
}

// isValidURL checks if a string is a valid HTTP(S) URL
func isValidURL(str string) bool {
	u, err := url.Parse(str)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	// Host must contain at least one dot with non-empty labels on both sides
	host := u.Hostname()
	if !strings.Contains(host, ".") {
		return false
	}
	parts := strings.SplitN(host, ".", 2)
	if parts[0] == "" || parts[1] == "" {
		return false
	}
	return true
}

// isHTTPURL checks if a string looks like an HTTP URL (as opposed to a handle)
func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

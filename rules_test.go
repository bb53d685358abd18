package pitchprofile

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func TestValidateProfileStruct(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(p *Profile)
		wantErr string // substring; empty means valid
	}{
		{
			name:   "valid profile",
			modify: func(p *Profile) {},
		},
		{
			name:    "empty full name",
			modify:  func(p *Profile) { p.Team[0].FullName = "  " },
			wantErr: "team[0].full_name is required",
		},
		{
			name:    "empty role",
			modify:  func(p *Profile) { p.Team[0].Role = "" },
			wantErr: "team[0].role is required",
		},
		{
			name:    "negative experience",
			modify:  func(p *Profile) { p.Team[0].YearsExperience = -1 },
			wantErr: "years_experience must not be negative",
		},
		{
			name:    "bad email",
			modify:  func(p *Profile) { p.Team[0].Email = "not-an-email" },
			wantErr: "team[0].email is not a valid email",
		},
		{
			name:    "bad linkedin URL",
			modify:  func(p *Profile) { p.Team[0].LinkedIn = "linkedin/in/ada" },
			wantErr: "team[0].linkedin is not a valid URL",
		},
		{
			name:    "empty skill",
			modify:  func(p *Profile) { p.Team[0].Skills = append(p.Team[0].Skills, "") },
			wantErr: "team[0].skills[2] cannot be empty",
		},
		{
			name:    "education year out of range",
			modify:  func(p *Profile) { p.Team[0].Education[0].Year = "1850" },
			wantErr: "team[0].education[0].year is out of range",
		},
		{
			name:    "education without degree",
			modify:  func(p *Profile) { p.Team[0].Education[0].Degree = "" },
			wantErr: "team[0].education[0].degree is required",
		},
		{
			name:    "empty project name",
			modify:  func(p *Profile) { p.BasicInfo.ProjectName = "" },
			wantErr: "basic_info.project_name is required",
		},
		{
			name:    "no industry tags",
			modify:  func(p *Profile) { p.BasicInfo.Industry = nil },
			wantErr: "basic_info.industry is required",
		},
		{
			name:    "bad website",
			modify:  func(p *Profile) { p.BasicInfo.Website = "ftp://example.com" },
			wantErr: "basic_info.website is not a valid URL",
		},
		{
			name:    "founding date in the future",
			modify:  func(p *Profile) { p.BasicInfo.FoundingDate = "2030-01" },
			wantErr: "basic_info.founding_date is in the future",
		},
		{
			name:    "competitor without differentiator",
			modify:  func(p *Profile) { p.Details.Competitors[0].Differentiator = "" },
			wantErr: "details.competitors[0].differentiator is required",
		},
		{
			name:    "empty roadmap milestone",
			modify:  func(p *Profile) { p.Details.Roadmap[1].Value = " " },
			wantErr: `details.roadmap["Q3 2025"] milestone cannot be empty`,
		},
		{
			name:    "empty tech stack",
			modify:  func(p *Profile) { p.Technical.TechStack = []string{} },
			wantErr: "technical.tech_stack is required",
		},
		{
			name:    "unparseable allocation",
			modify:  func(p *Profile) { p.Funding.UseOfFunds[0].Value = "lots" },
			wantErr: `funding.use_of_funds["Development"]`,
		},
		{
			name:    "empty program length",
			modify:  func(p *Profile) { p.IncubatorPreferences.ProgramLengthPreference = "" },
			wantErr: "incubator_preferences.program_length_preference is required",
		},
		{
			name:   "optional fields may be empty",
			modify: func(p *Profile) { p.Funding = Funding{}; p.BasicInfo.Website = ""; p.Team[0].Email = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.modify(&p)
			errs := validateProfileStruct(p, testNow)
			if tt.wantErr == "" {
				if len(errs) > 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			for _, e := range errs {
				if strings.Contains(e, tt.wantErr) {
					return
				}
			}
			t.Errorf("expected error containing %q, got %v", tt.wantErr, errs)
		})
	}
}

func TestCheckContent(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(p *Profile)
		wantWarning string
	}{
		{
			name:   "clean profile",
			modify: func(p *Profile) {},
		},
		{
			name:        "use of funds under 100",
			modify:      func(p *Profile) { p.Funding.UseOfFunds[1].Value = "30%" },
			wantWarning: "funding.use_of_funds sums to 90%",
		},
		{
			name:        "use of funds over 100",
			modify:      func(p *Profile) { p.Funding.UseOfFunds[0].Value = "62.5%" },
			wantWarning: "sums to 102.5%",
		},
		{
			name: "thirds within tolerance",
			modify: func(p *Profile) {
				p.Funding.UseOfFunds = OrderedMap{{"A", "33.33%"}, {"B", "33.33%"}, {"C", "33.34%"}}
			},
		},
		{
			name:        "unusual stage",
			modify:      func(p *Profile) { p.BasicInfo.DevelopmentStage = "Hypergrowth" },
			wantWarning: "unusual value \"Hypergrowth\"",
		},
		{
			name:        "duplicate skills",
			modify:      func(p *Profile) { p.Team[0].Skills = []string{"Go", "go"} },
			wantWarning: "team[0].skills has duplicate entries: go",
		},
		{
			name:        "no team",
			modify:      func(p *Profile) { p.Team = nil },
			wantWarning: "team is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.modify(&p)
			warnings := CheckContent(p)
			if tt.wantWarning == "" {
				if len(warnings) > 0 {
					t.Errorf("expected no warnings, got %v", warnings)
				}
				return
			}
			for _, w := range warnings {
				if strings.Contains(w, tt.wantWarning) {
					return
				}
			}
			t.Errorf("expected warning containing %q, got %v", tt.wantWarning, warnings)
		})
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://aihawk.dev", true},
		{"http://example.com/path?q=1", true},
		{"https://www.linkedin.com/in/someone", true},
		{"ftp://example.com", false},
		{"https://localhost", false},
		{"https://.com", false},
		{"example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isValidURL(tt.url); got != tt.want {
			t.Errorf("isValidURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

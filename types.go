package pitchprofile

import (
	"net/http"
	"time"
)

// Profile is a startup pitch profile document.
type Profile struct {
	Team                 []TeamMember         `json:"team" yaml:"team"`
	BasicInfo            BasicInfo            `json:"basic_info" yaml:"basic_info"`
	Details              Details              `json:"details" yaml:"details"`
	Technical            Technical            `json:"technical" yaml:"technical"`
	Funding              Funding              `json:"funding" yaml:"funding"`
	IncubatorPreferences IncubatorPreferences `json:"incubator_preferences" yaml:"incubator_preferences"`
}

// TeamMember describes one founder or team member
type TeamMember struct {
	FullName        string      `json:"full_name" yaml:"full_name"`
	Role            string      `json:"role" yaml:"role"`
	Email           string      `json:"email,omitempty" yaml:"email,omitempty"`
	LinkedIn        string      `json:"linkedin,omitempty" yaml:"linkedin,omitempty"` // Profile URL
	GitHub          string      `json:"github,omitempty" yaml:"github,omitempty"`     // Profile URL
	Bio             string      `json:"bio" yaml:"bio"`
	Skills          []string    `json:"skills" yaml:"skills"`
	YearsExperience int         `json:"years_experience" yaml:"years_experience"`
	Education       []Education `json:"education" yaml:"education"`
}

type Education struct {
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Year        Year   `json:"year,omitempty" yaml:"year,omitempty"` // Graduation year or range
}

// BasicInfo holds the project identity fields
type BasicInfo struct {
	ProjectName      string   `json:"project_name" yaml:"project_name"`
	Tagline          string   `json:"tagline" yaml:"tagline"` // One-line description
	Website          string   `json:"website,omitempty" yaml:"website,omitempty"`
	GitHubRepo       string   `json:"github_repo,omitempty" yaml:"github_repo,omitempty"`
	FoundingDate     Date     `json:"founding_date,omitempty" yaml:"founding_date,omitempty"`
	DevelopmentStage string   `json:"development_stage" yaml:"development_stage"` // e.g. "Idea", "Prototype", "MVP", "Growth"
	Sector           string   `json:"sector" yaml:"sector"`                       // e.g. "Fintech", "AI/ML"
	Industry         []string `json:"industry" yaml:"industry"`
}

// Details is the business narrative of the profile
type Details struct {
	ProblemStatement       string       `json:"problem_statement" yaml:"problem_statement"`
	SolutionDescription    string       `json:"solution_description" yaml:"solution_description"`
	UniqueValueProposition string       `json:"unique_value_proposition" yaml:"unique_value_proposition"`
	TargetAudience         string       `json:"target_audience" yaml:"target_audience"`
	MarketSize             string       `json:"market_size,omitempty" yaml:"market_size,omitempty"`
	BusinessModel          string       `json:"business_model" yaml:"business_model"`
	RevenueStreams         []string     `json:"revenue_streams" yaml:"revenue_streams"`
	Competitors            []Competitor `json:"competitors" yaml:"competitors"`
	Traction               string       `json:"traction,omitempty" yaml:"traction,omitempty"` // Current metrics, users, revenue
	Roadmap                OrderedMap   `json:"roadmap" yaml:"roadmap"`                       // Time period -> milestone
}

type Competitor struct {
	Name           string `json:"name" yaml:"name"`
	Differentiator string `json:"differentiator" yaml:"differentiator"`
}

type Technical struct {
	TechStack                []string `json:"tech_stack" yaml:"tech_stack"`
	IntellectualProperty     string   `json:"intellectual_property,omitempty" yaml:"intellectual_property,omitempty"`
	ScalabilityApproach      string   `json:"scalability_approach,omitempty" yaml:"scalability_approach,omitempty"`
	CurrentChallenges        []string `json:"current_challenges" yaml:"current_challenges"`
	FutureTechnologicalNeeds []string `json:"future_technological_needs" yaml:"future_technological_needs"`
}

// Funding describes capital raised and planned. Every field is optional.
type Funding struct {
	FundingToDate  string     `json:"funding_to_date,omitempty" yaml:"funding_to_date,omitempty"`
	FundingSources []string   `json:"funding_sources,omitempty" yaml:"funding_sources,omitempty"`
	CurrentRunway  string     `json:"current_runway,omitempty" yaml:"current_runway,omitempty"`
	FundingNeeded  string     `json:"funding_needed,omitempty" yaml:"funding_needed,omitempty"`
	UseOfFunds     OrderedMap `json:"use_of_funds,omitempty" yaml:"use_of_funds,omitempty"` // Category -> "40%"
}

type IncubatorPreferences struct {
	ResourcesNeeded         []string `json:"resources_needed" yaml:"resources_needed"`                   // e.g. "Mentorship", "Legal Support"
	ProgramLengthPreference string   `json:"program_length_preference" yaml:"program_length_preference"` // e.g. "3 months"
	EquityWillingness       string   `json:"equity_willingness,omitempty" yaml:"equity_willingness,omitempty"`
	RelocationWillingness   bool     `json:"relocation_willingness" yaml:"relocation_willingness"`
	RemoteParticipation     bool     `json:"remote_participation" yaml:"remote_participation"`
	SpecificMentorsDesired  []string `json:"specific_mentors_desired,omitempty" yaml:"specific_mentors_desired,omitempty"`
}

// Config represents the validator configuration
type Config struct {
	ProfileListURL   string        `yaml:"profile_list_url"`
	CacheDir         string        `yaml:"cache_dir"`
	OutputFormat     string        `yaml:"output_format"` // json, yaml, text
	Strict           bool          `yaml:"strict"`        // Treat warnings as errors
	AuditConcurrency int           `yaml:"audit_concurrency"`
	AuditTimeout     time.Duration `yaml:"audit_timeout"`
	AuditRate        float64       `yaml:"audit_rate"` // Requests per second, 0 disables pacing
	GitHubToken      string        `yaml:"-"`
}

// ValidationResult represents the result of validating one profile
type ValidationResult struct {
	URL          string    `json:"url" yaml:"url"`
	ProjectName  string    `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	Valid        bool      `json:"valid" yaml:"valid"`
	Errors       []string  `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings     []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Changed      bool      `json:"changed" yaml:"changed"`
	LastChecked  time.Time `json:"last_checked" yaml:"last_checked"`
	PreviousHash string    `json:"previous_hash,omitempty" yaml:"previous_hash,omitempty"`
	CurrentHash  string    `json:"current_hash" yaml:"current_hash"`
}

// CacheEntry represents cached profile data
type CacheEntry struct {
	URL         string    `json:"url"`
	Hash        string    `json:"hash"`
	LastChecked time.Time `json:"last_checked"`
}

// Cache manages cached validation state keyed by profile URL
type Cache struct {
	Entries map[string]CacheEntry `json:"entries"`
	dir     string
}

// ProfileValidator validates local and remote profile documents
type ProfileValidator struct {
	config *Config
	cache  *Cache
	client *http.Client
}

// ProfileListEntry represents a single entry in the profile list
type ProfileListEntry struct {
	URL string `json:"url" yaml:"url"`
	ID  string `json:"id,omitempty" yaml:"id,omitempty"`
}

// ProfileListConfig represents the structure of the profile list file
type ProfileListConfig struct {
	Profiles []ProfileListEntry `json:"profiles" yaml:"profiles"`
}

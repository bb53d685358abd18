package pitchprofile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/google/renameio/v2"
	"k8s.io/klog/v2"
)

// ScaffoldFileName is the file written by WriteScaffold.
const ScaffoldFileName = "profile.yaml"

// ErrScaffoldExists is returned when WriteScaffold would overwrite a file.
var ErrScaffoldExists = errors.New("scaffold target already exists")

const todo = "TODO"

// BootstrapResult is a scaffolded profile plus bookkeeping about where its
// values came from.
type BootstrapResult struct {
	Profile Profile

	// Source tracking: which fields came from which source
	Sources map[string]string `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Fields the user must fill in by hand
	TODOs []string `json:"todos,omitempty" yaml:"todos,omitempty"`
}

// ScaffoldProfile returns a placeholder profile for projectName. Every
// required key is present so the result parses; text fields that need human
// input hold TODO markers.
func ScaffoldProfile(projectName string) *BootstrapResult {
	if projectName == "" {
		projectName = todo + ": project name"
	}
	p := Profile{
		Team: []TeamMember{{
			FullName:        todo + ": full name",
			Role:            todo + ": role",
			Bio:             todo + ": short bio",
			Skills:          []string{todo},
			YearsExperience: 0,
			Education:       []Education{{Institution: todo + ": institution", Degree: todo + ": degree"}},
		}},
		BasicInfo: BasicInfo{
			ProjectName:      projectName,
			Tagline:          todo + ": one-line description",
			DevelopmentStage: "Idea",
			Sector:           todo + ": sector",
			Industry:         []string{todo},
		},
		Details: Details{
			ProblemStatement:       todo + ": problem statement",
			SolutionDescription:    todo + ": solution",
			UniqueValueProposition: todo + ": unique value proposition",
			TargetAudience:         todo + ": target audience",
			BusinessModel:          todo + ": business model",
			RevenueStreams:         []string{todo},
			Competitors:            []Competitor{{Name: todo + ": competitor", Differentiator: todo + ": differentiator"}},
			Roadmap:                OrderedMap{{Key: todo + ": period", Value: todo + ": milestone"}},
		},
		Technical: Technical{
			TechStack:                []string{todo},
			CurrentChallenges:        []string{todo},
			FutureTechnologicalNeeds: []string{todo},
		},
		IncubatorPreferences: IncubatorPreferences{
			ResourcesNeeded:         []string{todo},
			ProgramLengthPreference: todo + ": e.g. 3 months",
		},
	}

	return &BootstrapResult{
		Profile: p,
		Sources: map[string]string{"basic_info.project_name": "user"},
		TODOs: []string{
			"team: add every founder and team member",
			"basic_info: tagline, sector and industry",
			"details: problem, solution, audience, business model, competitors and roadmap",
			"technical: tech stack, challenges and needs",
			"funding: optional, use_of_funds percentages must sum to 100",
			"incubator_preferences: resources and program length",
		},
	}
}

// BootstrapFromGitHub scaffolds a profile and prefills basic_info from a
// GitHub repository.
func BootstrapFromGitHub(ctx context.Context, client *github.Client, owner, repo string) (*BootstrapResult, error) {
	log := klog.FromContext(ctx)

	r, _, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch GitHub repository %s/%s: %w", owner, repo, err)
	}
	log.V(1).Info("fetched repository", "owner", owner, "repo", repo)

	result := ScaffoldProfile(r.GetName())
	info := &result.Profile.BasicInfo
	result.Sources["basic_info.project_name"] = "github"

	if r.GetHTMLURL() != "" {
		info.GitHubRepo = r.GetHTMLURL()
		result.Sources["basic_info.github_repo"] = "github"
	}
	if d := strings.TrimSpace(r.GetDescription()); d != "" {
		info.Tagline = d
		result.Sources["basic_info.tagline"] = "github"
	}
	if h := strings.TrimSpace(r.GetHomepage()); h != "" && isHTTPURL(h) {
		info.Website = h
		result.Sources["basic_info.website"] = "github"
	}
	if len(r.Topics) > 0 {
		info.Industry = append([]string(nil), r.Topics...)
		result.Sources["basic_info.industry"] = "github"
	}
	if created := r.GetCreatedAt(); !created.IsZero() {
		info.FoundingDate = Date(created.Format("2006-01-02"))
		result.Sources["basic_info.founding_date"] = "github"
	}
	if lang := r.GetLanguage(); lang != "" {
		result.Profile.Technical.TechStack = []string{lang}
		result.Sources["technical.tech_stack"] = "github"
	}
	return result, nil
}

// GenerateProfileYAML renders the scaffold with a comment header listing the
// fields still to complete.
func GenerateProfileYAML(result *BootstrapResult) ([]byte, error) {
	body, err := Marshal(result.Profile)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Pitch profile for %s\n", result.Profile.BasicInfo.ProjectName)
	b.WriteString("# Generated by pitchprofile bootstrap. Replace every TODO value.\n")
	if len(result.TODOs) > 0 {
		b.WriteString("#\n# Still to complete:\n")
		for _, t := range result.TODOs {
			fmt.Fprintf(&b, "#   - %s\n", t)
		}
	}
	b.WriteString("\n")
	b.Write(body)
	return []byte(b.String()), nil
}

// WriteScaffold writes the scaffold to dir/profile.yaml and returns its path.
// An existing file is only replaced when force is set.
func WriteScaffold(dir string, result *BootstrapResult, force bool) (string, error) {
	path := filepath.Join(dir, ScaffoldFileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s (use --force to replace)", ErrScaffoldExists, path)
		}
	}

	data, err := GenerateProfileYAML(result)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

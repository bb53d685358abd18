package pitchprofile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"k8s.io/klog/v2"
)

// AuditResult represents the result of checking a profile's outbound links
type AuditResult struct {
	ProjectName string       `json:"project_name"`
	Checks      []AuditCheck `json:"checks"`
	PassCount   int          `json:"pass_count"`
	FailCount   int          `json:"fail_count"`
	SkipCount   int          `json:"skip_count"`
}

// AuditCheck represents a single URL accessibility or GitHub identity check
type AuditCheck struct {
	Field      string `json:"field"`
	URL        string `json:"url"`
	Kind       string `json:"kind"`   // "http" or "github"
	Status     string `json:"status"` // "pass", "fail", "skip"
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// AuditOptions controls how AuditProfile performs its checks.
type AuditOptions struct {
	HTTPClient  *http.Client
	GitHub      *github.Client // nil skips GitHub identity checks
	Concurrency int
	Rate        float64 // Requests per second, 0 disables pacing
}

// AuditOptionsFromConfig builds audit options from the validator config.
func AuditOptionsFromConfig(config *Config) AuditOptions {
	return AuditOptions{
		HTTPClient:  &http.Client{Timeout: config.AuditTimeout},
		Concurrency: config.AuditConcurrency,
		Rate:        config.AuditRate,
	}
}

// NewGitHubClient creates a GitHub API client. baseURL overrides the API
// endpoint (GitHub Enterprise or tests); token may be empty.
func NewGitHubClient(token, baseURL string, httpClient *http.Client) (*github.Client, error) {
	client := github.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
		}
		client.BaseURL = u
	}
	return client, nil
}

// AuditProfile checks that every URL referenced by the profile is reachable
// and, with a GitHub client, that GitHub users and repositories exist.
func AuditProfile(ctx context.Context, profile Profile, opts AuditOptions) AuditResult {
	log := klog.FromContext(ctx)

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 4
	}
	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	checks := collectProfileURLs(profile)
	if opts.GitHub != nil {
		checks = append(checks, collectGitHubChecks(profile)...)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := range checks {
		check := &checks[i]
		if check.URL == "" {
			check.Status = "skip"
			continue
		}
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					check.Status = "fail"
					check.Error = err.Error()
					return nil
				}
			}
			switch check.Kind {
			case "github":
				runGitHubCheck(gctx, opts.GitHub, check)
			default:
				runHTTPCheck(gctx, opts.HTTPClient, check)
			}
			log.V(2).Info("audit check", "field", check.Field, "url", check.URL, "status", check.Status)
			return nil
		})
	}
	// Checks record their own failures; the group never returns an error
	_ = g.Wait()

	result := AuditResult{ProjectName: profile.BasicInfo.ProjectName, Checks: checks}
	for _, check := range checks {
		switch check.Status {
		case "pass":
			result.PassCount++
		case "fail":
			result.FailCount++
		default:
			result.SkipCount++
		}
	}
	log.Info("audit finished", "project", result.ProjectName, "pass", result.PassCount, "fail", result.FailCount, "skip", result.SkipCount)
	return result
}

func runHTTPCheck(ctx context.Context, client *http.Client, check *AuditCheck) {
	code, err := probe(ctx, client, http.MethodHead, check.URL)
	if err == nil && code == http.StatusMethodNotAllowed {
		code, err = probe(ctx, client, http.MethodGet, check.URL)
	}
	if err != nil {
		check.Status = "fail"
		check.Error = err.Error()
		return
	}
	check.StatusCode = code
	if code >= 200 && code < 400 {
		check.Status = "pass"
		return
	}
	check.Status = "fail"
	check.Error = fmt.Sprintf("HTTP %d", code)
}

func probe(ctx context.Context, client *http.Client, method, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func runGitHubCheck(ctx context.Context, client *github.Client, check *AuditCheck) {
	owner, repo, ok := parseGitHubURL(check.URL)
	if !ok {
		check.Status = "skip"
		check.Error = "not a GitHub user or repository URL"
		return
	}

	var resp *github.Response
	var err error
	if repo == "" {
		_, resp, err = client.Users.Get(ctx, owner)
	} else {
		_, resp, err = client.Repositories.Get(ctx, owner, repo)
	}
	if resp != nil {
		check.StatusCode = resp.StatusCode
	}
	if err != nil {
		check.Status = "fail"
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			check.Error = "not found on GitHub"
		} else {
			check.Error = err.Error()
		}
		return
	}
	check.Status = "pass"
}

// collectProfileURLs gathers all URL references from a profile for checking
func collectProfileURLs(profile Profile) []AuditCheck {
	var checks []AuditCheck

	if profile.BasicInfo.Website != "" {
		checks = append(checks, AuditCheck{Field: "basic_info.website", URL: profile.BasicInfo.Website, Kind: "http"})
	}
	if profile.BasicInfo.GitHubRepo != "" {
		checks = append(checks, AuditCheck{Field: "basic_info.github_repo", URL: profile.BasicInfo.GitHubRepo, Kind: "http"})
	}

	for i, member := range profile.Team {
		if isHTTPURL(member.LinkedIn) {
			checks = append(checks, AuditCheck{Field: fmt.Sprintf("team[%d].linkedin", i), URL: member.LinkedIn, Kind: "http"})
		}
		if isHTTPURL(member.GitHub) {
			checks = append(checks, AuditCheck{Field: fmt.Sprintf("team[%d].github", i), URL: member.GitHub, Kind: "http"})
		}
	}
	return checks
}

// collectGitHubChecks gathers GitHub identities that can be verified via the API
func collectGitHubChecks(profile Profile) []AuditCheck {
	var checks []AuditCheck
	if _, _, ok := parseGitHubURL(profile.BasicInfo.GitHubRepo); ok {
		checks = append(checks, AuditCheck{Field: "basic_info.github_repo", URL: profile.BasicInfo.GitHubRepo, Kind: "github"})
	}
	for i, member := range profile.Team {
		if _, _, ok := parseGitHubURL(member.GitHub); ok {
			checks = append(checks, AuditCheck{Field: fmt.Sprintf("team[%d].github", i), URL: member.GitHub, Kind: "github"})
		}
	}
	return checks
}

// parseGitHubURL splits https://github.com/<owner>[/<repo>] into its parts.
func parseGitHubURL(s string) (owner, repo string, ok bool) {
	if !isHTTPURL(s) {
		return "", "", false
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", "", false
	}
	host := strings.ToLower(u.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		return parts[0], "", true
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		return parts[0], strings.TrimSuffix(parts[1], ".git"), true
	}
	return "", "", false
}

// FormatAuditResult formats an audit result as human-readable text
func FormatAuditResult(result AuditResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Link Audit: %s\n", result.ProjectName)
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\n")

	for _, check := range result.Checks {
		var icon string
		switch check.Status {
		case "pass":
			icon = "OK"
		case "fail":
			icon = "FAIL"
		default:
			icon = "SKIP"
		}
		label := check.Field
		if check.Kind == "github" {
			label += " (github)"
		}
		fmt.Fprintf(&b, "  [%s] %s: %s", icon, label, check.URL)
		if check.Error != "" {
			fmt.Fprintf(&b, " (%s)", check.Error)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nSummary: %d passed, %d failed, %d skipped\n",
		result.PassCount, result.FailCount, result.SkipCount)
	return b.String()
}

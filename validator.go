package pitchprofile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// NewProfileValidator creates a validator from config, loading the cache from
// config.CacheDir.
func NewProfileValidator(config *Config) (*ProfileValidator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	cache, err := loadCache(config.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return &ProfileValidator{
		config: config,
		cache:  cache,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// ValidateAll validates every profile named in the profile list at listPath
// (or config.ProfileListURL when listPath is empty) and saves the cache.
func (pv *ProfileValidator) ValidateAll(ctx context.Context, listPath string) ([]ValidationResult, error) {
	if listPath == "" {
		listPath = pv.config.ProfileListURL
	}
	if listPath == "" {
		return nil, errors.New("no profile list configured")
	}
	urls, err := pv.loadProfileList(ctx, listPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile list: %w", err)
	}
	return pv.ValidateFiles(ctx, urls)
}

// ValidateFiles validates the given local paths or URLs and saves the cache.
func (pv *ProfileValidator) ValidateFiles(ctx context.Context, urls []string) ([]ValidationResult, error) {
	log := klog.FromContext(ctx)

	results := make([]ValidationResult, 0, len(urls))
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := pv.validateProfile(ctx, url)
		if err != nil {
			log.Error(err, "validating profile", "url", url)
			result = ValidationResult{
				URL:         url,
				Valid:       false,
				Errors:      []string{err.Error()},
				LastChecked: time.Now(),
			}
		}
		results = append(results, result)
	}

	if err := pv.cache.save(); err != nil {
		log.Error(err, "failed to save cache", "dir", pv.cache.dir)
	}
	return results, nil
}

// validateProfile validates a single profile document
func (pv *ProfileValidator) validateProfile(ctx context.Context, url string) (ValidationResult, error) {
	result := ValidationResult{
		URL:         url,
		LastChecked: time.Now(),
	}

	content, err := pv.fetchContent(ctx, url)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to fetch content: %v", err))
		return result, nil
	}

	hash := calculateHash(content)
	result.CurrentHash = hash
	if cached, exists := pv.cache.Entries[url]; exists {
		result.PreviousHash = cached.Hash
		result.Changed = cached.Hash != hash
	} else {
		result.Changed = true // New profile
	}

	profile, err := Parse(content)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			for _, p := range parseErr.Problems {
				result.Errors = append(result.Errors, p.String())
			}
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("YAML parsing error: %v", err))
		}
	} else {
		result.ProjectName = profile.BasicInfo.ProjectName
		result.Errors = append(result.Errors, ValidateProfile(profile)...)
		result.Warnings = CheckContent(profile)
	}

	result.Valid = len(result.Errors) == 0
	if pv.config.Strict && len(result.Warnings) > 0 {
		result.Valid = false
	}

	pv.cache.Entries[url] = CacheEntry{
		URL:         url,
		Hash:        hash,
		LastChecked: result.LastChecked,
	}

	klog.FromContext(ctx).V(1).Info("validated profile", "url", url, "valid", result.Valid, "changed", result.Changed,
		"errors", len(result.Errors), "warnings", len(result.Warnings))
	return result, nil
}

// loadProfileList loads the list of profile locations
func (pv *ProfileValidator) loadProfileList(ctx context.Context, location string) ([]string, error) {
	content, err := pv.fetchContent(ctx, location)
	if err != nil {
		return nil, err
	}

	var list ProfileListConfig
	if err := yaml.Unmarshal(content, &list); err != nil {
		return nil, fmt.Errorf("failed to parse profile list YAML: %w", err)
	}

	base := ""
	if !isHTTPURL(location) {
		base = filepath.Dir(strings.TrimPrefix(location, "file://"))
	}

	var urls []string
	for _, entry := range list.Profiles {
		u := os.ExpandEnv(entry.URL)
		// Relative paths resolve against the list file's directory
		if base != "" && !isHTTPURL(u) && !strings.HasPrefix(u, "file://") && !filepath.IsAbs(u) {
			u = filepath.Join(base, u)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// fetchContent fetches content from a URL or local file
func (pv *ProfileValidator) fetchContent(ctx context.Context, url string) ([]byte, error) {
	if !isHTTPURL(url) {
		return os.ReadFile(strings.TrimPrefix(url, "file://"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := pv.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// calculateHash calculates SHA256 hash of content
func calculateHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// loadCache loads cache from disk
func loadCache(dir string) (*Cache, error) {
	cache := &Cache{
		Entries: make(map[string]CacheEntry),
		dir:     dir,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	cachePath := filepath.Join(dir, "cache.json")
	data, err := os.ReadFile(cachePath)
	if errors.Is(err, os.ErrNotExist) {
		return cache, nil // New cache
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &cache.Entries); err != nil {
		return nil, fmt.Errorf("corrupt cache %s: %w", cachePath, err)
	}
	return cache, nil
}

// save saves cache to disk
func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.Entries, "", "  ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(filepath.Join(c.dir, "cache.json"), data, 0o644)
}

// GenerateReport generates a text report for changed or invalid profiles
func GenerateReport(results []ValidationResult) string {
	var b strings.Builder
	b.WriteString("Profile Validation Report\n")
	b.WriteString("=========================\n\n")

	changedCount := 0
	errorCount := 0
	warningCount := 0

	for _, result := range results {
		if len(result.Warnings) > 0 {
			warningCount++
		}
		if !result.Changed && result.Valid && len(result.Warnings) == 0 {
			continue
		}
		if result.Changed {
			changedCount++
			fmt.Fprintf(&b, "CHANGED: %s (%s)\n", result.ProjectName, result.URL)
			if result.PreviousHash != "" {
				fmt.Fprintf(&b, "  Previous Hash: %s\n", result.PreviousHash)
			}
			fmt.Fprintf(&b, "  Current Hash:  %s\n", result.CurrentHash)
		}
		if !result.Valid {
			errorCount++
			fmt.Fprintf(&b, "INVALID: %s (%s)\n", result.ProjectName, result.URL)
			for _, err := range result.Errors {
				fmt.Fprintf(&b, "  - %s\n", err)
			}
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "  warning: %s\n", w)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Summary: %d profiles validated, %d changed, %d with errors, %d with warnings\n",
		len(results), changedCount, errorCount, warningCount)
	return b.String()
}

// FormatResults formats validation results in the specified format
func FormatResults(results []ValidationResult, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "yaml":
		data, err := yaml.Marshal(results)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return GenerateReport(results), nil
	}
}

// AllValid reports whether every result is valid.
func AllValid(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Valid {
			return false
		}
	}
	return true
}

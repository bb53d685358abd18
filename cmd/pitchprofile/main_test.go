package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aihawk/pitchprofile"
)

const exampleProfile = "../../example/profile.yaml"

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	for _, key := range []string{pitchprofile.EnvCacheDir, pitchprofile.EnvFormat, pitchprofile.EnvStrict, pitchprofile.EnvProfileList} {
		t.Setenv(key, "")
	}
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func copyExample(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(exampleProfile)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestShow(t *testing.T) {
	code, stdout, _ := runCLI(t, "show", exampleProfile)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Project: AI Hawk")
	assert.Contains(t, stdout, "Team Size: 2 members")
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing argument", args: []string{"show"}},
		{name: "too many arguments", args: []string{"diff", "a.yaml"}},
		{name: "unknown flag", args: []string{"show", "--bogus", exampleProfile}},
		{name: "unknown command", args: []string{"frobnicate"}},
		{name: "bad export format", args: []string{"export", "--format", "xml", exampleProfile}},
		{name: "validate without input", args: []string{"validate"}},
		{name: "bootstrap without name", args: []string{"bootstrap"}},
		{name: "bad github repo", args: []string{"bootstrap", "--github", "no-slash"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, exitUsage, code, "stderr: %s", stderr)
			assert.Contains(t, stderr, "--help")
		})
	}
}

func TestInvalidInput(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(exampleProfile)
	require.NoError(t, err)
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(strings.Replace(string(data), "years_experience: 8", "years_experience: eight", 1)), 0o644))

	code, _, stderr := runCLI(t, "show", bad)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, "team[1].years_experience")

	code, _, _ = runCLI(t, "show", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, exitInvalid, code)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := copyExample(t, dir, "good.yaml")

	code, stdout, stderr := runCLI(t, "validate", "--cache", t.TempDir(), good)
	require.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Summary: 1 profiles validated, 1 changed, 0 with errors, 0 with warnings")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("team: []\n"), 0o644))
	code, stdout, _ = runCLI(t, "validate", "--cache", t.TempDir(), "--format", "json", good, bad)
	assert.Equal(t, exitInvalid, code)

	var results []pitchprofile.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
}

func TestValidateWithConfigAndList(t *testing.T) {
	dir := t.TempDir()
	copyExample(t, dir, "one.yaml")
	list := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(list, []byte("profiles:\n  - url: one.yaml\n"), 0o644))
	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("profile_list_url: "+list+"\ncache_dir: "+filepath.Join(dir, "cache")+"\noutput_format: yaml\n"), 0o644))

	code, stdout, stderr := runCLI(t, "validate", "--config", config)
	require.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "project_name: AI Hawk")

	_, err := os.Stat(filepath.Join(dir, "cache", "cache.json"))
	assert.NoError(t, err, "cache should be written to the configured directory")
}

func TestValidateStrict(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(exampleProfile)
	require.NoError(t, err)
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(string(data), "Legal: 10%", "Legal: 15%", 1)), 0o644))

	code, stdout, _ := runCLI(t, "validate", "--cache", t.TempDir(), path)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "sums to 105%")

	code, _, _ = runCLI(t, "validate", "--cache", t.TempDir(), "--strict", path)
	assert.Equal(t, exitInvalid, code)
}

func TestFmt(t *testing.T) {
	dir := t.TempDir()
	path := copyExample(t, dir, "profile.yaml")

	// Reorder sections so the file is certainly not canonical
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	i := strings.Index(s, "basic_info:\n")
	require.NoError(t, os.WriteFile(path, []byte(s[i:]+s[:i]), 0o644))

	code, stdout, _ := runCLI(t, "fmt", "--check", path)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stdout, "not in canonical form")

	code, stdout, _ = runCLI(t, "fmt", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "formatted "+path)

	code, _, _ = runCLI(t, "fmt", "--check", path)
	assert.Equal(t, exitOK, code)

	formatted, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(formatted), "team:\n"))
}

func TestExport(t *testing.T) {
	code, stdout, _ := runCLI(t, "export", exampleProfile)
	require.Equal(t, exitOK, code)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Contains(t, decoded, "incubator_preferences")

	code, stdout, _ = runCLI(t, "export", "--format", "yaml", exampleProfile)
	require.Equal(t, exitOK, code)
	p, err := pitchprofile.Parse([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "AI Hawk", p.BasicInfo.ProjectName)
}

func TestSchema(t *testing.T) {
	code, stdout, _ := runCLI(t, "schema")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, `"$schema": "https://json-schema.org/draft/2020-12/schema"`)

	out := filepath.Join(t.TempDir(), "profile.schema.json")
	code, _, _ = runCLI(t, "schema", "-o", out)
	require.Equal(t, exitOK, code)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, stdout, string(data))
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(exampleProfile)
	require.NoError(t, err)
	updated := filepath.Join(dir, "updated.yaml")
	require.NoError(t, os.WriteFile(updated, []byte(strings.Replace(string(data), "development_stage: MVP", "development_stage: Growth", 1)), 0o644))

	code, stdout, _ := runCLI(t, "diff", exampleProfile, updated)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, `~ basic_info.development_stage: "MVP" -> "Growth"`)

	code, stdout, _ = runCLI(t, "diff", exampleProfile, exampleProfile)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "unchanged")
}

func TestStaleness(t *testing.T) {
	// The example roadmap ends in 2025
	code, stdout, _ := runCLI(t, "staleness", "--format", "json", exampleProfile)
	assert.Equal(t, exitInvalid, code)
	var results []pitchprofile.StalenessResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.True(t, results[0].IsStale)

	code, _, _ = runCLI(t, "staleness", "--grace-days", "-1", exampleProfile)
	assert.Equal(t, exitUsage, code)
}

func TestBootstrap(t *testing.T) {
	dir := t.TempDir()

	code, stdout, stderr := runCLI(t, "bootstrap", "--name", "Nimbus", "-o", dir)
	require.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, filepath.Join(dir, "profile.yaml"))

	code, _, _ = runCLI(t, "show", filepath.Join(dir, "profile.yaml"))
	assert.Equal(t, exitOK, code)

	code, _, stderr = runCLI(t, "bootstrap", "--name", "Nimbus", "-o", dir)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, "already exists")

	code, _, _ = runCLI(t, "bootstrap", "--name", "Nimbus", "-o", dir, "--force")
	assert.Equal(t, exitOK, code)
}

func TestHelp(t *testing.T) {
	code, stdout, _ := runCLI(t)
	require.Equal(t, exitOK, code)
	for _, sub := range []string{"validate", "show", "fmt", "export", "schema", "audit", "staleness", "diff", "bootstrap"} {
		assert.Contains(t, stdout, sub)
	}
}

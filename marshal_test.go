package pitchprofile

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		profile func(t *testing.T) Profile
	}{
		{name: "example document", profile: func(t *testing.T) Profile { return mustParse(t, readExample(t)) }},
		{name: "minimal profile", profile: func(*testing.T) Profile { return validProfile() }},
		{name: "scaffold", profile: func(*testing.T) Profile { return ScaffoldProfile("Round Trip").Profile }},
		{name: "empty optional collections", profile: func(t *testing.T) Profile {
			doc := string(readExample(t))
			doc = strings.Replace(doc, "  funding_sources:\n    - Founders\n", "  funding_sources: []\n", 1)
			doc = strings.Replace(doc, "  use_of_funds:\n    Development: 40%\n    Marketing: 30%\n    Operations: 20%\n    Legal: 10%\n", "  use_of_funds: {}\n", 1)
			doc = strings.Replace(doc, "  specific_mentors_desired:\n    - HR tech founders\n    - Open-source business experts\n", "  specific_mentors_desired: []\n", 1)
			p := mustParse(t, []byte(doc))
			require.Nil(t, p.Funding.FundingSources)
			require.Nil(t, p.Funding.UseOfFunds)
			require.Nil(t, p.IncubatorPreferences.SpecificMentorsDesired)
			return p
		}},
		{name: "quoted and ranged education years", profile: func(t *testing.T) Profile {
			doc := strings.Replace(string(readExample(t)), "year: 2019", `year: "2015-2019"`, 1)
			doc = strings.Replace(doc, "year: 2016", `year: "2016"`, 1)
			return mustParse(t, []byte(doc))
		}},
		{name: "year-only founding date", profile: func(*testing.T) Profile {
			p := validProfile()
			p.BasicInfo.FoundingDate = "2024"
			p.Details.Roadmap = OrderedMap{{Key: "2025", Value: "true"}, {Key: "Q1 2026", Value: "100"}}
			return p
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.profile(t)

			data, err := Marshal(original)
			require.NoError(t, err)

			reparsed, err := Parse(data)
			require.NoError(t, err, "re-parsing:\n%s", data)

			if diff := cmp.Diff(original, reparsed); diff != "" {
				t.Errorf("round trip mismatch (-original +reparsed):\n%s", diff)
			}

			again, err := Marshal(reparsed)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again), "serialization is not stable")
		})
	}
}

func TestCanonicalize(t *testing.T) {
	canonical, err := Canonicalize(readExample(t))
	require.NoError(t, err)

	ok, err := IsCanonical(canonical)
	require.NoError(t, err)
	assert.True(t, ok, "canonical output should be canonical")

	// Reordering sections does not change the canonical form
	doc := string(readExample(t))
	i := strings.Index(doc, "basic_info:\n")
	reordered := doc[i:] + doc[:i]
	again, err := Canonicalize([]byte(reordered))
	require.NoError(t, err)
	assert.Equal(t, string(canonical), string(again))

	ok, err = IsCanonical([]byte(reordered))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanonicalizeRejectsInvalid(t *testing.T) {
	_, err := Canonicalize([]byte("team: []\n"))
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestExportJSON(t *testing.T) {
	p := mustParse(t, readExample(t))
	data, err := ExportJSON(p)
	require.NoError(t, err)
	require.True(t, bytes.HasSuffix(data, []byte("}\n")))

	// Roadmap and fund order survive
	s := string(data)
	assert.Less(t, strings.Index(s, "Q1 2025"), strings.Index(s, "Q2 2025"))
	assert.Less(t, strings.Index(s, `"Development"`), strings.Index(s, `"Legal"`))

	var back Profile
	require.NoError(t, json.Unmarshal(data, &back))
	if diff := cmp.Diff(p, back); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	p := validProfile()
	require.NoError(t, WriteFile(context.Background(), path, p))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, p, mustParse(t, data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files left behind")
}

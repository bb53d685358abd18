package pitchprofile

import (
	"os"
	"testing"
)

const exampleProfilePath = "example/profile.yaml"

// validProfile returns a minimal valid Profile for use in tests.
// Tests should modify only the fields they care about.
func validProfile() Profile {
	return Profile{
		Team: []TeamMember{
			{
				FullName:        "Ada Founder",
				Role:            "CEO",
				Email:           "ada@example.com",
				Bio:             "Builds things.",
				Skills:          []string{"Go", "Sales"},
				YearsExperience: 10,
				Education:       []Education{{Institution: "Test University", Degree: "BSc", Year: "2010"}},
			},
		},
		BasicInfo: BasicInfo{
			ProjectName:      "Test Project",
			Tagline:          "A valid test project",
			Website:          "https://test-project.io",
			FoundingDate:     "2024-01-15",
			DevelopmentStage: "MVP",
			Sector:           "AI/ML",
			Industry:         []string{"HR Tech"},
		},
		Details: Details{
			ProblemStatement:       "A problem",
			SolutionDescription:    "A solution",
			UniqueValueProposition: "A difference",
			TargetAudience:         "Everyone",
			BusinessModel:          "Subscriptions",
			RevenueStreams:         []string{"Subscriptions"},
			Competitors:            []Competitor{{Name: "Rival", Differentiator: "Cheaper"}},
			Roadmap:                OrderedMap{{Key: "Q1 2025", Value: "Beta"}, {Key: "Q3 2025", Value: "Launch"}},
		},
		Technical: Technical{
			TechStack:                []string{"Go"},
			CurrentChallenges:        []string{"Scale"},
			FutureTechnologicalNeeds: []string{"GPUs"},
		},
		Funding: Funding{
			UseOfFunds: OrderedMap{{Key: "Development", Value: "60%"}, {Key: "Marketing", Value: "40%"}},
		},
		IncubatorPreferences: IncubatorPreferences{
			ResourcesNeeded:         []string{"Mentorship"},
			ProgramLengthPreference: "3 months",
			RemoteParticipation:     true,
		},
	}
}

// readExample returns the bundled example document.
func readExample(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(exampleProfilePath)
	if err != nil {
		t.Fatalf("failed to read example profile: %v", err)
	}
	return data
}

// mustParse parses data or fails the test.
func mustParse(t *testing.T, data []byte) Profile {
	t.Helper()
	p, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return p
}

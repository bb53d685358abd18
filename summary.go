package pitchprofile

import (
	"fmt"
	"strings"
)

// Summary returns a short human-readable description of the profile.
func (p Profile) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", p.BasicInfo.ProjectName)
	fmt.Fprintf(&b, "Tagline: %s\n", p.BasicInfo.Tagline)
	fmt.Fprintf(&b, "Stage: %s\n", p.BasicInfo.DevelopmentStage)
	fmt.Fprintf(&b, "Team Size: %d members\n", len(p.Team))

	sectors := make([]string, 0, 1+len(p.BasicInfo.Industry))
	if p.BasicInfo.Sector != "" {
		sectors = append(sectors, p.BasicInfo.Sector)
	}
	sectors = append(sectors, p.BasicInfo.Industry...)
	fmt.Fprintf(&b, "Sectors: %s", strings.Join(sectors, ", "))
	return b.String()
}

func (p Profile) String() string {
	return p.Summary()
}

// Member returns the team member with the given full name.
func (p Profile) Member(fullName string) (TeamMember, bool) {
	for _, m := range p.Team {
		if strings.EqualFold(m.FullName, fullName) {
			return m, true
		}
	}
	return TeamMember{}, false
}

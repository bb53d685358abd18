package pitchprofile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldChange is a single difference between two profiles
type FieldChange struct {
	Field    string `json:"field"`
	Kind     string `json:"kind"` // "added", "removed" or "changed"
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`
}

// ProfileDiff lists the field-level differences between two profiles
type ProfileDiff struct {
	ProjectName string        `json:"project_name"`
	HasChanges  bool          `json:"has_changes"`
	Changes     []FieldChange `json:"changes,omitempty"`
}

type flatField struct {
	path  string
	value string
}

// CompareProfiles reports the fields that differ between old and updated,
// keyed by path (e.g. team[0].skills[2]).
func CompareProfiles(old, updated Profile) (ProfileDiff, error) {
	before, err := flattenProfile(old)
	if err != nil {
		return ProfileDiff{}, err
	}
	after, err := flattenProfile(updated)
	if err != nil {
		return ProfileDiff{}, err
	}

	diff := ProfileDiff{ProjectName: updated.BasicInfo.ProjectName}
	afterIndex := make(map[string]string, len(after))
	for _, f := range after {
		afterIndex[f.path] = f.value
	}
	beforeIndex := make(map[string]bool, len(before))
	for _, f := range before {
		beforeIndex[f.path] = true
		nv, ok := afterIndex[f.path]
		switch {
		case !ok:
			diff.Changes = append(diff.Changes, FieldChange{Field: f.path, Kind: "removed", OldValue: f.value})
		case nv != f.value:
			diff.Changes = append(diff.Changes, FieldChange{Field: f.path, Kind: "changed", OldValue: f.value, NewValue: nv})
		}
	}
	for _, f := range after {
		if !beforeIndex[f.path] {
			diff.Changes = append(diff.Changes, FieldChange{Field: f.path, Kind: "added", NewValue: f.value})
		}
	}
	diff.HasChanges = len(diff.Changes) > 0
	return diff, nil
}

// flattenProfile lists every scalar of the profile with its key path, in
// canonical document order. Empty collections appear as "[]" or "{}".
func flattenProfile(profile Profile) ([]flatField, error) {
	var node yaml.Node
	if err := node.Encode(profile); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	var out []flatField
	flattenNode(&node, "", &out)
	return out, nil
}

func flattenNode(n *yaml.Node, path string, out *[]flatField) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			flattenNode(c, path, out)
		}
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			*out = append(*out, flatField{path: path, value: "{}"})
			return
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			flattenNode(n.Content[i+1], joinPath(path, n.Content[i].Value), out)
		}
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			*out = append(*out, flatField{path: path, value: "[]"})
			return
		}
		for i, c := range n.Content {
			flattenNode(c, fmt.Sprintf("%s[%d]", path, i), out)
		}
	case yaml.ScalarNode:
		*out = append(*out, flatField{path: path, value: n.Value})
	}
}

// FormatProfileDiff formats a profile diff as human-readable text
func FormatProfileDiff(diff ProfileDiff) string {
	if !diff.HasChanges {
		return fmt.Sprintf("Profile %s is unchanged.\n", diff.ProjectName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Profile changes for %s:\n", diff.ProjectName)
	for _, change := range diff.Changes {
		switch change.Kind {
		case "added":
			fmt.Fprintf(&b, "  + %s: %q\n", change.Field, change.NewValue)
		case "removed":
			fmt.Fprintf(&b, "  - %s: %q\n", change.Field, change.OldValue)
		default:
			fmt.Fprintf(&b, "  ~ %s: %q -> %q\n", change.Field, change.OldValue, change.NewValue)
		}
	}
	return b.String()
}

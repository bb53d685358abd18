package pitchprofile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// requiredKeys lists the keys that must be present (and not null) in each
// mapping of the document. Patterns use "[]" for "every item of a sequence".
var requiredKeys = map[string][]string{
	"": {"team", "basic_info", "details", "technical", "funding", "incubator_preferences"},
	"team[]": {
		"full_name", "role", "bio", "skills", "years_experience", "education",
	},
	"team[].education[]": {"institution", "degree"},
	"basic_info": {
		"project_name", "tagline", "development_stage", "sector", "industry",
	},
	"details": {
		"problem_statement", "solution_description", "unique_value_proposition",
		"target_audience", "business_model", "revenue_streams", "competitors", "roadmap",
	},
	"details.competitors[]": {"name", "differentiator"},
	"technical":             {"tech_stack", "current_challenges", "future_technological_needs"},
	"funding":               {},
	"incubator_preferences": {
		"resources_needed", "program_length_preference", "relocation_willingness", "remote_participation",
	},
}

// RequiredKeys returns the keys required in the mapping at pattern, for
// example "team[]" or "basic_info". The root mapping is "".
func RequiredKeys(pattern string) []string {
	keys := requiredKeys[pattern]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

var linePrefix = regexp.MustCompile(`^(?:yaml: )?line (\d+): (.*)$`)

// Parse decodes a profile document. Unknown keys, wrong scalar types, bad
// dates and missing required keys are all reported in a single *ParseError
// whose problems carry the offending key path.
func Parse(data []byte) (Profile, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return Profile{}, &ParseError{Problems: []Problem{{Message: "document is empty"}}}
		}
		return Profile{}, &ParseError{Problems: []Problem{syntaxProblem(err)}}
	}
	// Strict: no multiple documents or trailing content
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Profile{}, &ParseError{Problems: []Problem{{Message: "document contains multiple documents or trailing content"}}}
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return Profile{}, &ParseError{Problems: []Problem{{Line: doc.Line, Message: fmt.Sprintf("document root must be a mapping, got %s", kindName(doc.Kind))}}}
	}

	index := make(lineIndex)
	index.walk(doc, "")

	problems := checkRequired(doc, "", "")

	var profile Profile
	strict := yaml.NewDecoder(bytes.NewReader(data))
	strict.KnownFields(true)
	if err := strict.Decode(&profile); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			for _, msg := range typeErr.Errors {
				problems = append(problems, index.problem(msg))
			}
		} else {
			problems = append(problems, index.problem(err.Error()))
		}
	}

	if len(problems) > 0 {
		sort.SliceStable(problems, func(i, j int) bool { return problems[i].Line < problems[j].Line })
		return Profile{}, &ParseError{Problems: problems}
	}
	dropEmptyOptional(&profile)
	return profile, nil
}

// dropEmptyOptional clears optional lists written as [] so they compare equal
// to the omitted form Marshal produces.
func dropEmptyOptional(p *Profile) {
	if len(p.Funding.FundingSources) == 0 {
		p.Funding.FundingSources = nil
	}
	if len(p.IncubatorPreferences.SpecificMentorsDesired) == 0 {
		p.IncubatorPreferences.SpecificMentorsDesired = nil
	}
}

// LoadFile reads and parses a profile file without content validation.
func LoadFile(ctx context.Context, path string) (Profile, error) {
	log := klog.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return Profile{}, fmt.Errorf("%w: %s (only YAML supported)", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}
	log.V(2).Info("read profile", "path", path, "bytes", len(data))

	profile, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	log.V(1).Info("parsed profile", "path", path, "project", profile.BasicInfo.ProjectName)
	return profile, nil
}

// Load reads, parses and validates a profile file. It fails fast: a document
// with content errors is rejected with a *ValidationError.
func Load(ctx context.Context, path string) (Profile, error) {
	profile, err := LoadFile(ctx, path)
	if err != nil {
		return Profile{}, err
	}
	if errs := ValidateProfile(profile); len(errs) > 0 {
		return Profile{}, fmt.Errorf("%s: %w", path, &ValidationError{Errors: errs})
	}
	klog.FromContext(ctx).Info("loaded profile", "path", path, "project", profile.BasicInfo.ProjectName, "team", len(profile.Team))
	return profile, nil
}

// checkRequired reports required keys that are absent or null, descending into
// every mapping and sequence that has an entry in requiredKeys.
func checkRequired(n *yaml.Node, pattern, path string) []Problem {
	if n.Kind != yaml.MappingNode {
		// Wrong node kinds are reported by the typed decode
		return nil
	}

	var problems []Problem
	present := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		present[n.Content[i].Value] = n.Content[i+1]
	}

	for _, key := range requiredKeys[pattern] {
		v, ok := present[key]
		switch {
		case !ok:
			problems = append(problems, Problem{Path: joinPath(path, key), Line: n.Line, Message: "required key is missing"})
		case v.Tag == "!!null":
			problems = append(problems, Problem{Path: joinPath(path, key), Line: v.Line, Message: "required key is null"})
		}
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		keyPath := joinPath(path, k.Value)
		keyPattern := joinPath(pattern, k.Value)
		switch v.Kind {
		case yaml.MappingNode:
			if _, ok := requiredKeys[keyPattern]; ok {
				problems = append(problems, checkRequired(v, keyPattern, keyPath)...)
			}
		case yaml.SequenceNode:
			itemPattern := keyPattern + "[]"
			if _, ok := requiredKeys[itemPattern]; ok {
				for j, item := range v.Content {
					problems = append(problems, checkRequired(item, itemPattern, fmt.Sprintf("%s[%d]", keyPath, j))...)
				}
			}
		}
	}
	return problems
}

// lineIndex maps a source line to the deepest key path that starts on it.
type lineIndex map[int]string

func (ix lineIndex) walk(n *yaml.Node, path string) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			ix.walk(c, path)
		}
	case yaml.MappingNode:
		ix[n.Line] = path
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			keyPath := joinPath(path, k.Value)
			ix[k.Line] = keyPath
			ix.walk(v, keyPath)
		}
	case yaml.SequenceNode:
		ix[n.Line] = path
		for i, c := range n.Content {
			ix.walk(c, fmt.Sprintf("%s[%d]", path, i))
		}
	case yaml.ScalarNode:
		ix[n.Line] = path
	}
}

// problem converts a yaml.v3 "line N: message" error into a Problem.
func (ix lineIndex) problem(msg string) Problem {
	m := linePrefix.FindStringSubmatch(msg)
	if m == nil {
		return Problem{Message: msg}
	}
	line, _ := strconv.Atoi(m[1])
	return Problem{Path: ix[line], Line: line, Message: m[2]}
}

func syntaxProblem(err error) Problem {
	m := linePrefix.FindStringSubmatch(err.Error())
	if m == nil {
		return Problem{Message: err.Error()}
	}
	line, _ := strconv.Atoi(m[1])
	return Problem{Line: line, Message: m[2]}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

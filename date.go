package pitchprofile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// dateLayouts lists the accepted forms of a date-like scalar, most precise first.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// Date is a calendar date kept in the form it was written: YYYY-MM-DD,
// YYYY-MM or YYYY.
type Date string

// ParseDate checks s against the accepted layouts.
func ParseDate(s string) (Date, error) {
	if _, err := Date(s).Time(); err != nil {
		return "", err
	}
	return Date(s), nil
}

// Time returns the first instant of the date in UTC.
func (d Date) Time() (time.Time, error) {
	for _, layout := range dateLayouts {
		if len(layout) != len(d) {
			continue
		}
		if t, err := time.Parse(layout, string(d)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD, YYYY-MM or YYYY)", string(d))
}

func (d Date) IsZero() bool {
	return d == ""
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: cannot unmarshal %s into a date", node.Line, kindName(node.Kind)),
		}}
	}
	if node.Tag == "!!null" {
		*d = ""
		return nil
	}
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return &yaml.TypeError{Errors: []string{fmt.Sprintf("line %d: %v", node.Line, err)}}
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: string(d)}, nil
}

// Year is a graduation year as written, e.g. 2019 or "2015-2019". Plain and
// quoted scalars are both accepted.
type Year string

// Int returns the year as a number when it is one.
func (y Year) Int() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(y)))
	return n, err == nil
}

func (y *Year) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: cannot unmarshal %s into a year", node.Line, kindName(node.Kind)),
		}}
	}
	if node.Tag == "!!null" {
		*y = ""
		return nil
	}
	*y = Year(node.Value)
	return nil
}

func (y Year) MarshalYAML() (interface{}, error) {
	tag := "!!str"
	if _, ok := y.Int(); ok {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(y)}, nil
}

// MarshalJSON writes numeric years as JSON numbers.
func (y Year) MarshalJSON() ([]byte, error) {
	if n, ok := y.Int(); ok {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(y))
}

func (y *Year) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case nil:
		*y = ""
	case string:
		*y = Year(v)
	case float64:
		*y = Year(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Errorf("cannot unmarshal %s into a year", data)
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "scalar"
	}
}

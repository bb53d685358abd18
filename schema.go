package pitchprofile

import (
	"encoding/json"
	"strings"
)

// SchemaID is the $id of the generated profile schema.
const SchemaID = "https://github.com/aihawk/pitchprofile/schema/v1/profile.json"

type JSONSchema struct {
	Schema               string                        `json:"$schema,omitempty"`
	ID                   string                        `json:"$id,omitempty"`
	Title                string                        `json:"title,omitempty"`
	Description          string                        `json:"description,omitempty"`
	Type                 string                        `json:"type,omitempty"`
	Required             []string                      `json:"required,omitempty"`
	Properties           map[string]JSONSchemaProperty `json:"properties,omitempty"`
	AdditionalProperties *bool                         `json:"additionalProperties,omitempty"`
	Defs                 map[string]JSONSchema         `json:"$defs,omitempty"`
}

type JSONSchemaProperty struct {
	Type                 string                        `json:"type,omitempty"`
	Description          string                        `json:"description,omitempty"`
	Pattern              string                        `json:"pattern,omitempty"`
	Enum                 []string                      `json:"enum,omitempty"`
	Format               string                        `json:"format,omitempty"`
	Minimum              *float64                      `json:"minimum,omitempty"`
	Items                *JSONSchemaProperty           `json:"items,omitempty"`
	Properties           map[string]JSONSchemaProperty `json:"properties,omitempty"`
	Required             []string                      `json:"required,omitempty"`
	Ref                  string                        `json:"$ref,omitempty"`
	AdditionalProperties interface{}                   `json:"additionalProperties,omitempty"`
}

var (
	stringList = &JSONSchemaProperty{Type: "string"}
	zero       = 0.0
)

const (
	datePattern    = `^\d{4}(-\d{2}(-\d{2})?)?$`
	percentPattern = `^\s*\d+(\.\d+)?\s*%?\s*$`
)

// ProfileSchema returns the JSON Schema (draft 2020-12) for profile documents.
// Required keys match what Parse enforces.
func ProfileSchema() JSONSchema {
	falseVal := false

	return JSONSchema{
		Schema:               "https://json-schema.org/draft/2020-12/schema",
		ID:                   SchemaID,
		Title:                "Pitch Profile",
		Description:          "Schema for startup pitch profile YAML documents",
		Type:                 "object",
		AdditionalProperties: &falseVal,
		Required:             RequiredKeys(""),
		Properties: map[string]JSONSchemaProperty{
			"team": {
				Type:        "array",
				Description: "Founders and team members",
				Items:       &JSONSchemaProperty{Ref: "#/$defs/TeamMember"},
			},
			"basic_info": {
				Type:                 "object",
				Description:          "Project identity",
				Required:             RequiredKeys("basic_info"),
				AdditionalProperties: false,
				Properties: map[string]JSONSchemaProperty{
					"project_name":      {Type: "string", Description: "Project display name"},
					"tagline":           {Type: "string", Description: "One-line description"},
					"website":           {Type: "string", Format: "uri"},
					"github_repo":       {Type: "string", Format: "uri"},
					"founding_date":     {Type: "string", Description: "YYYY-MM-DD, YYYY-MM or YYYY", Pattern: datePattern},
					"development_stage": {Type: "string", Description: "Idea, Prototype, MVP, Growth or Scale"},
					"sector":            {Type: "string"},
					"industry":          {Type: "array", Items: stringList},
				},
			},
			"details": {
				Type:                 "object",
				Description:          "Business narrative",
				Required:             RequiredKeys("details"),
				AdditionalProperties: false,
				Properties: map[string]JSONSchemaProperty{
					"problem_statement":        {Type: "string"},
					"solution_description":     {Type: "string"},
					"unique_value_proposition": {Type: "string"},
					"target_audience":          {Type: "string"},
					"market_size":              {Type: "string"},
					"business_model":           {Type: "string"},
					"revenue_streams":          {Type: "array", Items: stringList},
					"competitors":              {Type: "array", Items: &JSONSchemaProperty{Ref: "#/$defs/Competitor"}},
					"traction":                 {Type: "string", Description: "Current metrics, users, revenue"},
					"roadmap": {
						Type:                 "object",
						Description:          "Time period (e.g. Q1 2025) to milestone, in order",
						AdditionalProperties: JSONSchemaProperty{Type: "string"},
					},
				},
			},
			"technical": {
				Type:                 "object",
				Required:             RequiredKeys("technical"),
				AdditionalProperties: false,
				Properties: map[string]JSONSchemaProperty{
					"tech_stack":                 {Type: "array", Items: stringList},
					"intellectual_property":      {Type: "string"},
					"scalability_approach":       {Type: "string"},
					"current_challenges":         {Type: "array", Items: stringList},
					"future_technological_needs": {Type: "array", Items: stringList},
				},
			},
			"funding": {
				Type:                 "object",
				Description:          "Capital raised and planned",
				AdditionalProperties: false,
				Properties: map[string]JSONSchemaProperty{
					"funding_to_date": {Type: "string"},
					"funding_sources": {Type: "array", Items: stringList},
					"current_runway":  {Type: "string"},
					"funding_needed":  {Type: "string"},
					"use_of_funds": {
						Type:                 "object",
						Description:          "Category to percentage; percentages should sum to 100",
						AdditionalProperties: JSONSchemaProperty{Type: "string", Pattern: percentPattern},
					},
				},
			},
			"incubator_preferences": {
				Type:                 "object",
				Required:             RequiredKeys("incubator_preferences"),
				AdditionalProperties: false,
				Properties: map[string]JSONSchemaProperty{
					"resources_needed":          {Type: "array", Items: stringList},
					"program_length_preference": {Type: "string"},
					"equity_willingness":        {Type: "string"},
					"relocation_willingness":    {Type: "boolean"},
					"remote_participation":      {Type: "boolean"},
					"specific_mentors_desired":  {Type: "array", Items: stringList},
				},
			},
		},
		Defs: map[string]JSONSchema{
			"TeamMember": {
				Type:                 "object",
				AdditionalProperties: &falseVal,
				Required:             RequiredKeys("team[]"),
				Properties: map[string]JSONSchemaProperty{
					"full_name":        {Type: "string"},
					"role":             {Type: "string"},
					"email":            {Type: "string", Format: "email"},
					"linkedin":         {Type: "string", Format: "uri"},
					"github":           {Type: "string", Format: "uri"},
					"bio":              {Type: "string"},
					"skills":           {Type: "array", Items: stringList},
					"years_experience": {Type: "integer", Minimum: &zero},
					"education":        {Type: "array", Items: &JSONSchemaProperty{Ref: "#/$defs/Education"}},
				},
			},
			"Education": {
				Type:                 "object",
				AdditionalProperties: &falseVal,
				Required:             RequiredKeys("team[].education[]"),
				Properties: map[string]JSONSchemaProperty{
					"institution": {Type: "string"},
					"degree":      {Type: "string"},
					"year":        {Description: "Graduation year (e.g. 2019) or range (e.g. \"2015-2019\")"},
				},
			},
			"Competitor": {
				Type:                 "object",
				AdditionalProperties: &falseVal,
				Required:             RequiredKeys("details.competitors[]"),
				Properties: map[string]JSONSchemaProperty{
					"name":           {Type: "string"},
					"differentiator": {Type: "string"},
				},
			},
		},
	}
}

// MarshalSchema renders ProfileSchema as indented JSON.
func MarshalSchema() ([]byte, error) {
	var b strings.Builder
	encoder := json.NewEncoder(&b)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ProfileSchema()); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

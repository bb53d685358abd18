package pitchprofile

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSchemaRequiredKeys(t *testing.T) {
	schema := ProfileSchema()

	if d := cmp.Diff([]string{"team", "basic_info", "details", "technical", "funding", "incubator_preferences"}, schema.Required); d != "" {
		t.Errorf("top-level required mismatch (-want +got):\n%s", d)
	}
	for _, key := range schema.Required {
		if _, ok := schema.Properties[key]; !ok {
			t.Errorf("required key %q has no property", key)
		}
	}

	member := schema.Defs["TeamMember"]
	assert.Contains(t, member.Required, "full_name")
	assert.Contains(t, member.Required, "role")
	for _, key := range member.Required {
		assert.Contains(t, member.Properties, key)
	}

	for section, prop := range schema.Properties {
		for _, key := range prop.Required {
			assert.Contains(t, prop.Properties, key, "section %s", section)
		}
	}
}

// Every field of the Go types appears in the schema, so the schema rejects
// nothing Parse accepts.
func TestProfileSchemaCoversTypes(t *testing.T) {
	schema := ProfileSchema()

	var doc map[string]any
	data, err := ExportJSON(validProfile())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))

	for section, value := range doc {
		prop, ok := schema.Properties[section]
		require.True(t, ok, "section %s missing from schema", section)
		fields, ok := value.(map[string]any)
		if !ok {
			continue
		}
		for field := range fields {
			assert.Contains(t, prop.Properties, field, "%s.%s missing from schema", section, field)
		}
	}
}

func TestMarshalSchema(t *testing.T) {
	data, err := MarshalSchema()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "https://json-schema.org/draft/2020-12/schema", decoded["$schema"])
	assert.Equal(t, SchemaID, decoded["$id"])
	assert.Equal(t, false, decoded["additionalProperties"])

	defs, ok := decoded["$defs"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, defs, "Education")
	assert.Contains(t, defs, "Competitor")
}

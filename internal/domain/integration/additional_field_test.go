package integration

import (
	"encoding/json"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdditionalFieldType_IsScalar(t *testing.T) {
	scalars := []AdditionalFieldType{
		FieldTypeBoolean, FieldTypeDate, FieldTypeLink, FieldTypeList,
		FieldTypeNumeric, FieldTypeRegex, FieldTypeString, FieldTypeTextarea,
	}
	for _, ft := range scalars {
		t.Run(string(ft), func(t *testing.T) {
			assert.True(t, ft.IsScalar())
		})
	}

	assert.False(t, FieldTypeMultipleValuesList.IsScalar())
	assert.False(t, AdditionalFieldType("COLOR").IsScalar())
}

func TestAdditionalFields_UnmarshalJSON(t *testing.T) {
	t.Run("decodes every variant", func(t *testing.T) {
		data := `[
			{"code":"gift","type":"BOOLEAN","value":"true"},
			{"code":"due","type":"DATE","value":"2024-01-31T00:00:00Z"},
			{"code":"site","type":"LINK","value":"https://example.com"},
			{"code":"size","type":"LIST","value":"XL"},
			{"code":"colors","type":"MULTIPLE_VALUES_LIST","value":["red","blue"]},
			{"code":"weight","type":"NUMERIC","value":"1.5"},
			{"code":"ref","type":"REGEX","value":"^A[0-9]+$"},
			{"code":"note","type":"STRING","value":"leave at door"},
			{"code":"long","type":"TEXTAREA","value":"line1\nline2"}
		]`

		var fields AdditionalFields
		require.NoError(t, json.Unmarshal([]byte(data), &fields))
		require.Len(t, fields, 9)

		assert.Equal(t, TextField{Type: FieldTypeBoolean, Code: "gift", Value: "true"}, fields[0])
		assert.Equal(t, TextField{Type: FieldTypeDate, Code: "due", Value: "2024-01-31T00:00:00Z"}, fields[1])
		assert.Equal(t, MultipleValuesListField{Code: "colors", Value: []string{"red", "blue"}}, fields[4])
		assert.Equal(t, "line1\nline2", fields[8].Values()[0])
		assert.Equal(t, FieldTypeTextarea, fields[8].FieldType())
	})

	t.Run("unquoted scalars keep their literal text", func(t *testing.T) {
		var fields AdditionalFields
		err := json.Unmarshal([]byte(`[{"code":"gift","type":"BOOLEAN","value":true},{"code":"w","type":"NUMERIC","value":2.50}]`), &fields)
		require.NoError(t, err)
		assert.Equal(t, "true", fields[0].Values()[0])
		assert.Equal(t, "2.50", fields[1].Values()[0])
	})

	t.Run("null values", func(t *testing.T) {
		var fields AdditionalFields
		err := json.Unmarshal([]byte(`[{"code":"note","type":"STRING","value":null},{"code":"c","type":"MULTIPLE_VALUES_LIST"}]`), &fields)
		require.NoError(t, err)
		assert.Equal(t, TextField{Type: FieldTypeString, Code: "note"}, fields[0])
		assert.Equal(t, MultipleValuesListField{Code: "c"}, fields[1])
	})

	t.Run("null list", func(t *testing.T) {
		var fields AdditionalFields
		require.NoError(t, json.Unmarshal([]byte(`null`), &fields))
		assert.Nil(t, fields)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		var fields AdditionalFields
		err := json.Unmarshal([]byte(`[{"code":"x","type":"COLOR","value":"red"}]`), &fields)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "COLOR")
	})

	t.Run("object value for scalar fails", func(t *testing.T) {
		var fields AdditionalFields
		err := json.Unmarshal([]byte(`[{"code":"x","type":"STRING","value":{"a":1}}]`), &fields)
		assert.Error(t, err)
	})

	t.Run("scalar value for multiple values list fails", func(t *testing.T) {
		var fields AdditionalFields
		err := json.Unmarshal([]byte(`[{"code":"x","type":"MULTIPLE_VALUES_LIST","value":"red"}]`), &fields)
		assert.Error(t, err)
	})
}

func TestAdditionalFields_MarshalJSON(t *testing.T) {
	fields := AdditionalFields{
		TextField{Type: FieldTypeString, Code: "note", Value: "hi"},
		MultipleValuesListField{Code: "colors"},
	}

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"code":"note","type":"STRING","value":"hi"},
		{"code":"colors","type":"MULTIPLE_VALUES_LIST","value":[]}
	]`, string(data))

	var decoded AdditionalFields
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fields[0], decoded[0])
}

func TestAdditionalFields_MarshalXML(t *testing.T) {
	type wrapper struct {
		XMLName xml.Name         `xml:"order"`
		Fields  AdditionalFields `xml:"order_additional_fields,omitempty"`
	}

	t.Run("encodes variants", func(t *testing.T) {
		w := wrapper{Fields: AdditionalFields{
			TextField{Type: FieldTypeString, Code: "note", Value: "a<b"},
			MultipleValuesListField{Code: "colors", Value: []string{"red", "blue"}},
		}}

		data, err := xml.Marshal(w)
		require.NoError(t, err)
		assert.Equal(t,
			`<order><order_additional_fields>`+
				`<additional_field type="STRING"><code>note</code><value>a&lt;b</value></additional_field>`+
				`<additional_field type="MULTIPLE_VALUES_LIST"><code>colors</code><value>red</value><value>blue</value></additional_field>`+
				`</order_additional_fields></order>`,
			string(data))
	})

	t.Run("omits empty list", func(t *testing.T) {
		data, err := xml.Marshal(wrapper{})
		require.NoError(t, err)
		assert.Equal(t, `<order></order>`, string(data))
	})
}

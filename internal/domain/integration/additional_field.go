package integration

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
)

// AdditionalFieldType is the discriminant of an additional field
type AdditionalFieldType string

const (
	FieldTypeBoolean            AdditionalFieldType = "BOOLEAN"
	FieldTypeDate               AdditionalFieldType = "DATE"
	FieldTypeLink               AdditionalFieldType = "LINK"
	FieldTypeList               AdditionalFieldType = "LIST"
	FieldTypeMultipleValuesList AdditionalFieldType = "MULTIPLE_VALUES_LIST"
	FieldTypeNumeric            AdditionalFieldType = "NUMERIC"
	FieldTypeRegex              AdditionalFieldType = "REGEX"
	FieldTypeString             AdditionalFieldType = "STRING"
	FieldTypeTextarea           AdditionalFieldType = "TEXTAREA"
)

// IsScalar returns true for the kinds whose value is a single text value
func (t AdditionalFieldType) IsScalar() bool {
	switch t {
	case FieldTypeBoolean, FieldTypeDate, FieldTypeLink, FieldTypeList,
		FieldTypeNumeric, FieldTypeRegex, FieldTypeString, FieldTypeTextarea:
		return true
	}
	return false
}

// AdditionalField is a typed key/value pair attached to an order or an order line.
// The set of implementations is closed: TextField and MultipleValuesListField.
type AdditionalField interface {
	FieldType() AdditionalFieldType
	FieldCode() string
	// Values returns the field value(s) as text
	Values() []string

	isAdditionalField()
}

// TextField carries every scalar kind. Value keeps the server's text form.
type TextField struct {
	Type  AdditionalFieldType
	Code  string
	Value string
}

func (f TextField) FieldType() AdditionalFieldType { return f.Type }
func (f TextField) FieldCode() string              { return f.Code }
func (f TextField) Values() []string               { return []string{f.Value} }
func (TextField) isAdditionalField()               {}

// MarshalJSON implements json.Marshaler
func (f TextField) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code  string              `json:"code"`
		Type  AdditionalFieldType `json:"type"`
		Value string              `json:"value"`
	}{f.Code, f.Type, f.Value})
}

// MultipleValuesListField is the only variant carrying several values
type MultipleValuesListField struct {
	Code  string
	Value []string
}

func (f MultipleValuesListField) FieldType() AdditionalFieldType { return FieldTypeMultipleValuesList }
func (f MultipleValuesListField) FieldCode() string              { return f.Code }
func (f MultipleValuesListField) Values() []string               { return f.Value }
func (MultipleValuesListField) isAdditionalField()               {}

// MarshalJSON implements json.Marshaler
func (f MultipleValuesListField) MarshalJSON() ([]byte, error) {
	values := f.Value
	if values == nil {
		values = []string{}
	}
	return json.Marshal(struct {
		Code  string              `json:"code"`
		Type  AdditionalFieldType `json:"type"`
		Value []string            `json:"value"`
	}{f.Code, FieldTypeMultipleValuesList, values})
}

// ---------------------------------------------------------------------------
// AdditionalFields codec
// ---------------------------------------------------------------------------

// AdditionalFields is a list of additional fields decoded by their "type" discriminant
type AdditionalFields []AdditionalField

type rawAdditionalField struct {
	Type  AdditionalFieldType `json:"type"`
	Code  string              `json:"code"`
	Value json.RawMessage     `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler.
// An unknown discriminant fails the whole decode.
func (f *AdditionalFields) UnmarshalJSON(data []byte) error {
	var raws []rawAdditionalField
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	if raws == nil {
		*f = nil
		return nil
	}

	fields := make(AdditionalFields, 0, len(raws))
	for i, raw := range raws {
		field, err := decodeAdditionalField(raw)
		if err != nil {
			return fmt.Errorf("additional field %d (%s): %w", i, raw.Code, err)
		}
		fields = append(fields, field)
	}
	*f = fields
	return nil
}

func decodeAdditionalField(raw rawAdditionalField) (AdditionalField, error) {
	switch {
	case raw.Type == FieldTypeMultipleValuesList:
		var values []string
		if !isJSONNull(raw.Value) {
			if err := json.Unmarshal(raw.Value, &values); err != nil {
				return nil, fmt.Errorf("decode multiple values: %w", err)
			}
		}
		return MultipleValuesListField{Code: raw.Code, Value: values}, nil
	case raw.Type.IsScalar():
		value, err := scalarText(raw.Value)
		if err != nil {
			return nil, err
		}
		return TextField{Type: raw.Type, Code: raw.Code, Value: value}, nil
	default:
		return nil, fmt.Errorf("unknown additional field type %q", raw.Type)
	}
}

// scalarText returns a JSON string's content, or the literal text of any other scalar.
// Servers occasionally send booleans and numbers unquoted.
func scalarText(raw json.RawMessage) (string, error) {
	if isJSONNull(raw) {
		return "", nil
	}
	trimmed := bytes.TrimSpace(raw)
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case '[', '{':
		return "", fmt.Errorf("expected a scalar value, got %s", trimmed)
	default:
		return string(trimmed), nil
	}
}

func isJSONNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

type xmlAdditionalField struct {
	XMLName xml.Name            `xml:"additional_field"`
	Type    AdditionalFieldType `xml:"type,attr"`
	Code    string              `xml:"code"`
	Values  []string            `xml:"value"`
}

// MarshalXML implements xml.Marshaler. Each field becomes
// <additional_field type="..."><code/><value/>...</additional_field>.
func (f AdditionalFields) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, field := range f {
		if field == nil {
			continue
		}
		elem := xmlAdditionalField{
			Type:   field.FieldType(),
			Code:   field.FieldCode(),
			Values: field.Values(),
		}
		if err := e.Encode(elem); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

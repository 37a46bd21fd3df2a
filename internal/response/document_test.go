// SPDX-License-Identifier: Apache-2.0

package response_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderscope/tender-mcp/internal/response"
)

func TestDocument_Lookup_AbsentVersusNotFoundVersusEmpty(t *testing.T) {
	doc := response.Parse("BASIC INFORMATION:\n- PAN: Not found\nGST/UIN No.: \nName: Acme")

	absentField := doc.Lookup("BASIC_INFORMATION", "Email")
	absentSection := doc.Lookup("FINANCIAL_CRITERIA", "Turnover")
	notFound := doc.Lookup("BASIC_INFORMATION", "PAN")
	empty := doc.Lookup("BASIC_INFORMATION", "GST/UIN_No.")

	assert.False(t, absentField.Present())
	assert.False(t, absentSection.Present())
	assert.False(t, absentField.IsNotFound())

	assert.True(t, notFound.Present())
	assert.True(t, notFound.IsNotFound())
	assert.Equal(t, response.NotFound, notFound.String())

	assert.True(t, empty.Present())
	assert.False(t, empty.IsNotFound())
	assert.Equal(t, "", empty.String())

	assert.NotEqual(t, absentField, empty)
	assert.NotEqual(t, absentField, notFound)
	assert.NotEqual(t, empty, notFound)
}

func TestDocument_Lookup_NormalizesKeys(t *testing.T) {
	doc := response.Parse("BASIC INFORMATION:\nContact No.: 555-1234")

	assert.Equal(t, "555-1234", doc.Lookup("BASIC_INFORMATION", "Contact_No.").String())
	assert.Equal(t, "555-1234", doc.Lookup(" BASIC  INFORMATION ", "Contact No.").String())
	assert.False(t, doc.Lookup("basic_information", "Contact_No.").Present(), "lookup is case-sensitive")
}

func TestValue_Or(t *testing.T) {
	doc := response.Parse("S:\nEmpty/Blank:\nSet: x")
	assert.Equal(t, "-", doc.Lookup("S", "Missing").Or("-"))
	assert.Equal(t, "", doc.Lookup("S", "Empty/Blank").Or("-"))
	assert.Equal(t, "x", doc.Lookup("S", "Set").Or("-"))
}

func TestDocument_NilAndZeroValue(t *testing.T) {
	var nilDoc *response.Document
	assert.Equal(t, 0, nilDoc.Len())
	assert.Equal(t, 0, nilDoc.FieldCount())
	assert.False(t, nilDoc.Has("X"))
	assert.False(t, nilDoc.Lookup("X", "y").Present())
	assert.Empty(t, nilDoc.Map())

	var zero response.Document
	zero.PutSection("A B", []response.Field{{Name: "c d", Value: "e"}})
	assert.Equal(t, "e", zero.Lookup("A_B", "c_d").String())
}

func TestDocument_PutSection(t *testing.T) {
	doc := response.NewDocument()
	doc.PutSection("First", []response.Field{{Name: "a", Value: "1"}, {Name: " a ", Value: "2"}, {Name: " ", Value: "dropped"}})
	doc.PutSection("Second", nil)
	doc.PutSection("  ", []response.Field{{Name: "x", Value: "y"}})
	doc.PutSection("First", []response.Field{{Name: "b", Value: "3"}})

	assert.Equal(t, []string{"First", "Second"}, doc.Sections())
	fields, ok := doc.Fields("First")
	require.True(t, ok)
	assert.Equal(t, []response.Field{{Name: "b", Value: "3"}}, fields)
}

func TestDocument_JSONKeepsOrder(t *testing.T) {
	doc := response.Parse("Z SECTION:\nb: 1\na: 2\nA SECTION:\nq: \"quoted\"")
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"Z_SECTION":{"b":"1","a":"2"},"A_SECTION":{"q":"\"quoted\""}}`, string(out))

	empty, err := json.Marshal(response.NewDocument())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestDocument_UnmarshalJSON(t *testing.T) {
	var doc response.Document
	err := json.Unmarshal([]byte(`{"Z SECTION": {"b": "1", "a": "2"}, "EMPTY": {}}`), &doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"Z_SECTION", "EMPTY"}, doc.Sections())
	fields, _ := doc.Fields("Z_SECTION")
	assert.Equal(t, []response.Field{{Name: "b", Value: "1"}, {Name: "a", Value: "2"}}, fields)

	original := response.Parse(sampleResponse)
	data, err := json.Marshal(original)
	require.NoError(t, err)
	var decoded response.Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	if diff := cmp.Diff(original.Map(), decoded.Map()); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_UnmarshalJSON_Invalid(t *testing.T) {
	for _, in := range []string{`[]`, `{"A": "flat"}`, `{"A": {"b": 1}}`, `{"A": {`} {
		var doc response.Document
		assert.Error(t, json.Unmarshal([]byte(in), &doc), "input %s", in)
	}
}

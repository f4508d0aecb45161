package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameList_Plain(t *testing.T) {
	names, err := ParseNameList(`["Jane Doe", "John Smith"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Doe", "John Smith"}, names)
}

func TestParseNameList_SurroundingProse(t *testing.T) {
	names, err := ParseNameList(`Here are the names I found: ["Jane Doe"] based on the snippets.`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Doe"}, names)
}

func TestParseNameList_DropsEmptyEntries(t *testing.T) {
	names, err := ParseNameList(`["Jane Doe", "", "  "]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Doe"}, names)
}

func TestParseNameList_NoArray(t *testing.T) {
	_, err := ParseNameList(`I could not find any names.`)
	require.Error(t, err)
}

func TestParseNameList_NotStrings(t *testing.T) {
	_, err := ParseNameList(`[1, 2, 3]`)
	require.Error(t, err)
}

func TestParseContact_AllFields(t *testing.T) {
	c, err := ParseContact(`{"linkedin": "https://linkedin.com/in/janedoe", "email": "jane@acme.com", "location": "Boston, MA"}`)
	require.NoError(t, err)
	require.NotNil(t, c.LinkedIn)
	assert.Equal(t, "https://linkedin.com/in/janedoe", *c.LinkedIn)
	require.NotNil(t, c.Email)
	assert.Equal(t, "jane@acme.com", *c.Email)
	require.NotNil(t, c.Location)
	assert.Equal(t, "Boston, MA", *c.Location)
}

func TestParseContact_NullFields(t *testing.T) {
	c, err := ParseContact(`{"linkedin": null, "email": "jane@acme.com", "location": null}`)
	require.NoError(t, err)
	assert.Nil(t, c.LinkedIn)
	assert.Nil(t, c.Location)
	require.NotNil(t, c.Email)
}

func TestParseContact_MissingFields(t *testing.T) {
	c, err := ParseContact(`{"email": "jane@acme.com"}`)
	require.NoError(t, err)
	assert.Nil(t, c.LinkedIn)
	assert.Nil(t, c.Location)
}

func TestParseContact_SurroundingProse(t *testing.T) {
	c, err := ParseContact(`Based on the evidence: {"location": "Basel"} and nothing else.`)
	require.NoError(t, err)
	require.NotNil(t, c.Location)
	assert.Equal(t, "Basel", *c.Location)
}

func TestParseContact_NoObject(t *testing.T) {
	_, err := ParseContact(`no structured data here`)
	require.Error(t, err)
}

func TestParseContact_MalformedJSON(t *testing.T) {
	_, err := ParseContact(`{"email": `)
	require.Error(t, err)
}

func TestParseFirstInt_Plain(t *testing.T) {
	n, err := ParseFirstInt("85")
	require.NoError(t, err)
	assert.Equal(t, 85, n)
}

func TestParseFirstInt_EmbeddedInProse(t *testing.T) {
	n, err := ParseFirstInt("I would rate this lead 72 out of 100.")
	require.NoError(t, err)
	assert.Equal(t, 72, n)
}

func TestParseFirstInt_TakesFirstMatch(t *testing.T) {
	n, err := ParseFirstInt("Score: 40 (previously 90)")
	require.NoError(t, err)
	assert.Equal(t, 40, n)
}

func TestParseFirstInt_NoInteger(t *testing.T) {
	_, err := ParseFirstInt("no digits here")
	require.Error(t, err)
}

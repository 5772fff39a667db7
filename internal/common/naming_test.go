package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowerFirst(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"Name":       "name",
		"ID":         "id",
		"CustomerID": "customerID",
		"URLPath":    "urlPath",
		"already":    "already",
	}

	for in, want := range tests {
		assert.Equal(t, want, LowerFirst(in), "LowerFirst(%q)", in)
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"PersonUpdateObject": "person_update_object",
		"Summary":            "summary",
		"HTTPServer":         "http_server",
		"orderV2":            "order_v2",
		"personUpdateObject": "person_update_object",
	}

	for in, want := range tests {
		assert.Equal(t, want, SnakeCase(in), "SnakeCase(%q)", in)
	}
}

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{"result": true, "result1": true}

	assert.Equal(t, "result2", UniqueName("result", taken))
	assert.Equal(t, "other", UniqueName("other", taken))
}

func TestAppendUnique(t *testing.T) {
	s, ok := AppendUnique([]string{"a"}, "b")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, s)

	s, ok = AppendUnique(s, "a")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, s)
}

func TestPkgSegments(t *testing.T) {
	assert.Nil(t, PkgSegments(""))
	assert.Equal(t, []string{"com", "example"}, PkgSegments("com.example"))
}

func TestIsIdentifier(t *testing.T) {
	for _, s := range []string{"Summary", "_x", "Café", "v2"} {
		assert.True(t, IsIdentifier(s), s)
	}

	for _, s := range []string{"", "My Summary", "2nd", "a-b", "a.b"} {
		assert.False(t, IsIdentifier(s), s)
	}
}

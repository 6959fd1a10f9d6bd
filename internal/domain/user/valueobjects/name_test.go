package valueobjects

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
		expected  string
	}{
		{name: "simple", input: "Maria", expected: "Maria"},
		{name: "trimmed", input: "  João  ", expected: "João"},
		{name: "compound", input: "Ana Clara", expected: "Ana Clara"},
		{name: "apostrophe and hyphen", input: "D'Ávila-Souza", expected: "D'Ávila-Souza"},
		{name: "abbreviation", input: "J. R.", expected: "J. R."},
		{name: "single letter", input: "X", expected: "X"},
		{name: "100 characters", input: strings.Repeat("ã", 100), expected: strings.Repeat("ã", 100)},
		{name: "empty", input: "", wantError: true},
		{name: "blank", input: "   ", wantError: true},
		{name: "digits", input: "R2D2", wantError: true},
		{name: "symbols", input: "Maria!", wantError: true},
		{name: "consecutive spaces", input: "Ana  Clara", wantError: true},
		{name: "101 characters", input: strings.Repeat("a", 101), wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := NewName(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, name)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, name.String())
		})
	}
}

func TestName_EqualsAndDisplay(t *testing.T) {
	lower, err := NewName("maria da silva")
	require.NoError(t, err)
	upper, err := NewName("MARIA DA SILVA")
	require.NoError(t, err)

	assert.True(t, lower.Equals(upper))
	assert.False(t, lower.Equals(nil))
	assert.Equal(t, "Maria Da Silva", lower.DisplayName())
	assert.Equal(t, "Maria Da Silva", upper.DisplayName())
}

func TestName_JSON(t *testing.T) {
	var name Name
	require.NoError(t, json.Unmarshal([]byte(`"Joana"`), &name))
	assert.Equal(t, "Joana", name.String())

	assert.Error(t, json.Unmarshal([]byte(`123`), &name))
	assert.Error(t, json.Unmarshal([]byte(`"Jo@na"`), &name))
}

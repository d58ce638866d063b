package docid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "strips punctuation and spaces", in: "A-12 34", want: "a1234"},
		{name: "already normalized", in: "a1234", want: "a1234"},
		{name: "uppercase", in: "AB123", want: "ab123"},
		{name: "dashes", in: "ab-123", want: "ab123"},
		{name: "empty", in: "", want: ""},
		{name: "only punctuation", in: "--- ///", want: ""},
		{name: "mixed unicode dropped", in: "AB£123§", want: "ab123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_EquivalentForms(t *testing.T) {
	assert.Equal(t, Normalize("A-12 34"), Normalize("a1234"))
}

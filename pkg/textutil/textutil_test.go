package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToTitleCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   \t ", want: ""},
		{name: "trims and folds", in: "  acme CORP ", want: "Acme Corp"},
		{name: "single word", in: "bosch", want: "Bosch"},
		{name: "already canonical", in: "Acme Corp", want: "Acme Corp"},
		{name: "all caps", in: "NGK SPARK PLUGS", want: "Ngk Spark Plugs"},
		{name: "inner whitespace preserved", in: "brake  pads", want: "Brake  Pads"},
		{name: "leading digit", in: "3m company", want: "3m Company"},
		{name: "non-ascii passthrough", in: "café", want: "Café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToTitleCase(tt.in))
		})
	}
}

func TestToTitleCaseIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  acme CORP ",
		"mixed CASE supplier name",
		"with\ttabs\tand spaces",
		"McDonald",
	}

	for _, in := range inputs {
		once := ToTitleCase(in)
		assert.Equal(t, once, ToTitleCase(once), "input %q", in)
	}
}

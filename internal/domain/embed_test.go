package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseImageRef(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want ImageRef
	}{
		{name: "remote", in: "https://cdn.example.com/pic.png", want: RemoteImage("https://cdn.example.com/pic.png")},
		{name: "embed with size", in: "![[pic.png|300]]", want: LocalImage("pic.png")},
		{name: "link with heading", in: "[[folder/pic.png#x]]", want: LocalImage("folder/pic.png")},
		{name: "bare path", in: "folder/pic.png", want: LocalImage("folder/pic.png")},
		{name: "empty brackets", in: "[[]]", want: ImageRef{}},
		{name: "never closed", in: "[[pic.png", want: ImageRef{}},
		{name: "blank", in: "   ", want: ImageRef{}},
		{name: "nested list", in: []any{[]any{"pic.png"}}, want: LocalImage("pic.png")},
		{name: "empty nested list", in: []any{[]any{}}, want: ImageRef{}},
		{name: "string list", in: []string{"[[a.png]]", "[[b.png]]"}, want: LocalImage("a.png")},
		{name: "number", in: 42, want: ImageRef{}},
		{name: "map", in: map[string]any{"url": "x"}, want: ImageRef{}},
		{name: "nil", in: nil, want: ImageRef{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseImageRef(tt.in))
		})
	}
}

func TestParseImageRef_UnquotedYAMLLink(t *testing.T) {
	var fm map[string]any
	require.NoError(t, yaml.Unmarshal([]byte("ods-image: [[assets/pic.png]]\n"), &fm))

	assert.Equal(t, LocalImage("assets/pic.png"), ParseImageRef(fm[KeyImage]))
}

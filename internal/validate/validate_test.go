package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostValidator_Validate(t *testing.T) {
	t.Parallel()

	pv := NewPostValidator(nil)

	tests := []struct {
		name  string
		in    PostInput
		want  map[string]Code
		valid bool
	}{
		{
			name:  "valid",
			in:    PostInput{Title: "Hello", Body: "World"},
			valid: true,
		},
		{
			name:  "title at limit",
			in:    PostInput{Title: strings.Repeat("a", 25), Body: "ok"},
			valid: true,
		},
		{
			name:  "body at limit",
			in:    PostInput{Title: "t", Body: strings.Repeat("b", 255)},
			valid: true,
		},
		{
			name: "missing title",
			in:   PostInput{Body: "World"},
			want: map[string]Code{"title": CodeMissingField},
		},
		{
			name: "missing body",
			in:   PostInput{Title: "Hello"},
			want: map[string]Code{"body": CodeMissingField},
		},
		{
			name: "title too long",
			in:   PostInput{Title: strings.Repeat("a", 26), Body: "ok"},
			want: map[string]Code{"title": CodeTooLong},
		},
		{
			name: "body too long",
			in:   PostInput{Title: "ok", Body: strings.Repeat("b", 256)},
			want: map[string]Code{"body": CodeTooLong},
		},
		{
			name: "profane title",
			in:   PostInput{Title: "well shit", Body: "fine"},
			want: map[string]Code{"title": CodeUnacceptableContent},
		},
		{
			name: "both fields violate",
			in:   PostInput{Title: strings.Repeat("a", 26), Body: ""},
			want: map[string]Code{"title": CodeTooLong, "body": CodeMissingField},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := pv.Validate(tt.in)
			if tt.valid {
				require.NoError(t, err)
				return
			}

			var ferrs Errors
			require.ErrorAs(t, err, &ferrs)
			require.Len(t, ferrs, len(tt.want))
			for field, code := range tt.want {
				require.NotEmpty(t, ferrs[field], "expected errors for %s", field)
				require.Equal(t, code, ferrs[field][0].Code)
				require.NotEmpty(t, ferrs[field][0].Message)
			}
		})
	}
}

func TestPostValidator_TitleLengthCountsRunes(t *testing.T) {
	t.Parallel()

	pv := NewPostValidator(nil)

	// 25 multi-byte runes must pass; byte length alone would reject it.
	err := pv.Validate(PostInput{Title: strings.Repeat("é", 25), Body: "ok"})
	require.NoError(t, err)
}

func TestPostValidator_CustomCleanPolicy(t *testing.T) {
	t.Parallel()

	rejectEverything := func(string) bool { return false }
	pv := NewPostValidator(rejectEverything)

	err := pv.Validate(PostInput{Title: "Hello", Body: "World"})

	var ferrs Errors
	require.ErrorAs(t, err, &ferrs)
	require.Equal(t, CodeUnacceptableContent, ferrs["title"][0].Code)
	require.Equal(t, CodeUnacceptableContent, ferrs["body"][0].Code)
}

func TestDefaultClean(t *testing.T) {
	t.Parallel()

	require.True(t, DefaultClean("a perfectly fine sentence"))
	require.False(t, DefaultClean("what the FUCK"))
	require.False(t, DefaultClean("bullshit"))
}

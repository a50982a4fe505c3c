package links

import (
	"reflect"
	"regexp"
	"testing"
)

func TestExtract(t *testing.T) {
	tc := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "long form with scheme",
			text: "watch this https://www.youtube.com/watch?v=dQw4w9WgXcQ later",
			want: []string{"dQw4w9WgXcQ"},
		},
		{
			name: "long form without scheme",
			text: "youtube.com/watch?v=abc123_-XYZ",
			want: []string{"abc123_-XYZ"},
		},
		{
			name: "short form",
			text: "https://youtu.be/dQw4w9WgXcQ",
			want: []string{"dQw4w9WgXcQ"},
		},
		{
			name: "short form without scheme",
			text: "youtu.be/shortclip01",
			want: []string{"shortclip01"},
		},
		{
			name: "mixed case host",
			text: "HTTPS://WWW.YOUTUBE.COM/WATCH?V=MixedCase99",
			want: []string{"MixedCase99"},
		},
		{
			name: "multiple links in order",
			text: "first youtu.be/aaaaaaaaaaa then youtube.com/watch?v=bbbbbbbbbbb",
			want: []string{"aaaaaaaaaaa", "bbbbbbbbbbb"},
		},
		{
			name: "duplicates preserved",
			text: "youtu.be/same_id_001 and again youtu.be/same_id_001",
			want: []string{"same_id_001", "same_id_001"},
		},
		{
			name: "no links",
			text: "just a plain note about groceries",
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
		{
			name: "unrelated url",
			text: "see https://example.com/watch?v=nope for details",
			want: []string{},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}

	t.Run("never panics and only yields identifier characters", func(t *testing.T) {
		idPattern := regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
		garbage := []string{
			"youtu.be/", "youtube.com/watch?v=", "watch?v=", "://youtu.be/x",
			"\x00\x01\x02", "youtu.be/ok youtube.com/watch?v=\n",
			"https://youtu.be/valid_id-99?t=42",
		}
		for _, text := range garbage {
			for _, id := range Extract(text) {
				if !idPattern.MatchString(id) {
					t.Errorf("Extract(%q) produced invalid identifier %q", text, id)
				}
			}
		}
	})
}

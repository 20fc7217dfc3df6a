package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnailURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"https://media.example.com/studio-media/course-videos/a.mp4", "https://media.example.com/studio-media/course-videos/a.jpg"},
		{"https://media.example.com/b.MOV", "https://media.example.com/b.jpg"},
		{"https://media.example.com/c.webm", "https://media.example.com/c.jpg"},
		{"https://media.example.com/d.avi", "https://media.example.com/d.jpg"},
		// Unknown extensions are left untouched.
		{"https://media.example.com/e.mkv", "https://media.example.com/e.mkv"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ThumbnailURL(tc.in))
	}
}

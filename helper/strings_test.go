package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnderscore(t *testing.T) {
	cases := map[string]string{
		"Title":        "title",
		"TopicID":      "topic_id",
		"DisplayOrder": "display_order",
		"HTMLContent":  "html_content",
		"slug":         "slug",
	}
	for in, want := range cases {
		assert.Equal(t, want, Underscore(in), in)
	}
}

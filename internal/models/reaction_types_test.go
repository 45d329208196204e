package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReactionType(t *testing.T) {
	rt, ok := ParseReactionType("like")
	assert.True(t, ok)
	assert.Equal(t, ReactionLike, rt)

	rt, ok = ParseReactionType("dislike")
	assert.True(t, ok)
	assert.Equal(t, ReactionDislike, rt)

	for _, s := range []string{"", "none", "love", "LIKE"} {
		rt, ok = ParseReactionType(s)
		assert.False(t, ok, "input %q", s)
		assert.Equal(t, ReactionNone, rt)
	}
}

package models

import (
	"testing"

	"github.com/diyhub/backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommentTarget(t *testing.T) {
	target, err := ParseCommentTarget("forum", 7)
	require.NoError(t, err)
	assert.Equal(t, TargetForum, target.Kind())
	assert.Equal(t, uint(7), target.ID())

	_, err = ParseCommentTarget("reply", 7)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTargetError(err))

	_, err = ParseCommentTarget("", 7)
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	_, err = ParseCommentTarget("project", 0)
	assert.True(t, errs.IsMissingRequiredFieldError(err))
}

func TestParseReactionTarget(t *testing.T) {
	for _, kind := range []string{"project", "comment", "reply"} {
		target, err := ParseReactionTarget(kind, 3)
		require.NoError(t, err, kind)
		assert.Equal(t, TargetKind(kind), target.Kind())
	}

	_, err := ParseReactionTarget("forum", 3)
	assert.True(t, errs.IsInvalidTargetError(err))
}

func TestReactionCountsAdd(t *testing.T) {
	var counts ReactionCounts
	counts.Add(ReactionLike, 2)
	counts.Add(ReactionLove, 1)
	counts.Add("meh", 9)

	assert.Equal(t, ReactionCounts{Like: 2, Dislike: 0, Love: 1}, counts)
}

func TestRoundAverage(t *testing.T) {
	assert.Equal(t, 0, RoundAverage(0))
	assert.Equal(t, 5, RoundAverage(4.5))
	assert.Equal(t, 4, RoundAverage(4.49))
	assert.Equal(t, 3, RoundAverage(2.5))
}

func TestNewProjectTagsIsASet(t *testing.T) {
	tags := NewProjectTags([]string{" IoT", "iot", "", "lamp", "Lamp "})

	values := make([]string, len(tags))
	for i, tag := range tags {
		values[i] = tag.Value
	}
	assert.Equal(t, []string{"iot", "lamp"}, values)
}

func TestParseSkillLevel(t *testing.T) {
	level, ok := ParseSkillLevel("intermediate")
	assert.True(t, ok)
	assert.Equal(t, LevelIntermediate, level)

	_, ok = ParseSkillLevel("expert")
	assert.False(t, ok)
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&User{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&User{FirstName: "Ada"}).FullName())
	var nobody *User
	assert.Equal(t, "", nobody.FullName())
}

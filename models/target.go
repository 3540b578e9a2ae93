package models

import (
	"github.com/diyhub/backend/errs"
)

// TargetKind names the kind of row a comment, reaction or rating is attached to.
type TargetKind string

const (
	TargetProject TargetKind = "project"
	TargetForum   TargetKind = "forum"
	TargetComment TargetKind = "comment"
	TargetReply   TargetKind = "reply"
)

// The two allow-lists are independent on purpose: comments hang off projects and forums,
// reactions hang off projects and individual comments/replies.
var (
	commentTargetKinds  = []TargetKind{TargetProject, TargetForum}
	reactionTargetKinds = []TargetKind{TargetProject, TargetComment, TargetReply}
)

// CommentTarget is the (target_type, target_id) key of a comment. It can only be built
// through ParseCommentTarget, so every value in circulation has an allowed kind.
type CommentTarget struct {
	kind TargetKind
	id   uint
}

// ParseCommentTarget validates kind against the comment allow-list.
func ParseCommentTarget(kind string, id uint) (CommentTarget, error) {
	k, err := parseKind(kind, id, commentTargetKinds)
	if err != nil {
		return CommentTarget{}, err
	}
	return CommentTarget{kind: k, id: id}, nil
}

// ProjectCommentTarget is the comment target of a project.
func ProjectCommentTarget(projectID uint) CommentTarget {
	return CommentTarget{kind: TargetProject, id: projectID}
}

// ForumCommentTarget is the comment target of a forum.
func ForumCommentTarget(forumID uint) CommentTarget {
	return CommentTarget{kind: TargetForum, id: forumID}
}

func (t CommentTarget) Kind() TargetKind { return t.kind }
func (t CommentTarget) ID() uint         { return t.id }

// ReactionTarget is the (target_type, target_id) key of a reaction.
type ReactionTarget struct {
	kind TargetKind
	id   uint
}

// ParseReactionTarget validates kind against the reaction allow-list.
func ParseReactionTarget(kind string, id uint) (ReactionTarget, error) {
	k, err := parseKind(kind, id, reactionTargetKinds)
	if err != nil {
		return ReactionTarget{}, err
	}
	return ReactionTarget{kind: k, id: id}, nil
}

// ProjectReactionTarget is the reaction target of a project.
func ProjectReactionTarget(projectID uint) ReactionTarget {
	return ReactionTarget{kind: TargetProject, id: projectID}
}

func (t ReactionTarget) Kind() TargetKind { return t.kind }
func (t ReactionTarget) ID() uint         { return t.id }

func parseKind(kind string, id uint, allowed []TargetKind) (TargetKind, error) {
	if kind == "" {
		return "", errs.NewMissingRequiredFieldError("target_type")
	}
	if id == 0 {
		return "", errs.NewMissingRequiredFieldError("target_id")
	}
	for _, k := range allowed {
		if string(k) == kind {
			return k, nil
		}
	}
	names := make([]string, len(allowed))
	for i, k := range allowed {
		names[i] = string(k)
	}
	return "", errs.NewInvalidTargetError(kind, names)
}

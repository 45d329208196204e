package models

// ReactionType represents how a user reacted to a post.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
	ReactionNone    ReactionType = "none" // Used to indicate no stored reaction
)

// ParseReactionType validates a client-supplied reaction type.
func ParseReactionType(s string) (ReactionType, bool) {
	switch ReactionType(s) {
	case ReactionLike, ReactionDislike:
		return ReactionType(s), true
	default:
		return ReactionNone, false
	}
}

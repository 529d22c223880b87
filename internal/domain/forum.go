package domain

// ForumPost is either a topic (ParentID nil, Title set) or a reply.
type ForumPost struct {
	ID         string
	UserID     string
	AuthorName string
	Category   string
	Title      *string
	Text       string
	ParentID   *string
	IsPinned   bool
	Views      int
	CreatedAt  int64
	UpdatedAt  int64
}

// IsTopic reports whether the post starts a thread.
func (p *ForumPost) IsTopic() bool {
	return p.ParentID == nil
}

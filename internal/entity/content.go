package entity

// Content reference types. A (ContentID, ContentType) pair is a logical
// pointer resolved by the consuming feature, never a foreign key.
const (
	ContentForumThread = "forum_thread"
	ContentForumReply  = "forum_reply"
	ContentLFGPost     = "lfg_post"
	ContentNewsPost    = "news_post"
	ContentUser        = "user"
	ContentNews        = "news"
	ContentPost        = "post"
	ContentEvent       = "event"
	ContentComment     = "comment"
)

// ContentTypeOneOf is the binding tag parameter shared by every DTO that
// carries a content reference.
const ContentTypeOneOf = "forum_thread forum_reply lfg_post news_post user news post event comment"

var validContentTypes = map[string]bool{
	ContentForumThread: true,
	ContentForumReply:  true,
	ContentLFGPost:     true,
	ContentNewsPost:    true,
	ContentUser:        true,
	ContentNews:        true,
	ContentPost:        true,
	ContentEvent:       true,
	ContentComment:     true,
}

func IsValidContentType(t string) bool {
	return validContentTypes[t]
}

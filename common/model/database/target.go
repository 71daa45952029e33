package database

import "GoEngage/common/errorx"

const (
	ContentTutorial   = "tutorial"
	ContentCourse     = "course"
	ContentModule     = "module"
	ContentDiscussion = "discussion"
)

// ValidContentType 可被评论/评分的内容类型
func ValidContentType(t string) bool {
	switch t {
	case ContentTutorial, ContentCourse, ContentModule, ContentDiscussion:
		return true
	}
	return false
}

const (
	BusinessComment         = 1
	BusinessDiscussionReply = 2
)

// Target 可被讨论/评分的内容
type Target struct {
	ContentType string `json:"content_type"`
	ContentId   string `json:"content_id"`
}

func (t Target) String() string {
	return t.ContentType + ":" + t.ContentId
}

func (t Target) Validate() error {
	if !ValidContentType(t.ContentType) {
		return errorx.NewValidation("unknown content type %q", t.ContentType)
	}
	if t.ContentId == "" {
		return errorx.NewValidation("empty content id")
	}
	if len(t.ContentId) > 128 {
		return errorx.NewValidation("content id longer than 128")
	}
	return nil
}

package database

import (
	"GoEngage/common/errorx"
	"strings"
	"time"
)

// DiscussionThread 问答帖
type DiscussionThread struct {
	Id          int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	AuthorId    int64  `gorm:"not null;index:idx_threads_author" json:"author_id"`
	ContentType string `gorm:"not null;size:32;index:idx_threads_target,priority:10" json:"content_type"`
	ContentId   string `gorm:"not null;size:128;index:idx_threads_target,priority:20" json:"content_id"`
	Title       string `gorm:"not null;size:255" json:"title"`
	Description string `gorm:"not null;type:text" json:"description"`
	// 形如 ",go,concurrency,"，便于按tag做like查询
	Tags         string    `gorm:"not null;size:512;default:''" json:"-"`
	IsSolved     bool      `gorm:"not null;default:false" json:"is_solved"`
	ViewsCount   int64     `gorm:"not null;default:0" json:"views_count"`
	RepliesCount int64     `gorm:"not null;default:0" json:"replies_count"`
	CreatedAt    time.Time `gorm:"not null;index:idx_threads_created" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (DiscussionThread) TableName() string {
	return "discussion_threads"
}

func (t *DiscussionThread) TagList() []string {
	trimmed := strings.Trim(t.Tags, ",")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, ",")
}

// JoinTags tags需要先经过NormalizeTags
func JoinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "," + strings.Join(tags, ",") + ","
}

// DiscussionReply 问答回复，结构与回复评论一致但不进入评论树
type DiscussionReply struct {
	Id         int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ThreadId   int64     `gorm:"not null;index:idx_replies_thread,priority:10" json:"thread_id"`
	AuthorId   int64     `gorm:"not null;index:idx_replies_author" json:"author_id"`
	ParentId   int64     `gorm:"not null;default:0" json:"parent_id"`
	Body       string    `gorm:"not null;type:text" json:"body"`
	LikesCount int64     `gorm:"not null;default:0" json:"likes_count"`
	IsHelpful  bool      `gorm:"not null;default:false" json:"is_helpful"`
	CreatedAt  time.Time `gorm:"not null;index:idx_replies_thread,priority:20" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (DiscussionReply) TableName() string {
	return "discussion_replies"
}

func (r DiscussionReply) GetId() int64       { return r.Id }
func (r DiscussionReply) GetParentId() int64 { return r.ParentId }

const (
	MaxTags   = 10
	MaxTagLen = 32
)

// NormalizeTags 转小写、去重，tag只允许字母数字及-.+#
func NormalizeTags(tags []string) ([]string, error) {
	res := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		if len(tag) > MaxTagLen {
			return nil, errorx.NewValidation("tag %q longer than %d", tag, MaxTagLen)
		}
		for _, r := range tag {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || strings.ContainsRune("-.+#", r)) {
				return nil, errorx.NewValidation("tag %q contains invalid character %q", tag, r)
			}
		}
		seen[tag] = true
		res = append(res, tag)
	}
	if len(res) > MaxTags {
		return nil, errorx.NewValidation("at most %d tags", MaxTags)
	}
	return res, nil
}

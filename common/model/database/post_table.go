package database

import "time"

// Post 评论，ParentId==0 为根评论，否则为回复，只嵌套一层
type Post struct {
	Id          int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	AuthorId    int64  `gorm:"not null;index:idx_posts_author" json:"author_id"`
	ContentType string `gorm:"not null;size:32;index:idx_posts_target,priority:10" json:"content_type"`
	ContentId   string `gorm:"not null;size:128;index:idx_posts_target,priority:20" json:"content_id"`
	ParentId    int64  `gorm:"not null;default:0;index:idx_posts_parent" json:"parent_id"`
	Body        string `gorm:"not null;type:text" json:"body"`
	// 冗余计数，与like_edges中的记录数保持一致
	LikesCount int64     `gorm:"not null;default:0" json:"likes_count"`
	IsHelpful  bool      `gorm:"not null;default:false" json:"is_helpful"`
	CreatedAt  time.Time `gorm:"not null;index:idx_posts_target,priority:30" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

func (p Post) IsRoot() bool {
	return p.ParentId == 0
}

func (p Post) GetId() int64       { return p.Id }
func (p Post) GetParentId() int64 { return p.ParentId }

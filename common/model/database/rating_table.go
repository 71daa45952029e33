package database

import "time"

// Rating 每个用户对同一目标只有一条评分，重复提交为更新
type Rating struct {
	Id          int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserId      int64     `gorm:"not null;uniqueIndex:idx_ratings_user_target,priority:10" json:"user_id"`
	ContentType string    `gorm:"not null;size:32;uniqueIndex:idx_ratings_user_target,priority:20;index:idx_ratings_target,priority:10" json:"content_type"`
	ContentId   string    `gorm:"not null;size:128;uniqueIndex:idx_ratings_user_target,priority:30;index:idx_ratings_target,priority:20" json:"content_id"`
	Stars       int       `gorm:"not null" json:"stars"`
	ReviewText  *string   `gorm:"type:text" json:"review_text,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

const (
	MinStars = 1
	MaxStars = 5
)

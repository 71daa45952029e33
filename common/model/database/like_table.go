package database

import "time"

// LikeEdge 存在即点赞，(business, user_id, target_id) 唯一
type LikeEdge struct {
	Id        int64     `gorm:"primaryKey"`
	Business  int       `gorm:"not null;uniqueIndex:idx_like_edges_edge,priority:10;index:idx_like_edges_target,priority:10"`
	UserId    int64     `gorm:"not null;uniqueIndex:idx_like_edges_edge,priority:20"`
	TargetId  int64     `gorm:"not null;uniqueIndex:idx_like_edges_edge,priority:30;index:idx_like_edges_target,priority:20"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LikeEdge) TableName() string {
	return "like_edges"
}

// LikeState 某用户对某目标的点赞状态
type LikeState bool

const (
	Liked    LikeState = true
	NotLiked LikeState = false
)

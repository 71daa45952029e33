package types

type TargetReq struct {
	ContentType string `path:"contentType"`
	ContentId   string `path:"contentId"`
}

type LoadTreeReq struct {
	ContentType string `path:"contentType"`
	ContentId   string `path:"contentId"`
	Order       string `form:"order,optional"`
}

// CommentNode 评论与问答回复共用
type CommentNode struct {
	Id         int64          `json:"id"`
	AuthorId   int64          `json:"author_id"`
	ParentId   int64          `json:"parent_id"`
	Body       string         `json:"body"`
	LikesCount int64          `json:"likes_count"`
	Liked      bool           `json:"liked"`
	IsHelpful  bool           `json:"is_helpful"`
	CreatedAt  int64          `json:"created_at"`
	UpdatedAt  int64          `json:"updated_at"`
	Replies    []*CommentNode `json:"replies"`
}

type LoadTreeResp struct {
	ContentType string         `json:"content_type"`
	ContentId   string         `json:"content_id"`
	Order       string         `json:"order"`
	Total       int            `json:"total"`
	Comments    []*CommentNode `json:"comments"`
}

type CommentReq struct {
	ContentType string `path:"contentType"`
	ContentId   string `path:"contentId"`
	ParentId    int64  `json:"parent_id,optional"`
	Body        string `json:"body"`
}

type EditCommentReq struct {
	Id   int64  `path:"id"`
	Body string `json:"body"`
}

type IdReq struct {
	Id int64 `path:"id"`
}

type LikeResp struct {
	TargetId   int64 `json:"target_id"`
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

type SubmitRatingReq struct {
	ContentType string  `path:"contentType"`
	ContentId   string  `path:"contentId"`
	Stars       int     `json:"stars"`
	ReviewText  *string `json:"review_text,optional"`
}

type RatingResp struct {
	Id          int64   `json:"id"`
	UserId      int64   `json:"user_id"`
	ContentType string  `json:"content_type"`
	ContentId   string  `json:"content_id"`
	Stars       int     `json:"stars"`
	ReviewText  *string `json:"review_text,omitempty"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

type RatingStatsResp struct {
	ContentType  string  `json:"content_type"`
	ContentId    string  `json:"content_id"`
	Average      float64 `json:"average"`
	Count        int64   `json:"count"`
	Distribution []int64 `json:"distribution"`
}

type ListRatingsReq struct {
	ContentType string `path:"contentType"`
	ContentId   string `path:"contentId"`
	Limit       int    `form:"limit,default=20"`
	Offset      int    `form:"offset,default=0"`
}

type ListRatingsResp struct {
	Total   int          `json:"total"`
	Ratings []RatingResp `json:"ratings"`
}

type CreateDiscussionReq struct {
	ContentType string   `json:"content_type"`
	ContentId   string   `json:"content_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,optional"`
}

type DiscussionResp struct {
	Id           int64    `json:"id"`
	AuthorId     int64    `json:"author_id"`
	ContentType  string   `json:"content_type"`
	ContentId    string   `json:"content_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	IsSolved     bool     `json:"is_solved"`
	ViewsCount   int64    `json:"views_count"`
	RepliesCount int64    `json:"replies_count"`
	CreatedAt    int64    `json:"created_at"`
	UpdatedAt    int64    `json:"updated_at"`
}

type ListDiscussionsReq struct {
	ContentType string `form:"contentType,optional"`
	ContentId   string `form:"contentId,optional"`
	Tag         string `form:"tag,optional"`
	Limit       int    `form:"limit,default=20"`
	Offset      int    `form:"offset,default=0"`
}

type ListDiscussionsResp struct {
	Discussions []DiscussionResp `json:"discussions"`
}

type GetDiscussionResp struct {
	Discussion DiscussionResp `json:"discussion"`
	Replies    []*CommentNode `json:"replies"`
}

type ViewResp struct {
	Id         int64 `json:"id"`
	ViewsCount int64 `json:"views_count"`
}

type DiscussionReplyReq struct {
	Id       int64  `path:"id"`
	ParentId int64  `json:"parent_id,optional"`
	Body     string `json:"body"`
}

type DiscussionReplyResp struct {
	Reply        *CommentNode `json:"reply"`
	RepliesCount int64        `json:"replies_count"`
}

type DelDiscussionReplyResp struct {
	ThreadId     int64 `json:"thread_id"`
	RepliesCount int64 `json:"replies_count"`
}

type MarkSolvedReq struct {
	Id     int64 `path:"id"`
	Solved bool  `json:"solved"`
}

type MarkHelpfulReq struct {
	Id      int64 `path:"id"`
	Helpful bool  `json:"helpful"`
}

type ErrorResp struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

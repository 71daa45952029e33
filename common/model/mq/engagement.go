package mq

import "strconv"

// Message 发往kafka的消息，Key相同的消息进入同一分区保证有序
type Message interface {
	Key() string
	Type() string
}

const (
	TypeComment      = "comment"
	TypeDelComment   = "del_comment"
	TypeLike         = "like"
	TypeRating       = "rating"
	TypeDelRating    = "del_rating"
	TypeDiscussion   = "discussion"
	TypeReply        = "discussion_reply"
	TypeDelReply     = "del_discussion_reply"
	TypeThreadSolved = "thread_solved"
	TypeReplyHelpful = "reply_helpful"
)

type CommentKafkaJson struct {
	Id          int64  `json:"id"`
	UserId      int64  `json:"user_id"`
	ContentType string `json:"content_type"`
	ContentId   string `json:"content_id"`
	ParentId    int64  `json:"parent_id"`
	TimeStamp   int64  `json:"time_stamp"`
}

func (m CommentKafkaJson) Key() string  { return m.ContentType + ":" + m.ContentId }
func (m CommentKafkaJson) Type() string { return TypeComment }

type DelCommentKafkaJson struct {
	UserId      int64  `json:"user_id"`
	CommentId   int64  `json:"comment_id"`
	ContentType string `json:"content_type"`
	ContentId   string `json:"content_id"`
	TimeStamp   int64  `json:"time_stamp"`
}

func (m DelCommentKafkaJson) Key() string  { return m.ContentType + ":" + m.ContentId }
func (m DelCommentKafkaJson) Type() string { return TypeDelComment }

type LikeKafkaJson struct {
	TimeStamp  int64 `json:"time_stamp"`
	Business   int   `json:"business"`
	UserId     int64 `json:"user_id"`
	LikeId     int64 `json:"like_id"`
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

func (m LikeKafkaJson) Key() string  { return strconv.FormatInt(m.LikeId, 10) }
func (m LikeKafkaJson) Type() string { return TypeLike }

type RatingKafkaJson struct {
	Id          int64  `json:"id"`
	UserId      int64  `json:"user_id"`
	ContentType string `json:"content_type"`
	ContentId   string `json:"content_id"`
	Stars       int    `json:"stars"`
	Deleted     bool   `json:"deleted"`
	TimeStamp   int64  `json:"time_stamp"`
}

func (m RatingKafkaJson) Key() string { return m.ContentType + ":" + m.ContentId }
func (m RatingKafkaJson) Type() string {
	if m.Deleted {
		return TypeDelRating
	}
	return TypeRating
}

type DiscussionKafkaJson struct {
	Id          int64    `json:"id"`
	UserId      int64    `json:"user_id"`
	ContentType string   `json:"content_type"`
	ContentId   string   `json:"content_id"`
	Tags        []string `json:"tags"`
	TimeStamp   int64    `json:"time_stamp"`
}

func (m DiscussionKafkaJson) Key() string  { return strconv.FormatInt(m.Id, 10) }
func (m DiscussionKafkaJson) Type() string { return TypeDiscussion }

type ReplyKafkaJson struct {
	Id           int64 `json:"id"`
	ThreadId     int64 `json:"thread_id"`
	UserId       int64 `json:"user_id"`
	ParentId     int64 `json:"parent_id"`
	RepliesCount int64 `json:"replies_count"`
	Deleted      bool  `json:"deleted"`
	TimeStamp    int64 `json:"time_stamp"`
}

func (m ReplyKafkaJson) Key() string { return strconv.FormatInt(m.ThreadId, 10) }
func (m ReplyKafkaJson) Type() string {
	if m.Deleted {
		return TypeDelReply
	}
	return TypeReply
}

// FlagKafkaJson 已解决/有帮助标记
type FlagKafkaJson struct {
	FlagType  string `json:"flag_type"`
	ThreadId  int64  `json:"thread_id"`
	ReplyId   int64  `json:"reply_id,omitempty"`
	UserId    int64  `json:"user_id"`
	Value     bool   `json:"value"`
	TimeStamp int64  `json:"time_stamp"`
}

func (m FlagKafkaJson) Key() string  { return strconv.FormatInt(m.ThreadId, 10) }
func (m FlagKafkaJson) Type() string { return m.FlagType }

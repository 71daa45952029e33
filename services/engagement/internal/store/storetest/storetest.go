package storetest

import (
	"GoEngage/common/model/database"
	"GoEngage/services/engagement/internal/store"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB 每次返回一个独立的内存sqlite，单连接保证事务串行
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// New 已完成建表的Store
func New(tb testing.TB) *store.Store {
	tb.Helper()
	s := store.New(DB(tb))
	if err := s.Migrate(context.Background()); err != nil {
		tb.Fatalf("failed to migrate: %v", err)
	}
	return s
}

var (
	lastId int64
	epoch  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

// NextId 测试用的递增id
func NextId() int64 {
	return atomic.AddInt64(&lastId, 1)
}

// At 返回基准时间之后第n秒，用来构造确定的创建顺序
func At(n int) time.Time {
	return epoch.Add(time.Duration(n) * time.Second)
}

var Tutorial = database.Target{ContentType: database.ContentTutorial, ContentId: "go-basics"}

// SeedPost 直接写入评论，parentId为0时为根评论
func SeedPost(tb testing.TB, s *store.Store, authorId int64, parentId int64, createdAt time.Time) *database.Post {
	tb.Helper()
	post := &database.Post{
		Id:          NextId(),
		AuthorId:    authorId,
		ContentType: Tutorial.ContentType,
		ContentId:   Tutorial.ContentId,
		ParentId:    parentId,
		Body:        "body",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := s.InsertPost(context.Background(), post); err != nil {
		tb.Fatalf("failed to seed post: %v", err)
	}
	return post
}

// SeedThread 直接写入问答帖
func SeedThread(tb testing.TB, s *store.Store, authorId int64, tags ...string) *database.DiscussionThread {
	tb.Helper()
	thread := &database.DiscussionThread{
		Id:          NextId(),
		AuthorId:    authorId,
		ContentType: Tutorial.ContentType,
		ContentId:   Tutorial.ContentId,
		Title:       "how do channels close",
		Description: "closing twice panics, why",
		Tags:        database.JoinTags(tags),
	}
	if err := s.CreateThread(context.Background(), thread); err != nil {
		tb.Fatalf("failed to seed thread: %v", err)
	}
	return thread
}

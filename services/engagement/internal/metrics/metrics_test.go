package metrics

import (
	"GoEngage/common/model/database"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func TestLikeResult(t *testing.T) {
	require.Equal(t, ResultUnchanged, LikeResult(true, false))
	require.Equal(t, ResultLiked, LikeResult(true, true))
	require.Equal(t, ResultUnliked, LikeResult(false, true))
}

func TestCollector_Collect(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, db.Create(&database.Rating{Id: 1, UserId: 1, ContentType: "course", ContentId: "c", Stars: 3}).Error)

	c := &Collector{
		DB:     db,
		Tables: []schema.Tabler{database.Rating{}, database.Post{}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	c.Collect(context.Background())

	require.Equal(t, float64(1), testutil.ToFloat64(tableCount.WithLabelValues("ratings")))
	require.Equal(t, float64(0), testutil.ToFloat64(tableCount.WithLabelValues("posts")))
}

func TestHTTPServer(t *testing.T) {
	Views.Inc()
	srv, err := NewHTTPServer("127.0.0.1:0", slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "engagement_discussion_views_total")

	health, err := http.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	_ = health.Body.Close()
	require.Equal(t, http.StatusOK, health.StatusCode)
}

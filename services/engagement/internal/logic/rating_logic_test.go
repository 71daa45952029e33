package logic

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"GoEngage/common/model/mq"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

var course = types.TargetReq{ContentType: database.ContentCourse, ContentId: "go-101"}

func submit(t *testing.T, svcCtx *svc.ServiceContext, userId int64, stars int, review *string) *types.RatingResp {
	t.Helper()
	resp, err := NewSubmitRatingLogic(as(userId), svcCtx).SubmitRating(&types.SubmitRatingReq{
		ContentType: course.ContentType,
		ContentId:   course.ContentId,
		Stars:       stars,
		ReviewText:  review,
	})
	require.NoError(t, err)
	return resp
}

func TestRatingStats_Example(t *testing.T) {
	svcCtx, rec := newTestSvc(t)
	for i, stars := range []int{5, 5, 4, 3, 5} {
		submit(t, svcCtx, int64(i+1), stars, nil)
	}
	require.Equal(t, mq.TypeRating, rec.Last().Type())

	stats, err := NewGetRatingStatsLogic(anonymous, svcCtx).GetRatingStats(&course)
	require.NoError(t, err)
	require.Equal(t, 4.4, stats.Average)
	require.Equal(t, int64(5), stats.Count)
	require.Equal(t, []int64{0, 0, 1, 1, 3}, stats.Distribution)
}

func TestRatingStats_Empty(t *testing.T) {
	svcCtx, _ := newTestSvc(t)
	stats, err := NewGetRatingStatsLogic(anonymous, svcCtx).GetRatingStats(&course)
	require.NoError(t, err)
	require.Zero(t, stats.Average)
	require.Zero(t, stats.Count)
	require.Equal(t, []int64{0, 0, 0, 0, 0}, stats.Distribution)
}

func TestSubmitRating_ResubmitUpdates(t *testing.T) {
	svcCtx, _ := newTestSvc(t)
	first := submit(t, svcCtx, 7, 2, lo.ToPtr("  too fast  "))
	require.Equal(t, "too fast", *first.ReviewText)
	second := submit(t, svcCtx, 7, 4, nil)
	require.Equal(t, first.Id, second.Id)
	require.Equal(t, 4, second.Stars)
	require.Nil(t, second.ReviewText)

	mine, err := NewGetMyRatingLogic(as(7), svcCtx).GetMyRating(&course)
	require.NoError(t, err)
	require.Equal(t, 4, mine.Stars)

	stats, err := NewGetRatingStatsLogic(anonymous, svcCtx).GetRatingStats(&course)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.Count)
	require.Equal(t, 4.0, stats.Average)
}

func TestSubmitRating_Validation(t *testing.T) {
	svcCtx, _ := newTestSvc(t)
	for _, stars := range []int{0, 6} {
		_, err := NewSubmitRatingLogic(as(1), svcCtx).SubmitRating(&types.SubmitRatingReq{
			ContentType: course.ContentType, ContentId: course.ContentId, Stars: stars,
		})
		require.True(t, errorx.Is(err, errorx.Validation))
	}
	_, err := NewSubmitRatingLogic(anonymous, svcCtx).SubmitRating(&types.SubmitRatingReq{
		ContentType: course.ContentType, ContentId: course.ContentId, Stars: 3,
	})
	require.ErrorIs(t, err, errorx.ErrUnauthorized)
}

func TestListAndDeleteRatings(t *testing.T) {
	svcCtx, rec := newTestSvc(t)
	for user := int64(1); user <= 5; user++ {
		submit(t, svcCtx, user, 3, nil)
	}

	page, err := NewListRatingsLogic(anonymous, svcCtx).ListRatings(&types.ListRatingsReq{
		ContentType: course.ContentType, ContentId: course.ContentId, Limit: 2, Offset: 4,
	})
	require.NoError(t, err)
	require.Equal(t, 5, page.Total)
	require.Len(t, page.Ratings, 1)

	_, err = NewGetMyRatingLogic(as(99), svcCtx).GetMyRating(&course)
	require.True(t, errorx.Is(err, errorx.NotFound))

	require.NoError(t, NewDeleteRatingLogic(as(3), svcCtx).DeleteRating(&course))
	msg := rec.Last().(mq.RatingKafkaJson)
	require.True(t, msg.Deleted)
	require.Equal(t, mq.TypeDelRating, msg.Type())

	err = NewDeleteRatingLogic(as(3), svcCtx).DeleteRating(&course)
	require.True(t, errorx.Is(err, errorx.NotFound))

	stats, err := NewGetRatingStatsLogic(anonymous, svcCtx).GetRatingStats(&course)
	require.NoError(t, err)
	require.Equal(t, int64(4), stats.Count)
}

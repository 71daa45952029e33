package handler

import (
	"GoEngage/common/model/database"
	"GoEngage/services/engagement/internal/svc"
	"net/http"

	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	httpx.SetErrorHandlerCtx(ErrorHandler(svcCtx.Logger))

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{svcCtx.UserMiddleware},
			[]rest.Route{
				{
					Method:  http.MethodGet,
					Path:    "/targets/:contentType/:contentId/comments",
					Handler: LoadTreeHandler(svcCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/targets/:contentType/:contentId/comments",
					Handler: CommentHandler(svcCtx),
				},
				{
					Method:  http.MethodPut,
					Path:    "/comments/:id",
					Handler: EditCommentHandler(svcCtx),
				},
				{
					Method:  http.MethodDelete,
					Path:    "/comments/:id",
					Handler: DelCommentHandler(svcCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/comments/:id/like/toggle",
					Handler: ToggleLikeHandler(svcCtx, database.BusinessComment),
				},
				{
					Method:  http.MethodPut,
					Path:    "/comments/:id/like",
					Handler: LikeHandler(svcCtx, database.BusinessComment),
				},
				{
					Method:  http.MethodDelete,
					Path:    "/comments/:id/like",
					Handler: CancelLikeHandler(svcCtx, database.BusinessComment),
				},
			}...,
		),
		rest.WithPrefix("/api/v1"),
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{svcCtx.UserMiddleware},
			[]rest.Route{
				{
					Method:  http.MethodGet,
					Path:    "/targets/:contentType/:contentId/ratings/stats",
					Handler: GetRatingStatsHandler(svcCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/targets/:contentType/:contentId/ratings/mine",
					Handler: GetMyRatingHandler(svcCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/targets/:contentType/:contentId/ratings",
					Handler: ListRatingsHandler(svcCtx),
				},
				{
					Method:  http.MethodPut,
					Path:    "/targets/:contentType/:contentId/ratings",
					Handler: SubmitRatingHandler(svcCtx),
				},
				{
					Method:  http.MethodDelete,
					Path:    "/targets/:contentType/:contentId/ratings",
					Handler: DeleteRatingHandler(svcCtx),
				},
			}...,
		),
		rest.WithPrefix("/api/v1"),
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{svcCtx.UserMiddleware},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/discussions",
					Handler: CreateDiscussionHandler(svcCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/discussions",
					Handler: ListDiscussionsHandler(svcCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/discussions/:id",
					Handler: GetDiscussionHandler(svcCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/discussions/:id/views",
					Handler: RecordViewHandler(svcCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/discussions/:id/replies",
					Handler: DiscussionReplyHandler(svcCtx),
				},
				{
					Method:  http.MethodPut,
					Path:    "/discussions/:id/solved",
					Handler: MarkSolvedHandler(svcCtx),
				},
				{
					Method:  http.MethodDelete,
					Path:    "/discussions/replies/:id",
					Handler: DelDiscussionReplyHandler(svcCtx),
				},
				{
					Method:  http.MethodPut,
					Path:    "/discussions/replies/:id/helpful",
					Handler: MarkHelpfulHandler(svcCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/discussions/replies/:id/like/toggle",
					Handler: ToggleLikeHandler(svcCtx, database.BusinessDiscussionReply),
				},
				{
					Method:  http.MethodPut,
					Path:    "/discussions/replies/:id/like",
					Handler: LikeHandler(svcCtx, database.BusinessDiscussionReply),
				},
				{
					Method:  http.MethodDelete,
					Path:    "/discussions/replies/:id/like",
					Handler: CancelLikeHandler(svcCtx, database.BusinessDiscussionReply),
				},
			}...,
		),
		rest.WithPrefix("/api/v1"),
	)
}

package handler

import (
	"GoEngage/services/engagement/internal/logic"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/types"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func DelDiscussionReplyHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, parseError(err))
			return
		}

		l := logic.NewDelDiscussionReplyLogic(r.Context(), svcCtx)
		resp, err := l.DelDiscussionReply(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

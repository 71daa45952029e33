package middleware

import (
	"GoEngage/common/errorx"
	"GoEngage/common/util"
	"net/http"
	"strconv"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// UserHeader 网关鉴权后写入的用户id
const UserHeader = "X-User-Id"

type UserMiddleware struct{}

func NewUserMiddleware() *UserMiddleware {
	return &UserMiddleware{}
}

// Handle 没有该header视为未登录，是否允许匿名由logic决定
func (m *UserMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(UserHeader)
		if header == "" {
			next(w, r)
			return
		}
		userId, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userId <= 0 {
			httpx.ErrorCtx(r.Context(), w, errorx.NewValidation("invalid %s header", UserHeader))
			return
		}
		next(w, r.WithContext(util.WithUserId(r.Context(), userId)))
	}
}

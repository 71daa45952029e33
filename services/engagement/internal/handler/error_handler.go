package handler

import (
	"GoEngage/common/errorx"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/types"
	"context"
	"log/slog"
	"net/http"
)

// ErrorHandler 将errorx的类型映射为状态码，内部错误不向调用方暴露细节
func ErrorHandler(logger *slog.Logger) func(context.Context, error) (int, any) {
	return func(ctx context.Context, err error) (int, any) {
		status := errorx.HTTPStatus(err)
		resp := types.ErrorResp{
			Code:    errorx.CodeOf(err),
			Message: err.Error(),
		}
		if status == http.StatusInternalServerError {
			util.SetTrace(ctx, logger).Error("request failed", "err", err.Error())
			resp.Message = "internal error"
		}
		return status, resp
	}
}

// parseError 请求参数无法解析属于调用方错误
func parseError(err error) error {
	return errorx.New(errorx.Validation, "invalid_argument", err)
}

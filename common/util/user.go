package util

import "context"

type userIdKey struct{}

// WithUserId 网关鉴权后的用户id，0表示未登录
func WithUserId(ctx context.Context, userId int64) context.Context {
	return context.WithValue(ctx, userIdKey{}, userId)
}

func UserIdFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(userIdKey{}).(int64)
	return id
}

package logic

import (
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/svc"
	"GoEngage/services/engagement/internal/svc/svctest"
	"context"
	"testing"
)

func newTestSvc(t *testing.T) (*svc.ServiceContext, *svctest.Recorder) {
	t.Helper()
	return svctest.New(t)
}

func as(userId int64) context.Context {
	return util.WithUserId(context.Background(), userId)
}

var anonymous = context.Background()

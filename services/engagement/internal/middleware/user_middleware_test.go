package middleware

import (
	"GoEngage/common/util"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserMiddleware(t *testing.T) {
	var seen int64 = -1
	handler := NewUserMiddleware().Handle(func(w http.ResponseWriter, r *http.Request) {
		seen = util.UserIdFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		header string
		status int
		userId int64
	}{
		{header: "", status: http.StatusNoContent, userId: 0},
		{header: "42", status: http.StatusNoContent, userId: 42},
		{header: "abc", status: http.StatusBadRequest, userId: -1},
		{header: "-3", status: http.StatusBadRequest, userId: -1},
	}
	for _, c := range cases {
		t.Run(strconv.Quote(c.header), func(t *testing.T) {
			seen = -1
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if c.header != "" {
				req.Header.Set(UserHeader, c.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			require.Equal(t, c.status, rec.Code)
			require.Equal(t, c.userId, seen)
		})
	}
}

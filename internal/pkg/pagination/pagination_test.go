package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFromContextDefaults(t *testing.T) {
	q := FromContext(queryContext(t, ""))
	if q.Page != DefaultPage || q.PageSize != DefaultSize {
		t.Errorf("got %+v, want page=%d pageSize=%d", q, DefaultPage, DefaultSize)
	}
}

func TestFromContextClampsValues(t *testing.T) {
	cases := []struct {
		raw      string
		page     int
		pageSize int
	}{
		{"page=3&pageSize=20", 3, 20},
		{"page=0&pageSize=0", DefaultPage, DefaultSize},
		{"page=-5&pageSize=-1", DefaultPage, DefaultSize},
		{"page=2&pageSize=9999", 2, MaxSize},
		{"page=abc&pageSize=xyz", DefaultPage, DefaultSize},
	}
	for _, tc := range cases {
		q := FromContext(queryContext(t, tc.raw))
		if q.Page != tc.page || q.PageSize != tc.pageSize {
			t.Errorf("%q: got %+v, want page=%d pageSize=%d", tc.raw, q, tc.page, tc.pageSize)
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	h := Envelope([]int{1, 2, 3}, 42, Query{Page: 2, PageSize: 3})
	if h["total"].(int64) != 42 {
		t.Errorf("total = %v, want 42", h["total"])
	}
	if h["page"].(int) != 2 || h["pageSize"].(int) != 3 {
		t.Errorf("page/pageSize = %v/%v, want 2/3", h["page"], h["pageSize"])
	}
	if _, ok := h["list"]; !ok {
		t.Error("missing list key")
	}
}

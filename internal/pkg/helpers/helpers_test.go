package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	id, ok := ParseID(" 12 ")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"", "0", "-3", "abc", "1.5"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}

	opt, ok := ParseOptionalID("")
	assert.True(t, ok)
	assert.Nil(t, opt)

	_, ok = ParseOptionalID("x")
	assert.False(t, ok)
}

func TestParseListOptions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/courses?search=+algo+&limit=10000&offset=5", nil)

	opts := ParseListOptions(c)
	assert.Equal(t, "algo", opts.Search)
	assert.Equal(t, uint64(MaxListLimit), opts.Limit)
	assert.Equal(t, uint64(5), opts.Offset)

	c.Request = httptest.NewRequest(http.MethodGet, "/api/courses?limit=abc", nil)
	assert.Equal(t, ListOptions{}, ParseListOptions(c))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDuration("3s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("-1s", time.Minute))
}

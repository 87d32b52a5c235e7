package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"Yatube/internal/api/dto"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, h gin.HandlerFunc) dto.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	resp := run(t, func(c *gin.Context) { Success(c, map[string]int{"n": 1}) })
	assert.Equal(t, Ok, resp.Code)
	assert.Equal(t, "success", resp.Message)
}

func TestError_WrappedSentinel(t *testing.T) {
	resp := run(t, func(c *gin.Context) {
		Error(c, fmt.Errorf("edit post 3: %w", service.ErrForbidden))
	})
	assert.Equal(t, Forbidden, resp.Code)
	assert.Equal(t, service.ErrForbidden.Error(), resp.Message)
}

func TestError_Unknown(t *testing.T) {
	resp := run(t, func(c *gin.Context) { Error(c, errors.New("dial tcp: refused")) })
	assert.Equal(t, InternalServerError, resp.Code)
	assert.Equal(t, service.UnExpectedError.Error(), resp.Message)
}

func TestError_JSONType(t *testing.T) {
	resp := run(t, func(c *gin.Context) {
		var v struct {
			N int `json:"n"`
		}
		Error(c, json.Unmarshal([]byte(`{"n":"x"}`), &v))
	})
	assert.Equal(t, BadRequest, resp.Code)
}

package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/NorthstarWang/project-management-platform-sub001/internal/shared/errors"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestHandleErrorWithDefault(t *testing.T) {
	sentinel := errors.New("widget not found")
	mappings := []ErrorMapping{
		{Err: sentinel, Status: http.StatusNotFound},
	}

	t.Run("mapped sentinel uses its status", func(t *testing.T) {
		c, w := testContext()
		HandleErrorWithDefault(c, sentinel, mappings)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "widget not found")
	})

	t.Run("wrapped sentinel still matches", func(t *testing.T) {
		c, w := testContext()
		HandleErrorWithDefault(c, errors.Join(sentinel, errors.New("context")), mappings)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("app error resolves through the taxonomy", func(t *testing.T) {
		c, w := testContext()
		HandleErrorWithDefault(c, apperrors.Conflict("name already taken"), mappings)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})

	t.Run("unknown errors fall back to 500", func(t *testing.T) {
		c, w := testContext()
		HandleErrorWithDefault(c, errors.New("boom"), mappings)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		// Internal details are not leaked.
		assert.NotContains(t, w.Body.String(), "boom")
	})
}

func TestGetStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", apperrors.NotFound("team"), http.StatusNotFound},
		{"forbidden", apperrors.Forbidden(""), http.StatusForbidden},
		{"bad request", apperrors.BadRequest("invalid action"), http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, apperrors.GetStatusCode(tt.err))
		})
	}
}

package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/test", nil)
	handler(c)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestSuccess(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, map[string]string{"name": "SMA 1"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	if resp.Message != "ok" {
		t.Errorf("expected message 'ok', got %q", resp.Message)
	}
}

func TestCreated(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, map[string]int{"id": 1})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
}

func TestError_WithAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"bad request", NewBadRequest("date is malformed"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("invalid username or password"), http.StatusUnauthorized},
		{"forbidden", NewForbidden("school admin access required"), http.StatusForbidden},
		{"not found", NewNotFound("classroom not found"), http.StatusNotFound},
		{"conflict", NewConflict("classroom name already exists"), http.StatusConflict},
		{"server error", NewServerError("failed to save violation"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(func(c *gin.Context) {
				Error(c, tt.err)
			})

			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			resp := parseResponse(t, w)
			if resp.Code != tt.err.Code {
				t.Errorf("expected code %d, got %d", tt.err.Code, resp.Code)
			}
			if resp.Message != tt.err.Message {
				t.Errorf("expected message %q, got %q", tt.err.Message, resp.Message)
			}
		})
	}
}

func TestError_WithGenericError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("something went wrong"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestError_WithWrappedAppError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		wrapped := &wrapError{inner: NewNotFound("student not found")}
		Error(c, wrapped)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("errors.As should unwrap to AppError, got status %d", w.Code)
	}
}

type wrapError struct {
	inner error
}

func (w *wrapError) Error() string { return w.inner.Error() }
func (w *wrapError) Unwrap() error { return w.inner }

func TestAppError_ErrorInterface(t *testing.T) {
	err := NewNotFound("student not found")
	if err.Error() != "student not found" {
		t.Errorf("expected 'student not found', got %q", err.Error())
	}
}

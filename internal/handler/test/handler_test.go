package test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"blogapi/internal/config"
	handlers "blogapi/internal/handler"
)

func newTestHandlers() (*handlers.Handlers, *MockAuthService, *MockUserService, *MockPostService, *MockCommentService, *MockContentService) {
	auth := new(MockAuthService)
	users := new(MockUserService)
	posts := new(MockPostService)
	comments := new(MockCommentService)
	contents := new(MockContentService)

	h := &handlers.Handlers{
		AuthService:    auth,
		UserService:    users,
		PostService:    posts,
		CommentService: comments,
		ContentService: contents,
		Cfg: &config.Config{
			JWTSecretKey:  "test-secret",
			MaxUploadSize: 10 * 1024 * 1024,
		},
		Validate: validator.New(),
	}

	return h, auth, users, posts, comments, contents
}

func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}

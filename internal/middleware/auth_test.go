package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"thimar/internal/models"
	"thimar/internal/session"
	"thimar/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupGuardedRouter(sess *session.Session, admin bool) *gin.Engine {
	r := gin.New()
	group := r.Group("/", SessionRequired(sess))
	if admin {
		group.Use(AdminRequired())
	}
	group.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(userIDKey)})
	})
	return r
}

func doGuardedRequest(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionRequired(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		admin      bool
		wantStatus int
	}{
		{
			name:       "signed_out",
			user:       nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "signed_in",
			user:       &models.User{ID: 9, Name: "سارة", Type: models.UserTypeInvestor},
			wantStatus: http.StatusOK,
		},
		{
			name:       "investor_on_admin_route",
			user:       &models.User{ID: 9, Name: "سارة", Type: models.UserTypeInvestor},
			admin:      true,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin_on_admin_route",
			user:       &models.User{ID: 1, Name: "مشرف", Type: models.UserTypeAdmin},
			admin:      true,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sess *session.Session
			if tt.user != nil {
				sess = testutil.LoggedInSession(t, tt.user)
			} else {
				sess = testutil.NewTestSession(t)
			}

			rec := doGuardedRequest(setupGuardedRouter(sess, tt.admin))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var body map[string]any
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to parse response body: %v", err)
				}
				if uint(body["user_id"].(float64)) != tt.user.ID {
					t.Errorf("expected user id %d in context, got %v", tt.user.ID, body["user_id"])
				}
			}
		})
	}
}

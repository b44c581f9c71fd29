package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withIdentity fakes what Authenticate sets, so the gates can be tested
// without tokens or a database.
func withIdentity(caller services.Caller, status models.UserStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextCaller, caller)
		c.Set(contextUserStatus, status)
		c.Next()
	}
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func TestRequireActive(t *testing.T) {
	tests := []struct {
		name      string
		status    models.UserStatus
		wantCode  int
		wantError string
	}{
		{"active passes", models.StatusActive, http.StatusOK, ""},
		{"pending blocked", models.StatusPending, http.StatusForbidden, "inactive"},
		{"inactive blocked", models.StatusInactive, http.StatusForbidden, "inactive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			caller := services.Caller{ID: 1, Roles: models.NewRoleSet(models.RoleUser)}
			router.GET("/x", withIdentity(caller, tt.status), RequireActive(), okHandler)

			w := performRequest(router, http.MethodGet, "/x")
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantError != "" {
				var body ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("decoding body: %v", err)
				}
				if body.Error != tt.wantError {
					t.Errorf("error kind = %q, want %q", body.Error, tt.wantError)
				}
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name     string
		policy   RolePolicy
		required []models.Role
		held     []models.Role
		wantCode int
	}{
		{"any-of match", AnyOf, []models.Role{models.RoleAdmin, models.RoleTeacher}, []models.Role{models.RoleTeacher}, http.StatusOK},
		{"any-of miss", AnyOf, []models.Role{models.RoleAdmin}, []models.Role{models.RoleUser}, http.StatusForbidden},
		{"all-of match", AllOf, []models.Role{models.RoleInstructor, models.RoleTeacher}, []models.Role{models.RoleInstructor, models.RoleTeacher}, http.StatusOK},
		{"all-of partial", AllOf, []models.Role{models.RoleInstructor, models.RoleTeacher}, []models.Role{models.RoleInstructor}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			caller := services.Caller{ID: 1, Roles: models.NewRoleSet(tt.held...)}
			router.GET("/x",
				withIdentity(caller, models.StatusActive),
				RequireRoles(tt.policy, tt.required...),
				okHandler,
			)

			w := performRequest(router, http.MethodGet, "/x")
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestRequireRolesPanicsOnEmptySet(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("an empty role gate should panic at setup")
		}
	}()
	RequireRoles(AnyOf)
}

func TestMissingIdentityIsUnauthorized(t *testing.T) {
	router := gin.New()
	router.GET("/x", RequireActive(), okHandler)

	w := performRequest(router, http.MethodGet, "/x")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/x", okHandler)

	t.Run("generated", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/x")
		if w.Header().Get("X-Request-ID") == "" {
			t.Error("request id should be generated")
		}
	})

	t.Run("propagated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-ID", "fixed-id")
		router.ServeHTTP(w, req)
		if got := w.Header().Get("X-Request-ID"); got != "fixed-id" {
			t.Errorf("request id = %q, want fixed-id", got)
		}
	})
}

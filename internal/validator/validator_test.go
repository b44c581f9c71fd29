package validator

import (
	"errors"
	"testing"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/models"
)

func TestValidateRegisterRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       models.RegisterRequest
		wantField string
	}{
		{
			name: "valid",
			req: models.RegisterRequest{
				Name: "Ada", Email: "ada@example.com", Password: "correct horse",
				Roles: []models.Role{models.RoleUser},
			},
		},
		{
			name: "bad email",
			req: models.RegisterRequest{
				Name: "Ada", Email: "nope", Password: "correct horse",
				Roles: []models.Role{models.RoleUser},
			},
			wantField: "email",
		},
		{
			name: "unknown role",
			req: models.RegisterRequest{
				Name: "Ada", Email: "ada@example.com", Password: "correct horse",
				Roles: []models.Role{"superuser"},
			},
			wantField: "roles[0]",
		},
		{
			name: "empty roles",
			req: models.RegisterRequest{
				Name: "Ada", Email: "ada@example.com", Password: "correct horse",
			},
			wantField: "roles",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			var appErr *apperrors.Error
			if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := appErr.Fields[tt.wantField]; !ok {
				t.Errorf("expected a message for field %q, got %v", tt.wantField, appErr.Fields)
			}
		})
	}
}

func TestValidateStatusRule(t *testing.T) {
	v := New()

	bad := models.UserStatus("frozen")
	err := v.Validate(&models.UserListParams{Status: &bad})
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	good := models.StatusActive
	if err := v.Validate(&models.UserListParams{Status: &good}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

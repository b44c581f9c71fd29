package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/models"
)

func TestAreaDuplicateNameConflict(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	seedArea(t, repo, "Welding")

	err := repo.Area().Create(ctx, &models.ProfessionalArea{Name: "Welding", Description: "again"})
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(err.Error(), `The professional area "Welding" already exists`) {
		t.Errorf("conflict message should name the area, got %q", err.Error())
	}

	// The failed insert must not leave a row behind.
	areas, listErr := repo.Area().List(ctx, nil, 10)
	if listErr != nil {
		t.Fatalf("list: %v", listErr)
	}
	if len(areas) != 1 {
		t.Errorf("expected 1 area after failed duplicate, got %d", len(areas))
	}
}

func TestAreaUpdateDuplicateNameConflict(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	seedArea(t, repo, "Welding")
	area := seedArea(t, repo, "Plumbing")

	area.Name = "Welding"
	err := repo.Area().Update(ctx, area)
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAreaDeleteCascadesAssignments(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	instructor := seedUser(t, repo, "Ada", "ada@example.com", models.RoleInstructor)
	area := seedArea(t, repo, "Welding")
	if _, err := repo.Assignment().Ensure(ctx, instructor.ID, area.ID); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	if err := repo.Area().Delete(ctx, area.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.Area().GetByID(ctx, area.ID); !apperrors.IsNotFound(err) {
		t.Errorf("area should be gone, got %v", err)
	}
	areas, err := repo.Assignment().ListAreasForInstructor(ctx, instructor.ID)
	if err != nil {
		t.Fatalf("listing areas: %v", err)
	}
	if len(areas) != 0 {
		t.Errorf("assignments should be gone with the area, found %d", len(areas))
	}
}

func TestAreaDeleteMissing(t *testing.T) {
	repo := testRepository(t)

	err := repo.Area().Delete(context.Background(), 4242)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAreaListPagesByName(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	for _, name := range []string{"Welding", "Carpentry", "Plumbing"} {
		seedArea(t, repo, name)
	}

	areas, err := repo.Area().List(ctx, nil, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := make([]string, 0, len(areas))
	for _, a := range areas {
		got = append(got, a.Name)
	}
	want := []string{"Carpentry", "Plumbing", "Welding"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}

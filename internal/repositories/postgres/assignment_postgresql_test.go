package postgres

import (
	"context"
	"testing"

	"github.com/craftportal/learning-service/internal/models"
)

func TestAssignmentEnsureIsIdempotent(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	instructor := seedUser(t, repo, "Ada", "ada@example.com", models.RoleInstructor)
	area := seedArea(t, repo, "Welding")

	created, err := repo.Assignment().Ensure(ctx, instructor.ID, area.ID)
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if !created {
		t.Error("first ensure should report a created row")
	}

	created, err = repo.Assignment().Ensure(ctx, instructor.ID, area.ID)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if created {
		t.Error("second ensure should be a no-op")
	}

	areas, err := repo.Assignment().ListAreasForInstructor(ctx, instructor.ID)
	if err != nil {
		t.Fatalf("listing areas: %v", err)
	}
	if len(areas) != 1 {
		t.Errorf("expected exactly one assignment, got %d", len(areas))
	}
}

func TestAssignmentRemoveMissingPairSucceeds(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	instructor := seedUser(t, repo, "Ada", "ada@example.com", models.RoleInstructor)
	area := seedArea(t, repo, "Welding")

	if err := repo.Assignment().Remove(ctx, instructor.ID, area.ID); err != nil {
		t.Fatalf("removing a missing pair should succeed, got %v", err)
	}

	if _, err := repo.Assignment().Ensure(ctx, instructor.ID, area.ID); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := repo.Assignment().Remove(ctx, instructor.ID, area.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	exists, err := repo.Assignment().Exists(ctx, instructor.ID, area.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("pair should be gone after remove")
	}
}

func TestAssignmentExists(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	instructor := seedUser(t, repo, "Ada", "ada@example.com", models.RoleInstructor)
	other := seedUser(t, repo, "Bob", "bob@example.com", models.RoleInstructor)
	area := seedArea(t, repo, "Welding")

	if _, err := repo.Assignment().Ensure(ctx, instructor.ID, area.ID); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	tests := []struct {
		name   string
		userID uint
		want   bool
	}{
		{"assigned instructor", instructor.ID, true},
		{"unassigned instructor", other.ID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Assignment().Exists(ctx, tt.userID, area.ID)
			if err != nil {
				t.Fatalf("exists: %v", err)
			}
			if got != tt.want {
				t.Errorf("exists = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssignmentProjections(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	zoe := seedUser(t, repo, "Zoe", "zoe@example.com", models.RoleInstructor)
	ada := seedUser(t, repo, "Ada", "ada@example.com", models.RoleInstructor)
	area := seedArea(t, repo, "Welding")

	for _, u := range []uint{zoe.ID, ada.ID} {
		if _, err := repo.Assignment().Ensure(ctx, u, area.ID); err != nil {
			t.Fatalf("ensure: %v", err)
		}
	}

	refs, err := repo.Assignment().ListInstructorsForArea(ctx, area.ID)
	if err != nil {
		t.Fatalf("listing instructors: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 instructors, got %d", len(refs))
	}
	// Ordered by name.
	if refs[0].Name != "Ada" || refs[1].Name != "Zoe" {
		t.Errorf("unexpected order: %s, %s", refs[0].Name, refs[1].Name)
	}
	if refs[0].Email != "ada@example.com" {
		t.Errorf("projection should carry email, got %q", refs[0].Email)
	}
}

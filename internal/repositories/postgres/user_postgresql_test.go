package postgres

import (
	"context"
	"testing"

	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/pagination"
	"github.com/craftportal/learning-service/internal/repositories"
)

// walkInstructors pages through the instructor listing the way the service
// does: fetch limit+1, keep limit, continue from the last returned row.
func walkInstructors(t *testing.T, repo repositories.Repository, query string, limit int) [][]models.UserRef {
	t.Helper()
	ctx := context.Background()
	codec := pagination.NewCodec([]byte("test-secret"))

	var pages [][]models.UserRef
	var cursor *pagination.Cursor
	for {
		rows, err := repo.User().ListInstructors(ctx, query, cursor, limit)
		if err != nil {
			t.Fatalf("listing instructors: %v", err)
		}
		items, next, err := pagination.BuildPage(rows, limit, codec, func(ref models.UserRef) []any {
			return []any{ref.Name, int64(ref.ID)}
		})
		if err != nil {
			t.Fatalf("building page: %v", err)
		}
		pages = append(pages, items)
		if next == nil {
			return pages
		}
		cursor, err = codec.Decode(*next)
		if err != nil {
			t.Fatalf("decoding cursor: %v", err)
		}
	}
}

func TestInstructorPagingWalk(t *testing.T) {
	repo := testRepository(t)
	seedInstructors(t, repo, 5)

	pages := walkInstructors(t, repo, "", 2)

	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	sizes := []int{2, 2, 1}
	var all []models.UserRef
	for i, page := range pages {
		if len(page) != sizes[i] {
			t.Errorf("page %d: expected %d items, got %d", i, sizes[i], len(page))
		}
		all = append(all, page...)
	}

	// Concatenated pages must equal the full listing, no gaps or repeats.
	seen := make(map[uint]bool)
	for _, ref := range all {
		if seen[ref.ID] {
			t.Errorf("instructor %d returned twice", ref.ID)
		}
		seen[ref.ID] = true
	}
	if len(all) != 5 {
		t.Errorf("expected 5 instructors total, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Errorf("names out of order: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
}

func TestInstructorPagingStableUnderInsertBehindCursor(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()
	seedUser(t, repo, "Bob", "bob@example.com", models.RoleInstructor)
	seedUser(t, repo, "Dora", "dora@example.com", models.RoleInstructor)
	seedUser(t, repo, "Fred", "fred@example.com", models.RoleInstructor)

	rows, err := repo.User().ListInstructors(ctx, "", nil, 2)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	first := rows[:2]

	// A row sorting before the cursor position must not shift the next page.
	seedUser(t, repo, "Alice", "alice@example.com", models.RoleInstructor)

	after := &pagination.Cursor{Keys: []any{first[1].Name, int64(first[1].ID)}}
	rows, err = repo.User().ListInstructors(ctx, "", after, 2)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Fred" {
		t.Fatalf("second page should hold exactly Fred, got %v", rows)
	}
}

func TestInstructorPrefixFilter(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()
	seedUser(t, repo, "Anna", "anna@example.com", models.RoleInstructor)
	seedUser(t, repo, "Annette", "annette@example.com", models.RoleInstructor)
	seedUser(t, repo, "Bernard", "bernard@shop-ann.example.com", models.RoleInstructor)
	seedUser(t, repo, "Joanna", "joanna@example.com", models.RoleInstructor)

	rows, err := repo.User().ListInstructors(ctx, "Ann", nil, 10)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}

	// Prefix match only: "Joanna" contains but does not start with "Ann",
	// and Bernard's email contains it mid-string.
	if len(rows) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(rows), rows)
	}
	if rows[0].Name != "Anna" || rows[1].Name != "Annette" {
		t.Errorf("unexpected matches: %v", rows)
	}
}

func TestUserListFilters(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	active := seedUser(t, repo, "Ada", "ada@example.com", models.RoleInstructor)
	pending := &models.User{
		Name: "Pat", Email: "pat@example.com", PasswordHash: "x",
		Status: models.StatusPending,
		Roles:  []models.UserRole{{Role: models.RoleUser}},
	}
	if err := repo.User().Create(ctx, pending); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	role := models.RoleInstructor
	status := models.StatusPending

	tests := []struct {
		name   string
		filter repositories.ListUsersFilter
		want   []uint
	}{
		{"no filter", repositories.ListUsersFilter{}, []uint{active.ID, pending.ID}},
		{"by role", repositories.ListUsersFilter{Role: &role}, []uint{active.ID}},
		{"by status", repositories.ListUsersFilter{Status: &status}, []uint{pending.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.User().List(ctx, tt.filter, nil, 10)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(users) != len(tt.want) {
				t.Fatalf("expected %d users, got %d", len(tt.want), len(users))
			}
			got := make(map[uint]bool)
			for _, u := range users {
				got[u.ID] = true
			}
			for _, id := range tt.want {
				if !got[id] {
					t.Errorf("user %d missing from listing", id)
				}
			}
		})
	}
}

func TestReplaceRoles(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	user := seedUser(t, repo, "Ada", "ada@example.com", models.RoleUser)

	if err := repo.User().ReplaceRoles(ctx, user.ID, []models.Role{models.RoleInstructor, models.RoleTeacher}); err != nil {
		t.Fatalf("replacing roles: %v", err)
	}

	got, err := repo.User().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	set := got.RoleSet()
	if !set.HasAll(models.RoleInstructor, models.RoleTeacher) || set.Has(models.RoleUser) {
		t.Errorf("unexpected role set: %v", set.Slice())
	}

	if err := repo.User().ReplaceRoles(ctx, user.ID, nil); err == nil {
		t.Error("empty role set should be rejected")
	}
}

func TestUserDuplicateEmailConflict(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	seedUser(t, repo, "Ada", "ada@example.com", models.RoleUser)

	err := repo.User().Create(ctx, &models.User{
		Name: "Other", Email: "ada@example.com", PasswordHash: "x",
		Status: models.StatusPending,
	})
	if err == nil {
		t.Fatal("expected duplicate email conflict")
	}
}

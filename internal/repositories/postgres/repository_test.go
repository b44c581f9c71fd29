package postgres

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/craftportal/learning-service/internal/cache"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/repositories"
)

// testDB opens an isolated in-memory database with the full schema.
// TranslateError matches the production connection so constraint failures
// classify the same way.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func testRepository(t *testing.T) repositories.Repository {
	t.Helper()
	return NewRepository(testDB(t), cache.NewHelper(nil, "test:"))
}

func seedUser(t *testing.T, repo repositories.Repository, name, email string, roles ...models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Status:       models.StatusActive,
	}
	for _, role := range roles {
		user.Roles = append(user.Roles, models.UserRole{Role: role})
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user %s: %v", name, err)
	}
	return user
}

func seedArea(t *testing.T, repo repositories.Repository, name string) *models.ProfessionalArea {
	t.Helper()
	area := &models.ProfessionalArea{Name: name, Description: name + " description"}
	if err := repo.Area().Create(context.Background(), area); err != nil {
		t.Fatalf("seeding area %s: %v", name, err)
	}
	return area
}

func seedTopic(t *testing.T, repo repositories.Repository, userID, areaID uint, title string) *models.Topic {
	t.Helper()
	topic := &models.Topic{Title: title, UserID: userID, ProfessionalAreaID: areaID}
	if err := repo.Topic().Create(context.Background(), topic); err != nil {
		t.Fatalf("seeding topic %s: %v", title, err)
	}
	return topic
}

func seedPost(t *testing.T, repo repositories.Repository, userID, topicID uint, content string) *models.ForumPost {
	t.Helper()
	post := &models.ForumPost{Content: content, UserID: userID, TopicID: topicID}
	if err := repo.Post().Create(context.Background(), post); err != nil {
		t.Fatalf("seeding post: %v", err)
	}
	return post
}

func seedInstructors(t *testing.T, repo repositories.Repository, count int) []*models.User {
	t.Helper()
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Instructor %02d", i+1)
		email := fmt.Sprintf("instructor%02d@example.com", i+1)
		users = append(users, seedUser(t, repo, name, email, models.RoleInstructor))
	}
	return users
}

package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/sunleaf/sunleaf-api/internal/database"
	"github.com/sunleaf/sunleaf-api/internal/models"
	"github.com/sunleaf/sunleaf-api/internal/store"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	createTestUser(t, db, "taken@example.com")

	_, err := store.CreateUser(ctx, db, "taken@example.com", "hash", "Someone Else", models.RoleUser)
	if !errors.Is(err, database.ErrDuplicateEmail) {
		t.Errorf("Expected duplicate email error, got: %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	created := createTestUser(t, db, "findme@example.com")

	user, err := store.GetUserByEmail(ctx, db, "findme@example.com")
	if err != nil {
		t.Fatalf("Get user by email: %v", err)
	}
	if user.ID != created.ID || user.Role != models.RoleUser {
		t.Errorf("Unexpected user: %+v", user)
	}

	if _, err := store.GetUserByEmail(ctx, db, "nobody@example.com"); !errors.Is(err, database.ErrUserNotFound) {
		t.Errorf("Expected user not found, got: %v", err)
	}
}

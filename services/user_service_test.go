package services

import (
	"errors"
	"testing"

	"rustico-backend/apperr"
	"rustico-backend/models"
)

func createUser(t *testing.T, svc *UserService, username string, role models.UserRole) *models.User {
	t.Helper()
	user, err := svc.Create(CreateUserInput{
		Username: username,
		Password: "secret123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func TestCreateUserDefaultsToViewer(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Create(CreateUserInput{Username: "lena", Password: "secret123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != models.UserRoleViewer {
		t.Errorf("role = %s, want viewer", user.Role)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)

	createUser(t, svc, "lena", models.UserRoleViewer)
	_, err := svc.Create(CreateUserInput{Username: "lena", Password: "other456"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestLastAdminCannotBeDeleted(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)

	admin := createUser(t, svc, "admin", models.UserRoleAdmin)

	err := svc.Remove(admin.ID)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("deleting the only admin: err = %v, want ErrValidation", err)
	}

	second := createUser(t, svc, "admin2", models.UserRoleAdmin)
	if err := svc.Remove(admin.ID); err != nil {
		t.Fatalf("deleting one of two admins should work: %v", err)
	}

	// back to one admin, guard applies again
	err = svc.Remove(second.ID)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestViewerDeleteAllowed(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)

	createUser(t, svc, "admin", models.UserRoleAdmin)
	viewer := createUser(t, svc, "viewer", models.UserRoleViewer)

	if err := svc.Remove(viewer.ID); err != nil {
		t.Fatalf("remove viewer: %v", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)

	created := createUser(t, svc, "lena", models.UserRoleViewer)

	user, err := svc.ValidateCredentials("lena", "secret123")
	if err != nil {
		t.Fatalf("valid login: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("wrong user returned")
	}
	if user.LastLogin == nil {
		t.Error("last login not stamped")
	}

	if _, err := svc.ValidateCredentials("lena", "wrong"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("wrong password: err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.ValidateCredentials("nobody", "secret123"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("unknown user: err = %v, want ErrUnauthorized", err)
	}

	off := false
	if _, err := svc.Update(created.ID, UpdateUserInput{IsActive: &off}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.ValidateCredentials("lena", "secret123"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("inactive user: err = %v, want ErrUnauthorized", err)
	}
}

func TestUpdateUserPasswordRehash(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)

	user := createUser(t, svc, "lena", models.UserRoleViewer)
	newPass := "changed789"
	if _, err := svc.Update(user.ID, UpdateUserInput{NewPassword: &newPass}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := svc.ValidateCredentials("lena", "changed789"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if _, err := svc.ValidateCredentials("lena", "secret123"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("old password still accepted")
	}
}

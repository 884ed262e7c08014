package tests

import (
	"context"
	"errors"
	"strings"
	"testing"

	"albaniarides/internal/domain"
	"albaniarides/internal/service"
)

func newUserFixture() (*service.UserService, *MockUserRepository) {
	userRepo := NewMockUserRepository()
	return service.NewUserService(userRepo), userRepo
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }
func intptr(i int) *int       { return &i }

func TestUpdateProfile_AppliesPartialUpdate(t *testing.T) {
	svc, userRepo := newUserFixture()
	userRepo.AddUser(&domain.User{ID: "u1", Name: "Arben Hoxha", City: "Tirana"})

	user, err := svc.UpdateProfile(context.Background(), "u1", service.ProfileUpdate{
		Bio: strptr("Commuting weekly between Tirana and Durrës."),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Bio == "" {
		t.Error("bio not applied")
	}
	// Untouched fields survive.
	if user.Name != "Arben Hoxha" || user.City != "Tirana" {
		t.Errorf("untouched fields changed: %q %q", user.Name, user.City)
	}
}

func TestUpdateProfile_ValidatesFields(t *testing.T) {
	svc, userRepo := newUserFixture()
	userRepo.AddUser(&domain.User{ID: "u1", Name: "Arben Hoxha"})
	ctx := context.Background()

	if _, err := svc.UpdateProfile(ctx, "u1", service.ProfileUpdate{Name: strptr("A")}); !errors.Is(err, service.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, "u1", service.ProfileUpdate{Bio: strptr(strings.Repeat("x", 501))}); !errors.Is(err, service.ErrBioTooLong) {
		t.Errorf("expected ErrBioTooLong, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, "u1", service.ProfileUpdate{DrivingYears: intptr(-1)}); !errors.Is(err, service.ErrInvalidDrivingYears) {
		t.Errorf("expected ErrInvalidDrivingYears, got %v", err)
	}
}

func TestUpdateProfile_BecomingDriverRequiresCar(t *testing.T) {
	svc, userRepo := newUserFixture()
	userRepo.AddUser(&domain.User{ID: "u1", Name: "Arben Hoxha"})
	ctx := context.Background()

	if _, err := svc.UpdateProfile(ctx, "u1", service.ProfileUpdate{IsDriver: boolptr(true)}); !errors.Is(err, service.ErrCarInfoRequired) {
		t.Errorf("expected ErrCarInfoRequired, got %v", err)
	}

	user, err := svc.UpdateProfile(ctx, "u1", service.ProfileUpdate{
		IsDriver: boolptr(true),
		CarModel: strptr("Fiat Tipo"),
		CarColor: strptr("white"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !user.IsDriver {
		t.Error("driver flag not applied")
	}
}

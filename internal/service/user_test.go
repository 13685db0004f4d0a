package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dlwnsgus777/my-mandalateu/internal/model"
)

func TestUserService_GetProfile_Success(t *testing.T) {
	ctx := context.Background()

	userRepo := newMockUserRepo()
	hash := "secret-hash"
	user := &model.User{Email: "test@example.com", Nickname: "tester", Hash: &hash}
	_ = userRepo.Create(ctx, user)

	svc := NewUserService(userRepo)

	info, err := svc.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if info.Email != "test@example.com" {
		t.Errorf("expected email test@example.com, got %s", info.Email)
	}
	if info.Nickname != "tester" {
		t.Errorf("expected nickname tester, got %s", info.Nickname)
	}
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	ctx := context.Background()

	svc := NewUserService(newMockUserRepo())

	_, err := svc.GetProfile(ctx, "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateNickname_Success(t *testing.T) {
	ctx := context.Background()

	userRepo := newMockUserRepo()
	user := &model.User{Email: "test@example.com", Nickname: "old"}
	_ = userRepo.Create(ctx, user)

	svc := NewUserService(userRepo)

	info, err := svc.UpdateNickname(ctx, user.ID, model.UpdateNicknameRequest{Nickname: "  fresh  "})
	if err != nil {
		t.Fatalf("UpdateNickname failed: %v", err)
	}
	if info.Nickname != "fresh" {
		t.Errorf("expected trimmed nickname fresh, got %q", info.Nickname)
	}

	stored, _ := userRepo.GetByID(ctx, user.ID)
	if stored.Nickname != "fresh" {
		t.Errorf("expected nickname persisted, got %q", stored.Nickname)
	}
}

func TestUserService_UpdateNickname_NotFound(t *testing.T) {
	ctx := context.Background()

	svc := NewUserService(newMockUserRepo())

	_, err := svc.UpdateNickname(ctx, "nonexistent", model.UpdateNicknameRequest{Nickname: "fresh"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateNickname_RepoError(t *testing.T) {
	ctx := context.Background()

	userRepo := newMockUserRepo()
	user := &model.User{Email: "test@example.com", Nickname: "old"}
	_ = userRepo.Create(ctx, user)
	userRepo.nicknameErr = errors.New("database error")

	svc := NewUserService(userRepo)

	_, err := svc.UpdateNickname(ctx, user.ID, model.UpdateNicknameRequest{Nickname: "fresh"})
	if err == nil {
		t.Fatal("expected error")
	}
}

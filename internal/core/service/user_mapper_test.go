package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/squartrbnb/user-service/internal/core/domain"
	"github.com/squartrbnb/user-service/internal/core/ports"
)

func TestToUserView_NilSafe(t *testing.T) {
	if toUserView(nil) != nil {
		t.Fatal("expected nil view for nil user")
	}
	if toUserEntity(nil) != nil {
		t.Fatal("expected nil entity for nil input")
	}

	v := toUserView(&domain.User{ID: 3, Username: "x"})
	if v.Role != nil || v.PhotoPath != nil {
		t.Errorf("expected absent role and photo, got %+v", v)
	}
}

func TestToUserView_OmitsSecretsAndCopiesPointers(t *testing.T) {
	photo := "uploads/a.png"
	token := "remember-me"
	u := &domain.User{
		ID:            5,
		Username:      "alice",
		Email:         "alice@x.com",
		BirthDate:     time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		PhotoPath:     &photo,
		PasswordHash:  "$2a$10$abc",
		RememberToken: &token,
		Role:          &domain.Role{ID: 1, Name: domain.DefaultRoleName},
	}

	v := toUserView(u)
	if v.ID != 5 || v.Username != "alice" || v.Role.Name != domain.DefaultRoleName {
		t.Fatalf("unexpected view: %+v", v)
	}

	*u.PhotoPath = "changed"
	if *v.PhotoPath != "uploads/a.png" {
		t.Errorf("view must not alias the entity's photo path")
	}
}

func TestToUserEntity(t *testing.T) {
	photo := "p.jpg"
	in := &ports.CreateUserInput{
		Username:  "bob",
		LastName:  "Builder",
		FirstName: "Bob",
		Email:     "bob@x.com",
		PhotoPath: &photo,
		Password:  "plain",
		RoleID:    ports.Some(int64(2)),
	}

	u := toUserEntity(in)
	if u.ID != 0 {
		t.Errorf("new entity must not carry an id, got %d", u.ID)
	}
	if u.Role != nil {
		t.Errorf("role is resolved by the service, got %+v", u.Role)
	}
	if u.PasswordHash != "plain" {
		t.Errorf("expected plaintext placeholder, got %q", u.PasswordHash)
	}
	if u.PhotoPath == in.PhotoPath {
		t.Errorf("photo path must be copied, not aliased")
	}
}

func TestApplyUserUpdate_SkipsAbsentFields(t *testing.T) {
	u := &domain.User{
		Username:     "alice",
		LastName:     "Liddell",
		FirstName:    "Alice",
		Email:        "alice@x.com",
		PasswordHash: "hash",
		Role:         &domain.Role{ID: 1, Name: domain.DefaultRoleName},
	}

	applyUserUpdate(ports.UpdateUserInput{
		LastName: ports.Some("Kingsleigh"),
		Password: ports.Some("ignored"),
		RoleID:   ports.Some(int64(9)),
	}, u)

	if u.LastName != "Kingsleigh" {
		t.Errorf("expected last name updated, got %q", u.LastName)
	}
	if u.Username != "alice" || u.FirstName != "Alice" || u.Email != "alice@x.com" {
		t.Errorf("absent fields changed: %+v", u)
	}
	if u.PasswordHash != "hash" || u.Role.ID != 1 {
		t.Errorf("mapper must not touch password or role: %+v", u)
	}

	// nil entity is a no-op
	applyUserUpdate(ports.UpdateUserInput{LastName: ports.Some("x")}, nil)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("Password123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Password123!" {
		t.Fatal("hash must differ from plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("Password123!")); err != nil {
		t.Errorf("expected hash to match its plaintext: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")) == nil {
		t.Error("expected mismatch for wrong password")
	}

	again, _ := h.Hash("Password123!")
	if again == hash {
		t.Error("expected salted hashes to differ")
	}
}

func TestBcryptHasher_MultibyteOverLimit(t *testing.T) {
	// 72 characters, 140 bytes
	pw := "Aa1!" + strings.Repeat("é", 68)

	_, err := NewBcryptHasher(4).Hash(pw)
	var invalid *domain.InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}

func TestNewBcryptHasher_OutOfRangeCost(t *testing.T) {
	if got := NewBcryptHasher(0).cost; got != 10 {
		t.Errorf("expected default cost 10, got %d", got)
	}
	if got := NewBcryptHasher(99).cost; got != 10 {
		t.Errorf("expected default cost 10, got %d", got)
	}
}

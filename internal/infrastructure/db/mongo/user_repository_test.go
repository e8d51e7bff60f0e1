package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/squartrbnb/user-service/internal/core/domain"
)

func dupException(index string) mongo.WriteException {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: fmt.Sprintf("E11000 duplicate key error collection: app.users index: %s dup key: { x: \"y\" }", index),
	}}}
}

func TestWriteError_DuplicateKey(t *testing.T) {
	tests := []struct {
		index string
		want  domain.ConflictField
	}{
		{indexUsersEmail, domain.ConflictEmail},
		{indexUsersUsername, domain.ConflictUsername},
		{"_id_", domain.ConflictGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.index, func(t *testing.T) {
			err := writeError("insert user", dupException(tt.index))

			var dup *domain.DuplicateKeyError
			if !errors.As(err, &dup) {
				t.Fatalf("expected DuplicateKeyError, got %v", err)
			}
			if dup.Field != tt.want {
				t.Errorf("expected %s, got %s", tt.want, dup.Field)
			}
			if !errors.Is(err, domain.ErrDuplicateKey) {
				t.Errorf("expected errors.Is ErrDuplicateKey")
			}
		})
	}
}

func TestWriteError_Other(t *testing.T) {
	err := writeError("insert user", errors.New("boom"))
	var dup *domain.DuplicateKeyError
	if errors.As(err, &dup) {
		t.Fatal("non duplicate error must not be a DuplicateKeyError")
	}
}

func TestStoreError(t *testing.T) {
	if err := storeError("find", mongo.ErrNoDocuments); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
	if err := storeError("find", context.DeadlineExceeded); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
	err := storeError("find", errors.New("bad query"))
	if errors.Is(err, domain.ErrRecordNotFound) || errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("unexpected sentinel in %v", err)
	}
}

func TestUserDocument_RoundTrip(t *testing.T) {
	photo := "uploads/a.jpg"
	u := &domain.User{
		ID:           3,
		Username:     "alice",
		LastName:     "Liddell",
		FirstName:    "Alice",
		Email:        "alice@x.com",
		BirthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		PhotoPath:    &photo,
		PasswordHash: "hash",
		Role:         &domain.Role{ID: 2, Name: "ADMIN"},
	}

	doc := toUserDocument(u)
	if doc.RoleID != 2 || doc.Roles != nil {
		t.Fatalf("unexpected document: %+v", doc)
	}

	doc.Roles = []roleDocument{{ID: 2, Name: "ADMIN"}}
	back := doc.toDomain()
	if back.ID != 3 || back.Email != "alice@x.com" || *back.PhotoPath != photo {
		t.Errorf("unexpected user: %+v", back)
	}
	if back.Role == nil || back.Role.Name != "ADMIN" {
		t.Errorf("expected joined role, got %+v", back.Role)
	}

	doc.Roles = nil
	if doc.toDomain().Role != nil {
		t.Errorf("missing role document must map to a nil role")
	}
}

func TestUserPipeline(t *testing.T) {
	list := userPipeline(bson.M{}, true)
	if len(list) != 3 || list[1][0].Key != "$sort" || list[2][0].Key != "$lookup" {
		t.Fatalf("unexpected list pipeline: %v", list)
	}

	one := userPipeline(bson.M{"email": "a@x.com"}, false)
	if len(one) != 3 || one[1][0].Key != "$limit" {
		t.Fatalf("unexpected single pipeline: %v", one)
	}
}

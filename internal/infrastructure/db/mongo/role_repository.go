package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/squartrbnb/user-service/internal/core/domain"
	"github.com/squartrbnb/user-service/internal/core/ports"
)

const collectionRoles = "roles"

type roleDocument struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

func (d roleDocument) toDomain() *domain.Role {
	return &domain.Role{ID: d.ID, Name: d.Name}
}

type RoleRepository struct {
	db      *mongo.Database
	col     *mongo.Collection
	timeout time.Duration
}

var _ ports.RoleRepository = (*RoleRepository)(nil)

func NewRoleRepository(db *mongo.Database, timeout time.Duration) *RoleRepository {
	return &RoleRepository{db: db, col: db.Collection(collectionRoles), timeout: timeout}
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	return r.findOne(ctx, "find role by id", bson.M{"_id": id})
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, "find role by name", bson.M{"name": name})
}

// EnsureIndexes creates the unique index on role names.
func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("uniq_roles_name").SetUnique(true),
	})
	return err
}

// EnsureRoles inserts every name that is not yet provisioned. A concurrent
// replica inserting the same name first is not an error.
func (r *RoleRepository) EnsureRoles(ctx context.Context, names []string) error {
	for _, name := range names {
		_, err := r.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !isNotFound(err) {
			return err
		}

		if err := r.insert(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (r *RoleRepository) insert(ctx context.Context, name string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionRoles)
	if err != nil {
		return err
	}
	if _, err := r.col.InsertOne(ctx, roleDocument{ID: id, Name: name}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return storeError("insert role", err)
	}
	return nil
}

func (r *RoleRepository) findOne(ctx context.Context, op string, filter bson.M) (*domain.Role, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc roleDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, storeError(op, err)
	}
	return doc.toDomain(), nil
}

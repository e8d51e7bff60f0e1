package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/squartrbnb/user-service/internal/core/domain"
	"github.com/squartrbnb/user-service/internal/core/ports"
)

const (
	collectionUsers = "users"

	indexUsersEmail    = "uniq_users_email"
	indexUsersUsername = "uniq_users_username"
)

type userDocument struct {
	ID            int64     `bson:"_id"`
	Username      string    `bson:"username"`
	LastName      string    `bson:"last_name"`
	FirstName     string    `bson:"first_name"`
	Email         string    `bson:"email"`
	BirthDate     time.Time `bson:"birth_date"`
	PhotoPath     *string   `bson:"photo_path,omitempty"`
	PasswordHash  string    `bson:"password_hash"`
	RememberToken *string   `bson:"remember_token,omitempty"`
	RoleID        int64     `bson:"role_id"`

	// Roles is filled by the $lookup on reads and never written.
	Roles []roleDocument `bson:"roles,omitempty"`
}

type UserRepository struct {
	db      *mongo.Database
	col     *mongo.Collection
	timeout time.Duration
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database, timeout time.Duration) *UserRepository {
	return &UserRepository{db: db, col: db.Collection(collectionUsers), timeout: timeout}
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "find user by id", bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "find user by email", bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "find user by username", bson.M{"username": username})
}

// FindAll returns every user ordered by id.
func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, userPipeline(bson.M{}, true))
	if err != nil {
		return nil, storeError("list users", err)
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("list users", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "check user id", bson.M{"_id": id})
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "check user email", bson.M{"email": email})
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "check user username", bson.M{"username": username})
}

// Save inserts u when it has no id yet (drawing one from the users sequence),
// otherwise replaces the stored document. Unique index violations are
// reported as *domain.DuplicateKeyError.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	saved := u.Clone()
	doc := toUserDocument(saved)

	if saved.ID == 0 {
		id, err := nextSequence(ctx, r.db, collectionUsers)
		if err != nil {
			return nil, err
		}
		doc.ID = id
		if _, err := r.col.InsertOne(ctx, doc); err != nil {
			return nil, writeError("insert user", err)
		}
		saved.ID = id
		return saved, nil
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, writeError("replace user", err)
	}
	if res.MatchedCount == 0 {
		return nil, storeError("replace user", mongo.ErrNoDocuments)
	}
	return saved, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError("delete user", err)
	}
	if res.DeletedCount == 0 {
		return storeError("delete user", mongo.ErrNoDocuments)
	}
	return nil
}

// EnsureIndexes creates the unique indexes that back email and username
// uniqueness, plus the role reference index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName(indexUsersEmail).SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName(indexUsersUsername).SetUnique(true)},
		{Keys: bson.D{{Key: "role_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, op string, filter bson.M) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, userPipeline(filter, false))
	if err != nil {
		return nil, storeError(op, err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, storeError(op, err)
		}
		return nil, storeError(op, mongo.ErrNoDocuments)
	}

	var doc userDocument
	if err := cur.Decode(&doc); err != nil {
		return nil, storeError(op, err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) exists(ctx context.Context, op string, filter bson.M) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, storeError(op, err)
	}
	return n > 0, nil
}

// userPipeline matches users and joins their role document.
func userPipeline(match bson.M, sorted bool) mongo.Pipeline {
	p := mongo.Pipeline{{{Key: "$match", Value: match}}}
	if sorted {
		p = append(p, bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}})
	} else {
		p = append(p, bson.D{{Key: "$limit", Value: 1}})
	}
	return append(p, bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: collectionRoles},
		{Key: "localField", Value: "role_id"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "roles"},
	}}})
}

// writeError maps a unique index violation to the field it guards.
func writeError(op string, err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return storeError(op, err)
	}
	return &domain.DuplicateKeyError{Field: duplicateField(err), Err: err}
}

func duplicateField(err error) domain.ConflictField {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if f := conflictFieldFromMessage(e.Message); f != domain.ConflictGeneric {
				return f
			}
		}
	}
	return conflictFieldFromMessage(err.Error())
}

// conflictFieldFromMessage reads the index name out of an E11000 message, e.g.
// "E11000 duplicate key error collection: app.users index: uniq_users_email dup key: ...".
func conflictFieldFromMessage(msg string) domain.ConflictField {
	switch {
	case strings.Contains(msg, indexUsersEmail):
		return domain.ConflictEmail
	case strings.Contains(msg, indexUsersUsername):
		return domain.ConflictUsername
	default:
		return domain.ConflictGeneric
	}
}

func toUserDocument(u *domain.User) userDocument {
	doc := userDocument{
		ID:            u.ID,
		Username:      u.Username,
		LastName:      u.LastName,
		FirstName:     u.FirstName,
		Email:         u.Email,
		BirthDate:     u.BirthDate.UTC(),
		PhotoPath:     u.PhotoPath,
		PasswordHash:  u.PasswordHash,
		RememberToken: u.RememberToken,
	}
	if u.Role != nil {
		doc.RoleID = u.Role.ID
	}
	return doc
}

func (d *userDocument) toDomain() *domain.User {
	u := &domain.User{
		ID:            d.ID,
		Username:      d.Username,
		LastName:      d.LastName,
		FirstName:     d.FirstName,
		Email:         d.Email,
		BirthDate:     d.BirthDate.UTC(),
		PhotoPath:     d.PhotoPath,
		PasswordHash:  d.PasswordHash,
		RememberToken: d.RememberToken,
	}
	if len(d.Roles) > 0 {
		u.Role = d.Roles[0].toDomain()
	}
	return u
}

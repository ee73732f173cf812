package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoProfile struct {
	FirstName string `bson:"first_name,omitempty"`
	LastName  string `bson:"last_name,omitempty"`
	Phone     string `bson:"phone,omitempty"`
	Address   string `bson:"address,omitempty"`
	City      string `bson:"city,omitempty"`
	State     string `bson:"state,omitempty"`
	ZipCode   string `bson:"zip_code,omitempty"`
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	IsActive     bool               `bson:"is_active"`
	Profile      *mongoProfile      `bson:"profile,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		ID:           primitive.NewObjectID(),
		Username:     user.Username,
		Email:        domain.NormalizeEmail(user.Email),
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		IsActive:     user.IsActive,
		Profile:      toMongoProfile(user.Profile),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID returns domain.ErrUserNotFound for unknown and malformed ids alike.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateProfile sets only the username and profile sub-document.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.Profile != nil {
		set["profile"] = toMongoProfile(update.Profile)
	}

	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": set})
}

// ToggleActive negates is_active server side so concurrent toggles never
// read a stale value.
func (r *UserRepository) ToggleActive(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "is_active", Value: bson.D{{Key: "$not", Value: bson.A{"$is_active"}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}
	return r.findOneAndUpdate(ctx, oid, pipeline)
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoUser
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns users newest first. Password hashes are never read.
func (r *UserRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"password_hash": 0})

	cur, err := r.coll.Find(ctx, userQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	return nil
}

func userQuery(filter domain.UserFilter) bson.M {
	q := bson.M{}
	if filter.Role != "" {
		q["role"] = filter.Role
	}
	if filter.Active != nil {
		q["is_active"] = *filter.Active
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"username": pattern},
			bson.M{"email": pattern},
		}
	}
	return q
}

func (d *mongoUser) toDomain() *domain.User {
	u := &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Profile != nil {
		u.Profile = &domain.Profile{
			FirstName: d.Profile.FirstName,
			LastName:  d.Profile.LastName,
			Phone:     d.Profile.Phone,
			Address:   d.Profile.Address,
			City:      d.Profile.City,
			State:     d.Profile.State,
			ZipCode:   d.Profile.ZipCode,
		}
	}
	return u
}

func toMongoProfile(p *domain.Profile) *mongoProfile {
	if p == nil {
		return nil
	}
	return &mongoProfile{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		ZipCode:   p.ZipCode,
	}
}

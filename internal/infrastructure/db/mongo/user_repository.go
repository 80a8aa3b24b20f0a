package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/platformsec/identity-service/internal/core/domain"
	"github.com/platformsec/identity-service/internal/core/ports"
)

const collectionUsers = "users"

// UserRepository implements ports.IdentityStore on MongoDB. Passwords are
// bcrypt-hashed here; plaintext never leaves this adapter's call frame.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	FullName     string             `bson:"full_name"`
	Email        string             `bson:"email,omitempty"`
	Roles        []string           `bson:"roles"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (mu *mongoUser) toIdentity() *domain.Identity {
	roles := mu.Roles
	if roles == nil {
		roles = []string{}
	}
	return &domain.Identity{
		ID:        mu.ID.Hex(),
		Username:  mu.Username,
		FullName:  mu.FullName,
		Email:     mu.Email,
		Roles:     roles,
		CreatedAt: unixToTime(mu.CreatedAt),
		UpdatedAt: unixToTime(mu.UpdatedAt),
	}
}

// VerifyCredentials reports whether the pair is valid. An unknown username
// is reported as invalid rather than an error so the caller cannot tell the
// two cases apart.
func (r *UserRepository) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("verify credentials: %w", err)
	}

	return bcrypt.CompareHashAndPassword([]byte(mu.PasswordHash), []byte(password)) == nil, nil
}

func (r *UserRepository) ResolveID(ctx context.Context, username string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("resolve id: %w", err)
	}
	return doc.ID.Hex(), nil
}

func (r *UserRepository) GetIdentity(ctx context.Context, id string) (*domain.Identity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toIdentity(), nil
}

func (r *UserRepository) GetIdentityByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toIdentity(), nil
}

func (r *UserRepository) CreateUser(ctx context.Context, input ports.NewUserInput) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	roles := input.Roles
	if roles == nil {
		roles = []string{}
	}

	now := time.Now().UTC().Unix()
	doc := mongoUser{
		Username:     input.Username,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Email:        input.Email,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// DeleteUser removes the user and returns the affected count. Zero deleted
// documents is reported as domain.ErrUserNotFound, never a silent zero.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return 0, domain.ErrUserNotFound
	}
	return res.DeletedCount, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	identities, err := r.ListIdentities(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.UserSummary, 0, len(identities))
	for _, id := range identities {
		summaries = append(summaries, domain.UserSummary{
			ID:       id.ID,
			Username: id.Username,
			FullName: id.FullName,
			Email:    id.Email,
		})
	}
	return summaries, nil
}

func (r *UserRepository) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var identities []domain.Identity
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		identities = append(identities, *mu.toIdentity())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return identities, nil
}

// SetRoles replaces the role array wholesale ($set), so an empty slice
// clears every role. Zero matched documents means the user does not exist.
func (r *UserRepository) SetRoles(ctx context.Context, username string, roles []string) (int64, error) {
	if roles == nil {
		roles = []string{}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"roles": roles, "updated_at": time.Now().UTC().Unix()}},
	)
	if err != nil {
		return 0, fmt.Errorf("set roles: %w", err)
	}
	if res.MatchedCount == 0 {
		return 0, domain.ErrUserNotFound
	}
	return res.MatchedCount, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, update ports.ProfileUpdate) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(update.ID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	fields := bson.M{"updated_at": time.Now().UTC().Unix()}
	if update.Username != "" {
		fields["username"] = update.Username
	}
	if update.Email != "" {
		fields["email"] = update.Email
	}
	if update.FullName != "" {
		fields["full_name"] = update.FullName
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, domain.ErrUserExists
		}
		return 0, fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return 0, domain.ErrUserNotFound
	}
	return res.MatchedCount, nil
}

// EnsureIndexes creates the unique username index backing the duplicate
// checks above.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

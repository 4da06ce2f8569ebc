package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

const identityCollection = "identities"

// IdentityRepository stores staff identities and their bcrypt credentials.
type IdentityRepository struct {
	coll *mongo.Collection
	cost int
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{coll: db.Collection(identityCollection), cost: bcrypt.DefaultCost}
}

type mongoIdentity struct {
	ID             string         `bson:"_id"`
	Email          string         `bson:"email"`
	PasswordHash   string         `bson:"password_hash"`
	EmailConfirmed bool           `bson:"email_confirmed"`
	Metadata       map[string]any `bson:"metadata,omitempty"`
	CreatedAt      int64          `bson:"created_at"`
	UpdatedAt      int64          `bson:"updated_at"`
}

// EnsureIndexes creates the unique e-mail index. It is safe to call on every
// start.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("create identity indexes: %w", err)
	}
	return nil
}

func (r *IdentityRepository) CreateIdentity(ctx context.Context, email, password string, confirmed bool, metadata map[string]any) (string, error) {
	hash, err := r.hash(password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC().Unix()
	doc := mongoIdentity{
		ID:             uuid.NewString(),
		Email:          domain.NormalizeEmail(email),
		PasswordHash:   hash,
		EmailConfirmed: confirmed,
		Metadata:       metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrIdentityExists
		}
		return "", fmt.Errorf("insert identity: %w", err)
	}
	return doc.ID, nil
}

// FindByEmail returns the identity id registered for email.
func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (string, error) {
	ident, err := r.FindIdentityByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return ident.ID, nil
}

func (r *IdentityRepository) FindIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	var mi mongoIdentity
	err := r.coll.FindOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}).Decode(&mi)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return toDomainIdentity(mi), nil
}

// FindByID is used by the mailer-facing provider to resolve an id back to an
// address.
func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	var mi mongoIdentity
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mi)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return toDomainIdentity(mi), nil
}

func (r *IdentityRepository) DeleteIdentity(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

// UpdateCredential replaces the password hash and merges metadata keys.
func (r *IdentityRepository) UpdateCredential(ctx context.Context, id, password string, metadata map[string]any) error {
	hash, err := r.hash(password)
	if err != nil {
		return err
	}

	set := bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC().Unix(),
	}
	for k, v := range metadata {
		set["metadata."+k] = v
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update credential: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

// SetPassword is UpdateCredential under the name the auth service uses.
func (r *IdentityRepository) SetPassword(ctx context.Context, id, password string, metadata map[string]any) error {
	return r.UpdateCredential(ctx, id, password, metadata)
}

func (r *IdentityRepository) VerifyPassword(identity *domain.Identity, password string) bool {
	if identity == nil || identity.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) == nil
}

func (r *IdentityRepository) hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: empty password", domain.ErrInvalidRequest)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func toDomainIdentity(mi mongoIdentity) *domain.Identity {
	return &domain.Identity{
		ID:             mi.ID,
		Email:          mi.Email,
		PasswordHash:   mi.PasswordHash,
		EmailConfirmed: mi.EmailConfirmed,
		Metadata:       mi.Metadata,
		CreatedAt:      unixToTime(mi.CreatedAt),
		UpdatedAt:      unixToTime(mi.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voyagedesk/agent-portal/internal/core/domain"
)

const usersCollection = "users"

// MongoAgentRepository persists identity records in the users collection.
type MongoAgentRepository struct {
	coll *mongo.Collection
}

func NewAgentRepository(db *mongo.Database) *MongoAgentRepository {
	return &MongoAgentRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. Safe to call on every start.
func (r *MongoAgentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoAgent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	AgentID      string             `bson:"agent_id,omitempty"`
	Agency       string             `bson:"agency,omitempty"`
	Phone        string             `bson:"phone,omitempty"`
	Bio          string             `bson:"bio,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoAgentRepository) Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	doc := toDoc(agent)
	doc.ID = primitive.ObjectID{}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAgentExists
		}
		return nil, fmt.Errorf("insert agent: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert agent: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return fromDoc(&doc), nil
}

func (r *MongoAgentRepository) FindByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	var doc mongoAgent
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAgentNotFound
		}
		return nil, fmt.Errorf("find agent by email: %w", err)
	}
	return fromDoc(&doc), nil
}

func (r *MongoAgentRepository) FindByID(ctx context.Context, id string) (*domain.Agent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAgentNotFound
	}

	var doc mongoAgent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAgentNotFound
		}
		return nil, fmt.Errorf("find agent by id: %w", err)
	}
	return fromDoc(&doc), nil
}

func (r *MongoAgentRepository) Update(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	oid, err := primitive.ObjectIDFromHex(agent.ID)
	if err != nil {
		return nil, domain.ErrAgentNotFound
	}

	doc := toDoc(agent)
	update := bson.M{"$set": bson.M{
		"username":      doc.Username,
		"email":         doc.Email,
		"password_hash": doc.PasswordHash,
		"agent_id":      doc.AgentID,
		"agency":        doc.Agency,
		"phone":         doc.Phone,
		"bio":           doc.Bio,
		"updated_at":    doc.UpdatedAt,
	}}

	var updated mongoAgent
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAgentNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAgentExists
		}
		return nil, fmt.Errorf("update agent: %w", err)
	}
	return fromDoc(&updated), nil
}

func (r *MongoAgentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAgentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

func toDoc(a *domain.Agent) mongoAgent {
	doc := mongoAgent{
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role.String(),
		AgentID:      a.AgentID,
		Agency:       a.Agency,
		Phone:        a.Phone,
		Bio:          a.Bio,
		CreatedAt:    a.CreatedAt.Unix(),
		UpdatedAt:    a.UpdatedAt.Unix(),
	}
	if oid, err := primitive.ObjectIDFromHex(a.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func fromDoc(doc *mongoAgent) *domain.Agent {
	role, err := domain.ParseRole(doc.Role)
	if err != nil {
		// Legacy documents with unknown roles stay loadable but unauthorized.
		role = domain.RoleUser
	}
	return &domain.Agent{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         role,
		AgentID:      doc.AgentID,
		Agency:       doc.Agency,
		Phone:        doc.Phone,
		Bio:          doc.Bio,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

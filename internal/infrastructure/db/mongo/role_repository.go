package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fotostream/identity-api/internal/core/domain"
)

const rolesCollection = "roles"

type MongoRoleRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{db: db, coll: db.Collection(rolesCollection)}
}

type mongoRole struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

func (r *MongoRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}

	var docs []mongoRole
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	roles := make([]domain.Role, 0, len(docs))
	for _, doc := range docs {
		roles = append(roles, domain.Role{ID: doc.ID, Name: doc.Name})
	}
	return roles, nil
}

func (r *MongoRoleRepository) FindRoleByID(ctx context.Context, id int64) (*domain.Role, error) {
	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.Role{ID: mr.ID, Name: mr.Name}, nil
}

func (r *MongoRoleRepository) CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	id, err := nextSequence(ctx, r.db, rolesCollection)
	if err != nil {
		return nil, err
	}

	if _, err := r.coll.InsertOne(ctx, mongoRole{ID: id, Name: role.Name}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRoleExists
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}

	return &domain.Role{ID: id, Name: role.Name}, nil
}

// EnsureDefaultRoles seeds the given role names when they are missing, so a
// fresh deployment always has the built-in "user" and "admin" levels.
func (r *MongoRoleRepository) EnsureDefaultRoles(ctx context.Context, names ...string) error {
	for _, name := range names {
		err := r.coll.FindOne(ctx, bson.M{"name": name}).Err()
		if err == nil {
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("check role %s: %w", name, err)
		}
		if _, err := r.CreateRole(ctx, &domain.Role{Name: name}); err != nil && !errors.Is(err, domain.ErrRoleExists) {
			return err
		}
	}
	return nil
}

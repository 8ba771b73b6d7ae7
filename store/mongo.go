package store

import (
	"context"

	"janawaaz-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIssues implements IssueStore on a MongoDB collection. Every mutation
// touches exactly one document, so a crash can never leave the collection
// half-written.
type MongoIssues struct {
	coll *mongo.Collection
}

// NewMongoIssues wraps the given collection.
func NewMongoIssues(coll *mongo.Collection) *MongoIssues {
	return &MongoIssues{coll: coll}
}

func (s *MongoIssues) Insert(ctx context.Context, issue *models.Issue) error {
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, issue)
	return err
}

func (s *MongoIssues) Get(ctx context.Context, id primitive.ObjectID) (models.Issue, error) {
	var issue models.Issue
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return models.Issue{}, ErrNotFound
	}
	if err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

// All returns every issue in insertion order. ObjectIDs are time-ordered,
// so ascending _id is arrival order for a single writer process.
func (s *MongoIssues) All(ctx context.Context) ([]models.Issue, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoIssues) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Issue, error) {
	return s.find(ctx, bson.M{"submittedBy": userID})
}

func (s *MongoIssues) find(ctx context.Context, filter bson.M) ([]models.Issue, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	issues := make([]models.Issue, 0)
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Update performs an optimistic read-modify-write: the replace only matches
// when the stored rev is still the one that was read, and loses race retries
// with a fresh read. This serializes concurrent updates to one issue
// without holding any lock across the round trips.
func (s *MongoIssues) Update(ctx context.Context, id primitive.ObjectID, fn func(*models.Issue) error) (models.Issue, error) {
	for {
		issue, err := s.Get(ctx, id)
		if err != nil {
			return models.Issue{}, err
		}

		rev := issue.Rev
		if err := fn(&issue); err != nil {
			return models.Issue{}, err
		}
		issue.Rev = rev + 1

		res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id, "rev": rev}, issue)
		if err != nil {
			return models.Issue{}, err
		}
		if res.MatchedCount == 1 {
			return issue, nil
		}
		if err := ctx.Err(); err != nil {
			return models.Issue{}, err
		}
	}
}

// MongoUsers implements UserStore on a MongoDB collection.
type MongoUsers struct {
	coll *mongo.Collection
}

// NewMongoUsers wraps the given collection.
func NewMongoUsers(coll *mongo.Collection) *MongoUsers {
	return &MongoUsers{coll: coll}
}

func (s *MongoUsers) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

func (s *MongoUsers) Get(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoUsers) ByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

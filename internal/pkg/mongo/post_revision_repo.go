package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRevisionRepo interface {
	CreateRevision(ctx context.Context, rev *PostRevision) error
	ListRevisions(ctx context.Context, postID uint64) ([]*PostRevision, error)
	DeleteRevisions(ctx context.Context, postID uint64) error
}

type postRevisionRepoImpl struct {
	col *mongo.Collection
}

func NewPostRevisionRepo(db *mongo.Database) PostRevisionRepo {
	return &postRevisionRepoImpl{
		col: db.Collection(revisionCollection),
	}
}

func ensureRevisionIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(revisionCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "edited_at", Value: -1}},
	})
	return err
}

// CreateRevision 插入一条编辑历史
func (s *postRevisionRepoImpl) CreateRevision(ctx context.Context, rev *PostRevision) error {
	_, err := s.col.InsertOne(ctx, rev)
	return err
}

// ListRevisions 按编辑时间倒序
func (s *postRevisionRepoImpl) ListRevisions(ctx context.Context, postID uint64) ([]*PostRevision, error) {
	opts := options.Find().SetSort(bson.D{{Key: "edited_at", Value: -1}})

	cursor, err := s.col.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*PostRevision, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteRevisions 帖子删除时清理历史
func (s *postRevisionRepoImpl) DeleteRevisions(ctx context.Context, postID uint64) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"post_id": postID})
	return err
}

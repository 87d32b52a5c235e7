package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const revisionCollection = "post_revisions"

// PostRevision 帖子编辑前的快照
type PostRevision struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID   uint64             `bson:"post_id" json:"post_id"`
	EditorID uint64             `bson:"editor_id" json:"editor_id"`
	Text     string             `bson:"text" json:"text"`
	GroupID  *uint64            `bson:"group_id,omitempty" json:"group_id,omitempty"`
	Image    *string            `bson:"image,omitempty" json:"image,omitempty"`
	EditedAt time.Time          `bson:"edited_at" json:"edited_at"`
}

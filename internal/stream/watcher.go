package stream

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hoopboard/model"
)

type insertEvent struct {
	OperationType string        `bson:"operationType"`
	FullDocument  model.Comment `bson:"fullDocument"`
}

// WatchComments tails the comments change stream and feeds inserts into
// the hub, so every connected viewer of a post learns about new comments
// regardless of which instance handled the write. Delete events carry no
// post id in the stream, so cascades are broadcast by the delete handler
// instead. Reopens the stream on error until ctx is done.
func WatchComments(ctx context.Context, col *mongo.Collection, hub *Hub) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"operationType": "insert"}}},
	}

	for {
		if ctx.Err() != nil {
			return
		}

		cs, err := col.Watch(ctx, pipeline)
		if err != nil {
			log.Printf("[stream] open change stream: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for cs.Next(ctx) {
			var ev insertEvent
			if err := cs.Decode(&ev); err != nil {
				log.Printf("[stream] decode change event: %v", err)
				continue
			}
			hub.Broadcast(ev.FullDocument.PostID.Hex(), Event{
				Type:    EventCommentCreated,
				Payload: ev.FullDocument,
			})
		}
		if err := cs.Err(); err != nil && ctx.Err() == nil {
			log.Printf("[stream] change stream closed: %v", err)
		}
		cs.Close(context.Background())
	}
}

package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hoopboard/model"
)

// fakeCommentStore keeps everything in maps and treats WithTransaction as
// a plain function call.
type fakeCommentStore struct {
	posts    map[bson.ObjectID]model.Post
	comments map[bson.ObjectID]model.Comment
	counters map[bson.ObjectID]int
	seq      int
}

func newFakeStore() *fakeCommentStore {
	return &fakeCommentStore{
		posts:    map[bson.ObjectID]model.Post{},
		comments: map[bson.ObjectID]model.Comment{},
		counters: map[bson.ObjectID]int{},
	}
}

func (f *fakeCommentStore) addPost() model.Post {
	p := model.Post{ID: bson.NewObjectID(), Title: "game thread"}
	f.posts[p.ID] = p
	return p
}

func (f *fakeCommentStore) Insert(_ context.Context, c model.Comment) (model.Comment, error) {
	c.ID = bson.NewObjectID()
	f.seq++
	c.CreatedAt = time.Unix(int64(f.seq), 0).UTC()
	f.comments[c.ID] = c
	return c, nil
}

func (f *fakeCommentStore) FindByID(_ context.Context, id bson.ObjectID) (model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return model.Comment{}, mongo.ErrNoDocuments
	}
	return c, nil
}

func (f *fakeCommentStore) ListByPost(_ context.Context, postID bson.ObjectID) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCommentStore) DeleteByIDs(_ context.Context, ids []bson.ObjectID) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.comments[id]; ok {
			delete(f.comments, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentStore) IncPostCommentCount(_ context.Context, postID bson.ObjectID, delta int) error {
	f.counters[postID] += delta
	return nil
}

func (f *fakeCommentStore) FindPost(_ context.Context, postID bson.ObjectID) (model.Post, error) {
	p, ok := f.posts[postID]
	if !ok {
		return model.Post{}, mongo.ErrNoDocuments
	}
	return p, nil
}

func (f *fakeCommentStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func seedReply(t *testing.T, svc *CommentService, post model.Post, parent *model.Comment, content string) model.Comment {
	t.Helper()
	author := model.User{ID: bson.NewObjectID(), FirstName: "Jo", LastName: "Doe", Username: "jdoe", Role: model.RoleUser}
	parentHex := ""
	if parent != nil {
		parentHex = parent.ID.Hex()
	}
	c, err := svc.Create(context.Background(), post.ID, author, content, parentHex)
	require.NoError(t, err)
	return c
}

func TestCreateIncrementsCounter(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store)
	post := store.addPost()
	other := store.addPost()

	seedReply(t, svc, post, nil, "first")
	seedReply(t, svc, post, nil, "second")
	seedReply(t, svc, other, nil, "elsewhere")

	assert.Equal(t, 2, store.counters[post.ID])
	assert.Equal(t, 1, store.counters[other.ID])
}

func TestCreateValidatesParent(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store)
	post := store.addPost()
	other := store.addPost()
	author := model.User{ID: bson.NewObjectID(), Username: "jdoe"}

	_, err := svc.Create(context.Background(), bson.NewObjectID(), author, "hi", "")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.Create(context.Background(), post.ID, author, "hi", bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrParentNotFound)

	onOther := seedReply(t, svc, other, nil, "root on other post")
	_, err = svc.Create(context.Background(), post.ID, author, "hi", onOther.ID.Hex())
	assert.ErrorIs(t, err, ErrParentMismatch)
}

// vanishingParentStore removes one comment right as the transaction
// opens, standing in for a cascade that deletes the parent between the
// caller's read and the reply's write.
type vanishingParentStore struct {
	*fakeCommentStore
	parentID bson.ObjectID
}

func (s *vanishingParentStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	delete(s.comments, s.parentID)
	return fn(ctx)
}

func TestCreateParentCheckedInTransaction(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store)
	post := store.addPost()
	parent := seedReply(t, svc, post, nil, "root")
	require.Equal(t, 1, store.counters[post.ID])

	racy := NewCommentService(&vanishingParentStore{fakeCommentStore: store, parentID: parent.ID})
	author := model.User{ID: bson.NewObjectID(), Username: "jdoe"}

	_, err := racy.Create(context.Background(), post.ID, author, "reply", parent.ID.Hex())
	assert.ErrorIs(t, err, ErrParentNotFound)
	assert.Equal(t, 1, store.counters[post.ID], "failed insert must not bump the counter")
}

func TestCascadeDeleteRemovesSubtree(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store)
	post := store.addPost()

	// a
	// ├── b
	// │   └── c
	// │       └── d
	// └── e
	// root2 stays untouched.
	a := seedReply(t, svc, post, nil, "a")
	b := seedReply(t, svc, post, &a, "b")
	c := seedReply(t, svc, post, &b, "c")
	seedReply(t, svc, post, &c, "d")
	seedReply(t, svc, post, &a, "e")
	root2 := seedReply(t, svc, post, nil, "root2")
	require.Equal(t, 6, store.counters[post.ID])

	deleted, err := svc.CascadeDelete(context.Background(), post.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, deleted)
	assert.Equal(t, 1, store.counters[post.ID])

	remaining, _ := store.ListByPost(context.Background(), post.ID)
	require.Len(t, remaining, 1)
	assert.Equal(t, root2.ID, remaining[0].ID)
}

func TestCascadeDeleteMidTree(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store)
	post := store.addPost()

	a := seedReply(t, svc, post, nil, "a")
	b := seedReply(t, svc, post, &a, "b")
	seedReply(t, svc, post, &b, "c")
	seedReply(t, svc, post, &a, "sibling")

	deleted, err := svc.CascadeDelete(context.Background(), post.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Equal(t, 2, store.counters[post.ID])

	_, err = store.FindByID(context.Background(), a.ID)
	assert.NoError(t, err, "ancestor must survive")
}

func TestCascadeDeleteIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store)
	post := store.addPost()

	a := seedReply(t, svc, post, nil, "a")
	seedReply(t, svc, post, &a, "b")

	deleted, err := svc.CascadeDelete(context.Background(), post.ID, a.ID)
	require.NoError(t, err)
	require.Equal(t, 2, deleted)
	require.Equal(t, 0, store.counters[post.ID])

	// Second delete of the same id finds nothing and must not move the
	// counter again.
	deleted, err = svc.CascadeDelete(context.Background(), post.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	assert.Equal(t, 0, store.counters[post.ID])
}

func TestCascadeDeleteAbortsCleanly(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store)
	post := store.addPost()
	a := seedReply(t, svc, post, nil, "a")

	failing := &failingStore{fakeCommentStore: store}
	svcFail := NewCommentService(failing)

	_, err := svcFail.CascadeDelete(context.Background(), post.ID, a.ID)
	assert.Error(t, err)
}

// failingStore wraps the fake and rejects counter updates, standing in
// for a transaction that aborts partway.
type failingStore struct {
	*fakeCommentStore
}

func (f *failingStore) IncPostCommentCount(context.Context, bson.ObjectID, int) error {
	return errors.New("write conflict")
}

func TestGetMapsMissingComment(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store)

	_, err := svc.Get(context.Background(), bson.NewObjectID())
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

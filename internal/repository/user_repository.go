package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hoopboard/model"
)

type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) users() *mongo.Collection     { return r.db.Collection("users") }
func (r *UserRepository) usernames() *mongo.Collection { return r.db.Collection("usernames") }

// CreateWithClaim inserts the user and its username claim in one
// transaction. The claim document's _id is the normalized username, so
// two concurrent signups for the same name cannot both commit — the
// loser gets a duplicate-key write error (code 11000), reported as
// dup=true.
func (r *UserRepository) CreateWithClaim(ctx context.Context, user model.User) (model.User, bool, error) {
	user.CreatedAt = time.Now().UTC()
	user.ID = bson.NewObjectID()

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return model.User{}, false, err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		if _, err := r.usernames().InsertOne(ctx, model.UsernameClaim{
			Username: user.Username,
			UserID:   user.ID,
		}); err != nil {
			return nil, err
		}
		if _, err := r.users().InsertOne(ctx, user); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, true, nil
		}
		return model.User{}, false, err
	}
	return user, false, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id bson.ObjectID) (model.User, error) {
	var u model.User
	err := r.users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, err
}

// FindByUsername looks up by the normalized (lowercase) form.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.users().FindOne(ctx, bson.M{"username": username}).Decode(&u)
	return u, err
}

// UsernameTaken reports whether a normalized username is claimed.
func (r *UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	err := r.usernames().FindOne(ctx, bson.M{"_id": username}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// UpdateProfile sets the mutable profile fields; nil means "leave as is".
func (r *UserRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, bio, avatar *string) (model.User, error) {
	set := bson.M{}
	if bio != nil {
		set["bio"] = *bio
	}
	if avatar != nil {
		set["avatar"] = *avatar
	}
	if len(set) > 0 {
		if _, err := r.users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			return model.User{}, err
		}
	}
	return r.FindByID(ctx, id)
}

func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
		return true
	}
	var ce mongo.CommandError
	return errors.As(err, &ce) && ce.Code == 11000
}

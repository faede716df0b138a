package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hoopboard/dto"
	"hoopboard/model"
)

// fakeUserStore claims usernames by their stored (normalized) form, the
// same way the claim collection's unique _id does: a second claim of the
// same name reports dup.
type fakeUserStore struct {
	claims  map[string]bson.ObjectID
	byEmail map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		claims:  map[string]bson.ObjectID{},
		byEmail: map[string]model.User{},
	}
}

func (f *fakeUserStore) CreateWithClaim(_ context.Context, user model.User) (model.User, bool, error) {
	if _, taken := f.claims[user.Username]; taken {
		return model.User{}, true, nil
	}
	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	f.claims[user.Username] = user.ID
	f.byEmail[user.Email] = user
	return user, false, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUserStore) UsernameTaken(_ context.Context, username string) (bool, error) {
	_, taken := f.claims[username]
	return taken, nil
}

func registerReq(username, email string) dto.RegisterReq {
	return dto.RegisterReq{
		FirstName: "Jo",
		LastName:  "Doe",
		Username:  username,
		Email:     email,
		Password:  "hunter2hunter2",
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	user, token, err := svc.Register(context.Background(), registerReq("JDoe_99", "jo@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "jdoe_99", user.Username, "stored handle is normalized")
	assert.Equal(t, model.RoleUser, user.Role)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), sub)
}

func TestRegisterUsernameCaseInsensitive(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	_, _, err := svc.Register(context.Background(), registerReq("JDoe_99", "jo@example.com"))
	require.NoError(t, err)

	// Both casings report taken after one successful registration.
	for _, name := range []string{"JDoe_99", "jdoe_99"} {
		available, err := svc.UsernameAvailable(context.Background(), name)
		require.NoError(t, err)
		assert.False(t, available, "%s must be taken", name)
	}

	_, _, err = svc.Register(context.Background(), registerReq("jdoe_99", "other@example.com"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterEmailTaken(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	_, _, err := svc.Register(context.Background(), registerReq("jdoe_99", "jo@example.com"))
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerReq("someone_else", "jo@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	req := registerReq("bad name", "jo@example.com")
	_, _, err := svc.Register(context.Background(), req)
	assert.Error(t, err, "username with a space")

	req = registerReq("jdoe_99", "jo@example.com")
	req.Password = "short"
	_, _, err = svc.Register(context.Background(), req)
	assert.Error(t, err, "password too short")
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	registered, _, err := svc.Register(context.Background(), registerReq("jdoe_99", "jo@example.com"))
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), dto.LoginReq{Email: "JO@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), dto.LoginReq{Email: "jo@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), dto.LoginReq{Email: "nobody@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

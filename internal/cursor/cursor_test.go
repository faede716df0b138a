package cursor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	id := bson.NewObjectID()

	ts, oid, err := Decode(Encode(now, id))
	assert.NoError(t, err)
	assert.Equal(t, now, ts)
	assert.Equal(t, id, oid)
}

func TestDecodeInvalid(t *testing.T) {
	_, _, err := Decode("not base64 at all!!")
	assert.Error(t, err)

	_, _, err = Decode("aGVsbG8=") // base64("hello"), not JSON
	assert.Error(t, err)
}

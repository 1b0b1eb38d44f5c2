package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/stranger-market/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	req := require.New(t)

	type selector struct {
		Seller    *string `bson:"seller"`
		Executed  *bool   `bson:"executed"`
		Cancelled *bool   `bson:"cancelled"`
		Offset    *int32  `bson:"-"`
		Plain     string  `bson:"plain"`
	}

	m, err := MakeBsonM(&selector{
		Seller:   ptr.String("0xabc"),
		Executed: ptr.Bool(false),
		Offset:   ptr.Int32(10),
		Plain:    "v",
	})
	req.NoError(err)
	req.Equal(bson.M{
		"seller":   "0xabc",
		"executed": false,
		"plain":    "v",
	}, m)
}

func TestMakeBsonMSkipsUnset(t *testing.T) {
	req := require.New(t)

	type patch struct {
		Active *bool `bson:"active"`
	}

	m, err := MakeBsonM(patch{})
	req.NoError(err)
	req.Equal(bson.M{}, m)
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/service/cache/provider/primitive"
)

type payload struct {
	Id    uint64 `json:"id"`
	Value string `json:"value"`
}

func TestGetByFunc(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	svc := New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	})

	calls := 0
	getter := func() (interface{}, error) {
		calls++
		return &payload{Id: 7, Value: "cached"}, nil
	}

	res := payload{}
	req.NoError(svc.GetByFunc(c, "k", &res, getter))
	req.Equal(payload{Id: 7, Value: "cached"}, res)
	req.Equal(1, calls)

	res = payload{}
	req.NoError(svc.GetByFunc(c, "k", &res, getter))
	req.Equal(payload{Id: 7, Value: "cached"}, res)
	req.Equal(1, calls, "second read should hit the cache")
}

func TestDel(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	svc := New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	})

	req.NoError(svc.Set(c, "k", &payload{Id: 1}))
	res := payload{}
	req.NoError(svc.Get(c, "k", &res))
	req.NoError(svc.Del(c, "k"))
	req.Equal(ErrNotFound, svc.Get(c, "k", &res))
}

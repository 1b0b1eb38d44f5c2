package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/base/database/mongoclient"
	"github.com/stranger-market/goapi/domain"
	hcdomain "github.com/stranger-market/goapi/domain/healthcheck"
	"github.com/stranger-market/goapi/service/query"
)

type heartbeat struct {
	Id    string `bson:"_id"`
	Beats int64  `bson:"beats"`
}

type impl struct {
	mgoClient *mongoclient.Client
	q         query.Mongo
}

// New creates new healthCheckRepo object representation of HealthCheckRepo interface
func New(mgoClient *mongoclient.Client, q query.Mongo) hcdomain.HealthCheckRepo {
	return &impl{
		mgoClient: mgoClient,
		q:         q,
	}
}

func (im *impl) PingDB(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()
	if err := im.mgoClient.Ping(ctx, readpref.Primary()); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}

	hb := heartbeat{}
	if err := im.q.Increment(ctx, domain.TableHeartbeat, bson.M{"_id": "api"}, &hb, "beats", int64(1)); err != nil {
		context.WithField("err", err).Error("heartbeat write failed")
		return err
	}
	return nil
}

package repository

import (
	"strconv"
	"time"

	bCtx "github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/base/database/mongoclient"
	"github.com/stranger-market/goapi/base/log"
	"github.com/stranger-market/goapi/domain"
	"github.com/stranger-market/goapi/domain/listing"
	"github.com/stranger-market/goapi/service/cache"
	"github.com/stranger-market/goapi/service/cache/provider/primitive"
	"github.com/stranger-market/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type counter struct {
	Id  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

type listingRepoImpl struct {
	q            query.Mongo
	listingCache cache.Service
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepoImpl{
		q: q,
		listingCache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Second,
			Pfx:   "listing",
			Cache: primitive.NewPrimitive("listing", 64),
		}),
	}
}

func (r *listingRepoImpl) FindAll(ctx bCtx.Ctx, optFns ...listing.SelectOptions) ([]*listing.Listing, error) {
	opts, err := listing.GetSelectOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("listing.GetSelectOptions failed")
		return nil, err
	}

	var (
		offset int = 0
		limit  int = 0
	)
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	sel, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		ctx.WithFields(log.Fields{
			"opts": opts,
			"err":  err,
		}).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	res := []*listing.Listing{}
	if err := r.q.Search(ctx, domain.TableListings, offset, limit, "id", sel, &res); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *listingRepoImpl) FindOne(ctx bCtx.Ctx, id uint64) (*listing.Listing, error) {
	res := &listing.Listing{}
	if err := r.listingCache.GetByFunc(ctx, strconv.FormatUint(id, 10), res, func() (interface{}, error) {
		return r.findOne(ctx, id)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *listingRepoImpl) findOne(ctx bCtx.Ctx, id uint64) (*listing.Listing, error) {
	res := &listing.Listing{}
	if err := r.q.FindOne(ctx, domain.TableListings, bson.M{"id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *listingRepoImpl) Count(ctx bCtx.Ctx, optFns ...listing.SelectOptions) (int, error) {
	opts, err := listing.GetSelectOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("listing.GetSelectOptions failed")
		return 0, err
	}

	sel, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return 0, err
	}

	cnt, err := r.q.Count(ctx, domain.TableListings, sel)
	if err != nil {
		ctx.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (r *listingRepoImpl) Insert(ctx bCtx.Ctx, value *listing.Listing) error {
	copy := *value
	copy.ContractAddress = copy.ContractAddress.ToLower()
	copy.Seller = copy.Seller.ToLower()
	if err := r.q.Insert(ctx, domain.TableListings, &copy); err != nil {
		ctx.WithFields(log.Fields{
			"listing": value,
			"err":     err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *listingRepoImpl) Patch(ctx bCtx.Ctx, id uint64, patchable listing.Patchable, guards ...listing.SelectOptions) error {
	opts, err := listing.GetSelectOptions(guards...)
	if err != nil {
		ctx.WithField("err", err).Error("listing.GetSelectOptions failed")
		return err
	}

	sel, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	sel["id"] = id

	update, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := r.q.Patch(ctx, domain.TableListings, sel, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.Patch failed")
		return err
	}

	if err := r.listingCache.Del(ctx, strconv.FormatUint(id, 10)); err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("listingCache.Del failed")
	}
	return nil
}

func (r *listingRepoImpl) NextId(ctx bCtx.Ctx) (uint64, error) {
	cnt := counter{}
	if err := r.q.Increment(ctx, domain.TableCounters, bson.M{"_id": string(domain.TableListings)}, &cnt, "seq", int64(1)); err != nil {
		ctx.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	// seq holds the count of allocated ids, ids themselves start at 0
	return uint64(cnt.Seq - 1), nil
}

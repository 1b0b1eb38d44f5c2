package listing

import (
	"math/big"
	"time"

	"github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/domain"
	"github.com/stranger-market/goapi/domain/item"
)

// Listing is a seller's offer to sell one token at a fixed price.
// Ids are dense, assigned from 0 and never reused. At most one of
// Cancelled/Executed ever becomes true and neither reverts.
type Listing struct {
	Id              uint64         `json:"id" bson:"id"`
	ChainId         domain.ChainId `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address `json:"nftContract" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenID"`
	Seller          domain.Address `json:"seller" bson:"seller"`

	// Price is the asked amount in wei, fixed at creation.
	Price        string  `json:"price" bson:"price"`
	DisplayPrice float64 `json:"displayPrice" bson:"displayPrice"`

	Active    bool            `json:"active" bson:"active"`
	Cancelled bool            `json:"cancelled" bson:"cancelled"`
	Executed  bool            `json:"executed" bson:"executed"`
	Buyer     *domain.Address `json:"buyer,omitempty" bson:"buyer,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (l *Listing) ItemRef() item.Ref {
	return item.Ref{
		ChainId:         l.ChainId,
		ContractAddress: l.ContractAddress,
		TokenId:         l.TokenId,
	}
}

// PriceAmount parses Price into an integer amount. ok is false when the
// stored value is not a base-10 integer.
func (l *Listing) PriceAmount() (*big.Int, bool) {
	return new(big.Int).SetString(l.Price, 10)
}

// Patchable carries the mutable subset of a listing for repo patches.
type Patchable struct {
	ContractAddress *domain.Address `bson:"contractAddress,omitempty"`
	TokenId         *domain.TokenId `bson:"tokenID,omitempty"`
	Active          *bool           `bson:"active,omitempty"`
	Cancelled       *bool           `bson:"cancelled,omitempty"`
	Executed        *bool           `bson:"executed,omitempty"`
	Buyer           *domain.Address `bson:"buyer,omitempty"`
	UpdatedAt       *time.Time      `bson:"updatedAt,omitempty"`
}

type selectOptions struct {
	Offset    *int32          `bson:"-"`
	Limit     *int32          `bson:"-"`
	Seller    *domain.Address `bson:"seller"`
	Active    *bool           `bson:"active"`
	Cancelled *bool           `bson:"cancelled"`
	Executed  *bool           `bson:"executed"`
}

type SelectOptions func(*selectOptions) error

func GetSelectOptions(opts ...SelectOptions) (selectOptions, error) {
	res := selectOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithPagination(offset int32, limit int32) SelectOptions {
	return func(options *selectOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSeller(seller domain.Address) SelectOptions {
	return func(options *selectOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithActive(active bool) SelectOptions {
	return func(options *selectOptions) error {
		options.Active = &active
		return nil
	}
}

func WithCancelled(cancelled bool) SelectOptions {
	return func(options *selectOptions) error {
		options.Cancelled = &cancelled
		return nil
	}
}

func WithExecuted(executed bool) SelectOptions {
	return func(options *selectOptions) error {
		options.Executed = &executed
		return nil
	}
}

// WithUnsold selects listings that are neither executed nor cancelled,
// whether live or paused.
func WithUnsold() SelectOptions {
	return func(options *selectOptions) error {
		if err := WithExecuted(false)(options); err != nil {
			return err
		}
		return WithCancelled(false)(options)
	}
}

type Repo interface {
	// FindAll returns matched listings in ascending id order.
	FindAll(c ctx.Ctx, opts ...SelectOptions) ([]*Listing, error)
	// FindOne returns domain.ErrNotFound for an unknown id.
	FindOne(c ctx.Ctx, id uint64) (*Listing, error)
	Count(c ctx.Ctx, opts ...SelectOptions) (int, error)
	Insert(c ctx.Ctx, value *Listing) error
	// Patch applies the patchable to the listing with the given id, but only
	// when every guard option still matches. domain.ErrNotFound when nothing
	// matched, which callers holding a fresh read treat as a lost race.
	Patch(c ctx.Ctx, id uint64, patchable Patchable, guards ...SelectOptions) error
	// NextId allocates the next sequential listing id, starting at 0.
	NextId(c ctx.Ctx) (uint64, error)
}

type Usecase interface {
	CreateListing(c ctx.Ctx, ref item.Ref, price string, seller domain.Address) (uint64, error)
	CancelListing(c ctx.Ctx, id uint64, caller domain.Address) error
	PauseListing(c ctx.Ctx, id uint64, caller domain.Address) error
	UnpauseListing(c ctx.Ctx, id uint64, caller domain.Address) error
	ExecuteSale(c ctx.Ctx, id uint64, buyer domain.Address, paid *big.Int) error
	GetListing(c ctx.Ctx, id uint64) (*Listing, error)
	GetUnsoldListings(c ctx.Ctx) ([]*Listing, error)
	GetExecutedListings(c ctx.Ctx) ([]*Listing, error)
	GetUserListings(c ctx.Ctx, user domain.Address) ([]*Listing, error)
	CountSold(c ctx.Ctx) (int, error)
	CountListings(c ctx.Ctx) (int, error)
	GetCommissionPercentage(c ctx.Ctx) int
}

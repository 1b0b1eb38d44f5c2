package http

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/base/delivery"
	"github.com/stranger-market/goapi/domain"
	"github.com/stranger-market/goapi/domain/item"
	"github.com/stranger-market/goapi/domain/listing"
	"github.com/stranger-market/goapi/middleware"
	authMiddleware "github.com/stranger-market/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing listing.Usecase
}

func New(
	e *echo.Echo,
	listingUC listing.Usecase,
	authMiddleware *authMiddleware.AuthMiddleware,
) {
	h := &handler{listing: listingUC}

	g := e.Group("/listings")

	g.POST("", h.createListing, authMiddleware.Auth())
	g.GET("/unsold", h.getUnsoldListings)
	g.GET("/executed", h.getExecutedListings)
	g.GET("/mine", h.getMyListings, authMiddleware.Auth())
	g.GET("/user/:address", h.getUserListings, middleware.IsValidAddress("address"))
	g.GET("/count", h.countListings)
	g.GET("/sold/count", h.countSold)
	g.GET("/:id", h.getListing)
	g.POST("/:id/pause", h.pauseListing, authMiddleware.Auth())
	g.POST("/:id/unpause", h.unpauseListing, authMiddleware.Auth())
	g.POST("/:id/cancel", h.cancelListing, authMiddleware.Auth())
	g.POST("/:id/buy", h.executeSale, authMiddleware.Auth())

	m := e.Group("/marketplace")
	m.GET("/commission", h.getCommissionPercentage)
}

func parseListingId(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return id, nil
}

// createListing
//
//	@Summary		Create listing
//	@Description	List an owned token for sale at a fixed price in wei
//	@Tags			listings
//	@Security		ApiKeyAuth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.createListing.params	true	"params"
//	@Success		201		{object}	object{data=object{id=int}}
//	@Failure		400
//	@Failure		409
//	@Failure		500
//	@Router			/listings [post]
func (h *handler) createListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ChainId         domain.ChainId `json:"chainId" validate:"required" example:"1"`
		ContractAddress domain.Address `json:"nftContract" validate:"required" example:"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"`
		TokenId         domain.TokenId `json:"tokenId" validate:"required" example:"1"`
		Price           string         `json:"price" validate:"required" example:"100000000000"` // in wei
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	seller := c.Get("address").(domain.Address)

	ref := item.Ref{
		ChainId:         p.ChainId,
		ContractAddress: p.ContractAddress,
		TokenId:         p.TokenId,
	}
	id, err := h.listing.CreateListing(ctx, ref, p.Price, seller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Id uint64 `json:"id"`
	}{Id: id}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

// getListing
//
//	@Summary		Get listing
//	@Tags			listings
//	@Produce		json
//	@Param			id	path		int	true	"listing id"
//	@Success		200	{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		404
//	@Router			/listings/{id} [get]
func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.listing.GetListing(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

// pauseListing
//
//	@Summary		Pause listing
//	@Description	Take a live listing off the floor without cancelling it
//	@Tags			listings
//	@Security		ApiKeyAuth
//	@Produce		json
//	@Param			id	path	int	true	"listing id"
//	@Success		200
//	@Failure		403
//	@Failure		404
//	@Failure		409
//	@Router			/listings/{id}/pause [post]
func (h *handler) pauseListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	caller := c.Get("address").(domain.Address)

	if err := h.listing.PauseListing(ctx, id, caller); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// unpauseListing
//
//	@Summary		Unpause listing
//	@Tags			listings
//	@Security		ApiKeyAuth
//	@Produce		json
//	@Param			id	path	int	true	"listing id"
//	@Success		200
//	@Failure		403
//	@Failure		404
//	@Failure		409
//	@Router			/listings/{id}/unpause [post]
func (h *handler) unpauseListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	caller := c.Get("address").(domain.Address)

	if err := h.listing.UnpauseListing(ctx, id, caller); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// cancelListing
//
//	@Summary		Cancel listing
//	@Description	Permanently cancel a listing and clear its item reference
//	@Tags			listings
//	@Security		ApiKeyAuth
//	@Produce		json
//	@Param			id	path	int	true	"listing id"
//	@Success		200
//	@Failure		403
//	@Failure		404
//	@Failure		409
//	@Router			/listings/{id}/cancel [post]
func (h *handler) cancelListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	caller := c.Get("address").(domain.Address)

	if err := h.listing.CancelListing(ctx, id, caller); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// executeSale
//
//	@Summary		Buy listing
//	@Description	Settle a listing for the caller. paidAmount must cover price plus commission in wei
//	@Tags			listings
//	@Security		ApiKeyAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int							true	"listing id"
//	@Param			params	body	http.executeSale.params		true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		402
//	@Failure		404
//	@Failure		409
//	@Router			/listings/{id}/buy [post]
func (h *handler) executeSale(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		PaidAmount string `json:"paidAmount" validate:"required" example:"103000000000"` // in wei
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	paid, ok := new(big.Int).SetString(p.PaidAmount, 10)
	if !ok || paid.Sign() < 0 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	buyer := c.Get("address").(domain.Address)

	if err := h.listing.ExecuteSale(ctx, id, buyer, paid); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// getUnsoldListings
//
//	@Summary		Get unsold listings
//	@Description	Listings neither executed nor cancelled, ascending id
//	@Tags			listings
//	@Produce		json
//	@Success		200	{object}	object{data=[]listing.Listing}
//	@Failure		500
//	@Router			/listings/unsold [get]
func (h *handler) getUnsoldListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.listing.GetUnsoldListings(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getExecutedListings
//
//	@Summary		Get executed listings
//	@Tags			listings
//	@Produce		json
//	@Success		200	{object}	object{data=[]listing.Listing}
//	@Failure		500
//	@Router			/listings/executed [get]
func (h *handler) getExecutedListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.listing.GetExecutedListings(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getMyListings
//
//	@Summary		Get caller's listings
//	@Tags			listings
//	@Security		ApiKeyAuth
//	@Produce		json
//	@Success		200	{object}	object{data=[]listing.Listing}
//	@Failure		500
//	@Router			/listings/mine [get]
func (h *handler) getMyListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	caller := c.Get("address").(domain.Address)

	res, err := h.listing.GetUserListings(ctx, caller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getUserListings
//
//	@Summary		Get listings by seller
//	@Tags			listings
//	@Produce		json
//	@Param			address	path		string	true	"seller address"
//	@Success		200		{object}	object{data=[]listing.Listing}
//	@Failure		400
//	@Failure		500
//	@Router			/listings/user/{address} [get]
func (h *handler) getUserListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	user := domain.Address(c.Param("address"))

	res, err := h.listing.GetUserListings(ctx, user)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// countListings
//
//	@Summary		Count all listings ever created
//	@Tags			listings
//	@Produce		json
//	@Success		200	{object}	object{data=int}
//	@Failure		500
//	@Router			/listings/count [get]
func (h *handler) countListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	n, err := h.listing.CountListings(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, n)
}

// countSold
//
//	@Summary		Count executed sales
//	@Tags			listings
//	@Produce		json
//	@Success		200	{object}	object{data=int}
//	@Failure		500
//	@Router			/listings/sold/count [get]
func (h *handler) countSold(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	n, err := h.listing.CountSold(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, n)
}

// getCommissionPercentage
//
//	@Summary		Get commission percentage
//	@Tags			marketplace
//	@Produce		json
//	@Success		200	{object}	object{data=int}
//	@Router			/marketplace/commission [get]
func (h *handler) getCommissionPercentage(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	return delivery.MakeJsonResp(c, http.StatusOK, h.listing.GetCommissionPercentage(ctx))
}

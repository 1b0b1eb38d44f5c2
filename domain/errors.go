package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested listing is not exists
	ErrNotFound = errors.New("Your requested Listing is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// ErrUnauthorized will throw if the caller is not the listing's seller
	ErrUnauthorized = errors.New("caller is not the seller")
	// ErrNotApproved will throw if the marketplace lacks transfer approval on the token
	ErrNotApproved = errors.New("marketplace is not approved to transfer token")
	// ErrInvalidState will throw for operations against cancelled, executed or paused listings
	ErrInvalidState = errors.New("listing is in an invalid state for this operation")
	// ErrInsufficientPayment will throw if the attached payment is below price plus commission
	ErrInsufficientPayment = errors.New("payment does not cover price and commission")
	// ErrInvalidPrice will throw if the listing price is not a positive integer
	ErrInvalidPrice = errors.New("price must be a positive integer")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
)

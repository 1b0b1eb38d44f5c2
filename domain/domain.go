package domain

import (
	"math/big"
	"strings"
)

var (
	Big0   = big.NewInt(0)
	Big100 = big.NewInt(100)
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

type ChainId int32

type TokenId string

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type Table string

const (
	TableListings  = Table("listings")
	TableCounters  = Table("counters")
	TableHeartbeat = Table("heartbeat")
)

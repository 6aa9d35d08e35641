package domain

import "errors"

var (
	ErrCarNotFound         = errors.New("car not found")
	ErrInvalidCarID        = errors.New("invalid car id")
	ErrInvalidVoteType     = errors.New("vote_type must be 'hot' or 'not'")
	ErrNoCars              = errors.New("no cars available")
	ErrInvalidCatalogEntry = errors.New("invalid catalog entry")
	ErrInternal            = errors.New("internal server error")
)

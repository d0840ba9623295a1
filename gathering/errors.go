package gathering

import (
	"errors"
)

// Domain and validation errors returned by the services and the store.
var (
	ErrUserNotFound                  = errors.New("user not found")
	ErrGatheringNotFound             = errors.New("gathering not found")
	ErrCannotReviewOwnGathering      = errors.New("the host of a gathering cannot review it")
	ErrRegistrationEndNotBeforeStart = errors.New("registration end must be before the gathering start time")
	ErrRegistrationClosed            = errors.New("registration for this gathering has closed")
	ErrGatheringFull                 = errors.New("gathering has reached its capacity")
	ErrUnknownGatheringType          = errors.New("unknown gathering type")
	ErrUnknownLocation               = errors.New("unknown location")
	ErrScoreOutOfRange               = errors.New("review score must be between 1 and 5")
)

// Infrastructure errors; the store joins them with the underlying cause.
var (
	ErrNilDatabaseConnection = errors.New("nil database connection supplied")
	ErrEmptyTablePrefix      = errors.New("empty table prefix supplied")
	ErrBuildingQueryFailed   = errors.New("building the sql query failed")
	ErrQueryingFailed        = errors.New("querying the database failed")
	ErrExecutingFailed       = errors.New("executing the database statement failed")
	ErrScanningRowFailed     = errors.New("scanning a database row failed")
)

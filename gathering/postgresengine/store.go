package postgresengine

import (
	"database/sql"
	"math"
	"time"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/relaxtogether/gathering-service-go/gathering"
	"github.com/relaxtogether/gathering-service-go/gathering/postgresengine/internal/adapters"
)

const (
	dialectPostgres = "postgres"

	tableGatherings     = "gatherings"
	tableUserGatherings = "user_gatherings"
	tableReviews        = "reviews"
	tableUsers          = "users"

	aliasGathering     = "g"
	aliasUserGathering = "ug"
	aliasReview        = "r"
	aliasUser          = "u"

	fieldID              = "id"
	fieldType            = "type"
	fieldName            = "name"
	fieldDateTime        = "date_time"
	fieldRegistrationEnd = "registration_end"
	fieldLocation        = "location"
	fieldCapacity        = "capacity"
	fieldImageURL        = "image_url"
	fieldHostUserID      = "host_user_id"
	fieldStatus          = "status"
	fieldCreatedDate     = "created_date"
	fieldUserID          = "user_id"
	fieldGatheringID     = "gathering_id"
	fieldJoinedAt        = "joined_at"
	fieldScore           = "score"
	fieldComment         = "comment"
	fieldEmail           = "email"
	fieldCompanyName     = "company_name"
	fieldProfileImage    = "profile_image"

	colGatheringID              = aliasGathering + "." + fieldID
	colGatheringType            = aliasGathering + "." + fieldType
	colGatheringName            = aliasGathering + "." + fieldName
	colGatheringDateTime        = aliasGathering + "." + fieldDateTime
	colGatheringRegistrationEnd = aliasGathering + "." + fieldRegistrationEnd
	colGatheringLocation        = aliasGathering + "." + fieldLocation
	colGatheringCapacity        = aliasGathering + "." + fieldCapacity
	colGatheringImageURL        = aliasGathering + "." + fieldImageURL
	colGatheringHostUserID      = aliasGathering + "." + fieldHostUserID
	colGatheringStatus          = aliasGathering + "." + fieldStatus
	colGatheringCreatedDate     = aliasGathering + "." + fieldCreatedDate

	colUserGatheringID          = aliasUserGathering + "." + fieldID
	colUserGatheringGatheringID = aliasUserGathering + "." + fieldGatheringID

	colReviewID          = aliasReview + "." + fieldID
	colReviewUserID      = aliasReview + "." + fieldUserID
	colReviewGatheringID = aliasReview + "." + fieldGatheringID
	colReviewScore       = aliasReview + "." + fieldScore
	colReviewComment     = aliasReview + "." + fieldComment
	colReviewCreatedDate = aliasReview + "." + fieldCreatedDate

	colUserID           = aliasUser + "." + fieldID
	colUserName         = aliasUser + "." + fieldName
	colUserProfileImage = aliasUser + "." + fieldProfileImage

	aliasParticipantCount = "participant_count"

	logMsgBuildQueryFailed = "failed to build sql query"
	logMsgQueryFailed      = "database query execution failed"
	logMsgExecFailed       = "database statement execution failed"
	logMsgCloseRowsFailed  = "failed to close database rows"
	logMsgScanRowFailed    = "failed to scan database row"
	logMsgRollbackFailed   = "failed to roll back transaction"
	logMsgSQLExecuted      = "executed sql for: "
	logMsgOperation        = "store operation: "

	logMsgSearchCompleted      = "gathering search completed"
	logMsgHostedListCompleted  = "hosted gatherings listing completed"
	logMsgGatheringSaved       = "gathering saved with host participation"
	logMsgParticipantAdded     = "participant added"
	logMsgReviewSaved          = "review saved"
	logMsgReviewListCompleted  = "review listing completed"
	logMsgScoreCountsCompleted = "review score counts completed"

	logAttrError       = "error"
	logAttrQuery       = "query"
	logAttrRowCount    = "row_count"
	logAttrDurationMS  = "duration_ms"
	logAttrGatheringID = "gathering_id"
	logAttrUserID      = "user_id"

	logActionSearch      = "search"
	logActionHostedList  = "hosted list"
	logActionLookup      = "lookup"
	logActionInsert      = "insert"
	logActionReviewList  = "review list"
	logActionScoreCounts = "score counts"
)

// Logger interface for SQL query logging, operational metrics, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Store is the Postgres-backed persistence and query engine for gatherings,
// participations, reviews, and user lookups.
// It leverages a database adapter and supports customizable logging and a
// table prefix for deployments sharing a schema.
type Store struct {
	db          adapters.DBAdapter
	tablePrefix string
	logger      Logger
	clock       func() time.Time
}

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithTablePrefix prepends the given prefix to every table name used by the Store.
func WithTablePrefix(prefix string) Option {
	return func(s *Store) error {
		if prefix == "" {
			return gathering.ErrEmptyTablePrefix
		}

		s.tablePrefix = prefix

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Row counts and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithClock sets the time source used for the past-gatherings ordering.
// Defaults to time.Now; tests inject a fixed clock.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) error {
		s.clock = clock
		return nil
	}
}

// NewStoreFromPGXPool creates a new Store using a pgx pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, gathering.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, gathering.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, gathering.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	s := Store{
		db:    db,
		clock: time.Now,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// table returns the physical table name including the configured prefix.
func (s Store) table(name string) string {
	return s.tablePrefix + name
}

// closeRows safely closes database rows and logs any errors.
func (s Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (s Store) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, s.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (s Store) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logError logs a failure at error level if the logger is configured.
func (s Store) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s Store) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

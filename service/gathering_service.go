package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/relaxtogether/gathering-service-go/gathering"
)

// Logger interface for operational logging; a subset of what structured
// loggers like slog provide.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

const (
	logMsgGatheringCreated  = "gathering created"
	logMsgGatheringJoined   = "gathering joined"
	logMsgSearchPerformed   = "gathering search performed"
	logMsgHostedListFetched = "hosted gatherings fetched"

	logAttrOperationID = "operation_id"
	logAttrGatheringID = "gathering_id"
	logAttrUserID      = "user_id"
	logAttrRowCount    = "row_count"
)

// GatheringStore defines the persistence operations the GatheringService needs.
type GatheringStore interface {
	SearchGatherings(
		ctx context.Context,
		cond gathering.SearchCondition,
		sort gathering.SortSpec,
		page gathering.PageRequest,
	) (gathering.Slice[gathering.SearchResult], error)
	FindHostedGatherings(
		ctx context.Context,
		hostUserID int64,
		page gathering.PageRequest,
	) (gathering.Slice[gathering.HostedResult], error)
	SaveGathering(ctx context.Context, g gathering.Gathering) (int64, error)
	AddParticipant(ctx context.Context, userID int64, gatheringID int64) error
}

// UserLookup resolves users by their login email.
type UserLookup interface {
	FindUserByEmail(ctx context.Context, email string) (gathering.User, error)
}

// CreateGatheringRequest carries the input for creating a gathering.
// Type and Location are client-facing texts and are resolved strictly:
// unknown texts fail the creation.
type CreateGatheringRequest struct {
	Name            string
	Type            string
	Location        string
	DateTime        time.Time
	RegistrationEnd time.Time
	Capacity        int
	ImageURL        string
}

// GatheringService orchestrates gathering creation, joining, and the
// listing queries. Validation happens here; query composition and
// persistence live in the store.
type GatheringService struct {
	gatherings GatheringStore
	users      UserLookup
	clock      func() time.Time
	logger     Logger
}

// GatheringServiceOption configures a GatheringService.
type GatheringServiceOption func(*GatheringService)

// WithGatheringClock sets the time source; tests inject a fixed clock.
func WithGatheringClock(clock func() time.Time) GatheringServiceOption {
	return func(s *GatheringService) {
		s.clock = clock
	}
}

// WithGatheringLogger sets the logger.
func WithGatheringLogger(logger Logger) GatheringServiceOption {
	return func(s *GatheringService) {
		s.logger = logger
	}
}

// NewGatheringService creates a GatheringService with optional configuration.
func NewGatheringService(gatherings GatheringStore, users UserLookup, opts ...GatheringServiceOption) GatheringService {
	s := GatheringService{
		gatherings: gatherings,
		users:      users,
		clock:      time.Now,
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// Create validates the request and persists a new gathering hosted by the
// user behind loginEmail. The registration deadline must lie before the
// gathering start; the host is registered as the first participant.
func (s GatheringService) Create(ctx context.Context, request CreateGatheringRequest, loginEmail string) (int64, error) {
	host, userErr := s.users.FindUserByEmail(ctx, loginEmail)
	if userErr != nil {
		return 0, userErr
	}

	gatheringType, typeErr := gathering.TypeFromText(request.Type)
	if typeErr != nil {
		return 0, typeErr
	}

	location, locationErr := gathering.LocationFromText(request.Location)
	if locationErr != nil {
		return 0, locationErr
	}

	g, buildErr := gathering.BuildGathering(
		gatheringType,
		request.Name,
		request.DateTime,
		request.RegistrationEnd,
		location,
		request.Capacity,
		request.ImageURL,
		host.ID,
		s.clock().UTC(),
	)
	if buildErr != nil {
		return 0, buildErr
	}

	gatheringID, saveErr := s.gatherings.SaveGathering(ctx, g)
	if saveErr != nil {
		return 0, saveErr
	}

	s.logInfo(logMsgGatheringCreated, logAttrGatheringID, gatheringID, logAttrUserID, host.ID)

	return gatheringID, nil
}

// Join registers the user behind loginEmail for a gathering.
func (s GatheringService) Join(ctx context.Context, gatheringID int64, loginEmail string) error {
	user, userErr := s.users.FindUserByEmail(ctx, loginEmail)
	if userErr != nil {
		return userErr
	}

	if joinErr := s.gatherings.AddParticipant(ctx, user.ID, gatheringID); joinErr != nil {
		return joinErr
	}

	s.logInfo(logMsgGatheringJoined, logAttrGatheringID, gatheringID, logAttrUserID, user.ID)

	return nil
}

// Search returns one page of ongoing gatherings matching the condition.
func (s GatheringService) Search(
	ctx context.Context,
	cond gathering.SearchCondition,
	sort gathering.SortSpec,
	page gathering.PageRequest,
) (gathering.Slice[gathering.SearchResult], error) {

	results, err := s.gatherings.SearchGatherings(ctx, cond, sort, page)
	if err != nil {
		return results, err
	}

	s.logInfo(logMsgSearchPerformed, logAttrRowCount, results.NumberOfElements)

	return results, nil
}

// Hosted returns one page of the gatherings a host created, newest first.
func (s GatheringService) Hosted(
	ctx context.Context,
	hostUserID int64,
	page gathering.PageRequest,
) (gathering.Slice[gathering.HostedResult], error) {

	results, err := s.gatherings.FindHostedGatherings(ctx, hostUserID, page)
	if err != nil {
		return results, err
	}

	s.logInfo(logMsgHostedListFetched, logAttrUserID, hostUserID, logAttrRowCount, results.NumberOfElements)

	return results, nil
}

// logInfo logs at info level with a fresh operation correlation id.
func (s GatheringService) logInfo(msg string, args ...any) {
	if s.logger != nil {
		args = append([]any{logAttrOperationID, uuid.New().String()}, args...)
		s.logger.Info(msg, args...)
	}
}

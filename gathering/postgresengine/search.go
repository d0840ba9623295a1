package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/relaxtogether/gathering-service-go/gathering"
	"github.com/relaxtogether/gathering-service-go/gathering/postgresengine/internal/adapters"
)

type sqlQueryString = string

// SearchGatherings retrieves one page of ongoing gatherings matching the
// given condition, each with its aggregated participant count.
//
// The requested sort is resolved per resolveSort; gatherings whose start
// time already passed always sort after upcoming ones. HasNext on the
// returned slice is the documented exactly-full-page approximation.
func (s Store) SearchGatherings(
	ctx context.Context,
	cond gathering.SearchCondition,
	sort gathering.SortSpec,
	page gathering.PageRequest,
) (gathering.Slice[gathering.SearchResult], error) {

	var empty gathering.Slice[gathering.SearchResult]

	predicates, predicateErr := searchPredicates(cond)
	if predicateErr != nil {
		return empty, predicateErr
	}

	selectStmt := s.gatheringProjection().
		Where(predicates...).
		Order(searchOrdering(sort, s.clock().UTC())...).
		Offset(page.Offset()).
		Limit(page.Limit())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return empty, errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	results, duration, queryErr := s.fetchGatheringRows(ctx, sqlQuery, logActionSearch)
	if queryErr != nil {
		return empty, queryErr
	}

	s.logOperation(
		logMsgSearchCompleted,
		logAttrRowCount, len(results),
		logAttrDurationMS, s.durationToMilliseconds(duration))

	return gathering.BuildSlice(results, page), nil
}

// FindHostedGatherings retrieves one page of a host's ongoing gatherings
// with participant counts, newest created first.
func (s Store) FindHostedGatherings(
	ctx context.Context,
	hostUserID int64,
	page gathering.PageRequest,
) (gathering.Slice[gathering.HostedResult], error) {

	var empty gathering.Slice[gathering.HostedResult]

	selectStmt := s.gatheringProjection().
		Where(
			goqu.I(colGatheringHostUserID).Eq(hostUserID),
			isOngoing(),
		).
		Order(goqu.I(colGatheringCreatedDate).Desc()).
		Offset(page.Offset()).
		Limit(page.Limit())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return empty, errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	results, duration, queryErr := s.fetchGatheringRows(ctx, sqlQuery, logActionHostedList)
	if queryErr != nil {
		return empty, queryErr
	}

	s.logOperation(
		logMsgHostedListCompleted,
		logAttrRowCount, len(results),
		logAttrDurationMS, s.durationToMilliseconds(duration))

	return gathering.BuildSlice(results, page), nil
}

// gatheringProjection is the shared shape of the gathering listings: the
// gathering columns joined with the participation rows, grouped so each
// gathering appears once with its participant count.
// Ordering by created_date is covered by grouping on the primary key.
func (s Store) gatheringProjection() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(goqu.T(s.table(tableGatherings)).As(aliasGathering)).
		Select(
			goqu.I(colGatheringID),
			goqu.I(colGatheringType),
			goqu.I(colGatheringName),
			goqu.I(colGatheringDateTime),
			goqu.I(colGatheringRegistrationEnd),
			goqu.I(colGatheringLocation),
			goqu.COUNT(goqu.I(colUserGatheringID)).As(aliasParticipantCount),
			goqu.I(colGatheringCapacity),
			goqu.I(colGatheringImageURL),
			goqu.I(colGatheringHostUserID),
		).
		LeftJoin(
			goqu.T(s.table(tableUserGatherings)).As(aliasUserGathering),
			goqu.On(goqu.I(colUserGatheringGatheringID).Eq(goqu.I(colGatheringID))),
		).
		GroupBy(
			goqu.I(colGatheringID),
			goqu.I(colGatheringType),
			goqu.I(colGatheringName),
			goqu.I(colGatheringDateTime),
			goqu.I(colGatheringRegistrationEnd),
			goqu.I(colGatheringLocation),
			goqu.I(colGatheringCapacity),
			goqu.I(colGatheringImageURL),
			goqu.I(colGatheringHostUserID),
		)
}

// fetchGatheringRows executes a listing query and scans its rows.
func (s Store) fetchGatheringRows(ctx context.Context, sqlQuery sqlQueryString, action string) (
	[]gathering.SearchResult,
	time.Duration,
	error,
) {

	rows, duration, queryErr := s.executeQuery(ctx, sqlQuery, action)
	if queryErr != nil {
		return nil, duration, queryErr
	}
	defer s.closeRows(rows)

	results := make([]gathering.SearchResult, 0)

	for rows.Next() {
		var row gathering.SearchResult
		var typeText, locationText string

		scanErr := rows.Scan(
			&row.ID,
			&typeText,
			&row.Name,
			&row.DateTime,
			&row.RegistrationEnd,
			&locationText,
			&row.ParticipantCount,
			&row.Capacity,
			&row.ImageURL,
			&row.HostUserID,
		)
		if scanErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, duration, errors.Join(gathering.ErrScanningRowFailed, scanErr)
		}

		row.Type = gathering.Type(typeText)
		row.Location = gathering.Location(locationText)
		results = append(results, row)
	}

	return results, duration, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (s Store) executeQuery(ctx context.Context, sqlQuery sqlQueryString, action string) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, action, duration)

	if queryErr != nil {
		s.logError(logMsgQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, duration, errors.Join(gathering.ErrQueryingFailed, queryErr)
	}

	return rows, duration, nil
}

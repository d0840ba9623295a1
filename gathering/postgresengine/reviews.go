package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/relaxtogether/gathering-service-go/gathering"
)

// SaveReview persists one review. The single insert is atomic; callers run
// their validation before calling this.
func (s Store) SaveReview(ctx context.Context, review gathering.Review) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.table(tableReviews)).
		Rows(goqu.Record{
			fieldUserID:      review.UserID,
			fieldGatheringID: review.GatheringID,
			fieldScore:       review.Score,
			fieldComment:     review.Comment,
			fieldCreatedDate: review.CreatedDate,
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	_, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, logActionInsert, duration)

	if execErr != nil {
		s.logError(logMsgExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return errors.Join(gathering.ErrExecutingFailed, execErr)
	}

	s.logOperation(
		logMsgReviewSaved,
		logAttrGatheringID, review.GatheringID,
		logAttrUserID, review.UserID,
		logAttrDurationMS, s.durationToMilliseconds(duration))

	return nil
}

// FindReviewsByUserID retrieves one page of the reviews a user wrote,
// newest first.
func (s Store) FindReviewsByUserID(
	ctx context.Context,
	userID int64,
	page gathering.PageRequest,
) (gathering.Slice[gathering.ReviewDetails], error) {

	return s.fetchReviewPage(
		ctx,
		[]goqu.Expression{goqu.I(colReviewUserID).Eq(userID)},
		page,
	)
}

// FindReviewsByGatheringID retrieves one page of a gathering's reviews,
// newest first, together with the gathering-level score summary.
//
// A gathering without reviews (or an unknown gathering id) yields an empty
// page and a zero summary; reads stay lenient, only writes check existence.
func (s Store) FindReviewsByGatheringID(
	ctx context.Context,
	gatheringID int64,
	page gathering.PageRequest,
) (gathering.GatheringReviews, error) {

	var empty gathering.GatheringReviews

	reviews, fetchErr := s.fetchReviewPage(
		ctx,
		[]goqu.Expression{goqu.I(colReviewGatheringID).Eq(gatheringID)},
		page,
	)
	if fetchErr != nil {
		return empty, fetchErr
	}

	summaryStmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(s.table(tableReviews)).As(aliasReview)).
		Select(
			goqu.COUNT(goqu.I(colReviewID)),
			goqu.COALESCE(goqu.AVG(goqu.I(colReviewScore)), 0),
		).
		Where(goqu.I(colReviewGatheringID).Eq(gatheringID))

	sqlQuery, _, toSQLErr := summaryStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return empty, errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := s.executeQuery(ctx, sqlQuery, logActionScoreCounts)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.closeRows(rows)

	result := gathering.GatheringReviews{Reviews: reviews}

	if rows.Next() {
		if scanErr := rows.Scan(&result.TotalCount, &result.AverageScore); scanErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return empty, errors.Join(gathering.ErrScanningRowFailed, scanErr)
		}
	}

	return result, nil
}

// FindReviewsByConditions retrieves one page of reviews matching the given
// condition, newest first. Unset condition fields contribute no predicate;
// unknown type text is a lookup failure, unknown location text is dropped.
func (s Store) FindReviewsByConditions(
	ctx context.Context,
	cond gathering.ReviewSearchCondition,
	page gathering.PageRequest,
) (gathering.Slice[gathering.ReviewDetails], error) {

	var empty gathering.Slice[gathering.ReviewDetails]

	predicates, predicateErr := reviewPredicates(cond)
	if predicateErr != nil {
		return empty, predicateErr
	}

	return s.fetchReviewPage(ctx, predicates, page)
}

// FindReviewScoreCounts aggregates the review score histogram over the
// gatherings selected by category and type text. Empty texts select all
// reviews; typeDetailText narrows to one type and wins over typeText.
func (s Store) FindReviewScoreCounts(
	ctx context.Context,
	typeText string,
	typeDetailText string,
) (gathering.ScoreCounts, error) {

	var empty gathering.ScoreCounts

	typePredicate, predicateErr := scoreCountsTypePredicate(typeText, typeDetailText)
	if predicateErr != nil {
		return empty, predicateErr
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(s.table(tableReviews)).As(aliasReview)).
		Join(
			goqu.T(s.table(tableGatherings)).As(aliasGathering),
			goqu.On(goqu.I(colReviewGatheringID).Eq(goqu.I(colGatheringID))),
		).
		Select(
			goqu.COUNT(goqu.I(colReviewID)),
			goqu.COALESCE(goqu.AVG(goqu.I(colReviewScore)), 0),
			scoreBucket(1),
			scoreBucket(2),
			scoreBucket(3),
			scoreBucket(4),
			scoreBucket(5),
		)

	if typePredicate != nil {
		selectStmt = selectStmt.Where(typePredicate)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return empty, errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, duration, queryErr := s.executeQuery(ctx, sqlQuery, logActionScoreCounts)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.closeRows(rows)

	var counts gathering.ScoreCounts

	if rows.Next() {
		scanErr := rows.Scan(
			&counts.TotalCount,
			&counts.AverageScore,
			&counts.OneStar,
			&counts.TwoStars,
			&counts.ThreeStars,
			&counts.FourStars,
			&counts.FiveStars,
		)
		if scanErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return empty, errors.Join(gathering.ErrScanningRowFailed, scanErr)
		}
	}

	s.logOperation(
		logMsgScoreCountsCompleted,
		logAttrRowCount, counts.TotalCount,
		logAttrDurationMS, s.durationToMilliseconds(duration))

	return counts, nil
}

// reviewProjection is the shared shape of the review listings: reviews
// joined with their gathering and their author.
func (s Store) reviewProjection() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(goqu.T(s.table(tableReviews)).As(aliasReview)).
		Join(
			goqu.T(s.table(tableGatherings)).As(aliasGathering),
			goqu.On(goqu.I(colReviewGatheringID).Eq(goqu.I(colGatheringID))),
		).
		Join(
			goqu.T(s.table(tableUsers)).As(aliasUser),
			goqu.On(goqu.I(colReviewUserID).Eq(goqu.I(colUserID))),
		).
		Select(
			goqu.I(colReviewID),
			goqu.I(colReviewScore),
			goqu.I(colReviewComment),
			goqu.I(colReviewCreatedDate),
			goqu.I(colGatheringID),
			goqu.I(colGatheringType),
			goqu.I(colGatheringName),
			goqu.I(colGatheringLocation),
			goqu.I(colGatheringDateTime),
			goqu.I(colUserID),
			goqu.I(colUserName),
			goqu.I(colUserProfileImage),
		)
}

// fetchReviewPage executes the review projection with the given predicates
// and pages through it newest first.
func (s Store) fetchReviewPage(
	ctx context.Context,
	predicates []goqu.Expression,
	page gathering.PageRequest,
) (gathering.Slice[gathering.ReviewDetails], error) {

	var empty gathering.Slice[gathering.ReviewDetails]

	selectStmt := s.reviewProjection().
		Where(predicates...).
		Order(goqu.I(colReviewCreatedDate).Desc()).
		Offset(page.Offset()).
		Limit(page.Limit())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return empty, errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, duration, queryErr := s.executeQuery(ctx, sqlQuery, logActionReviewList)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.closeRows(rows)

	results := make([]gathering.ReviewDetails, 0)

	for rows.Next() {
		var row gathering.ReviewDetails
		var typeText, locationText string

		scanErr := rows.Scan(
			&row.ReviewID,
			&row.Score,
			&row.Comment,
			&row.CreatedDate,
			&row.GatheringID,
			&typeText,
			&row.GatheringName,
			&locationText,
			&row.GatheringDateTime,
			&row.UserID,
			&row.UserName,
			&row.UserProfileImage,
		)
		if scanErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return empty, errors.Join(gathering.ErrScanningRowFailed, scanErr)
		}

		row.GatheringType = gathering.Type(typeText)
		row.GatheringLocation = gathering.Location(locationText)
		results = append(results, row)
	}

	s.logOperation(
		logMsgReviewListCompleted,
		logAttrRowCount, len(results),
		logAttrDurationMS, s.durationToMilliseconds(duration))

	return gathering.BuildSlice(results, page), nil
}

// reviewPredicates translates a review search condition into predicates
// over the review projection.
func reviewPredicates(cond gathering.ReviewSearchCondition) ([]goqu.Expression, error) {
	predicates := make([]goqu.Expression, 0)

	categoryExpr, err := categoryPredicate(cond.GatheringType)
	if err != nil {
		return nil, err
	}
	if categoryExpr != nil {
		predicates = append(predicates, categoryExpr)
	}

	if locationExpr := locationPredicate(cond.GatheringLocation); locationExpr != nil {
		predicates = append(predicates, locationExpr)
	}

	if dateExpr := datePredicate(cond.GatheringDate); dateExpr != nil {
		predicates = append(predicates, dateExpr)
	}

	if !cond.RegistrationEnd.IsZero() {
		predicates = append(predicates, goqu.I(colGatheringRegistrationEnd).Gte(cond.RegistrationEnd))
	}

	if cond.GatheringID != 0 {
		predicates = append(predicates, goqu.I(colReviewGatheringID).Eq(cond.GatheringID))
	}

	if cond.UserID != 0 {
		predicates = append(predicates, goqu.I(colReviewUserID).Eq(cond.UserID))
	}

	return predicates, nil
}

// scoreCountsTypePredicate selects the gatherings whose reviews enter the
// histogram. The detail text narrows to one type; otherwise the category
// text applies with umbrella expansion; both empty means no restriction.
func scoreCountsTypePredicate(typeText string, typeDetailText string) (goqu.Expression, error) {
	if typeDetailText != "" {
		gatheringType, err := gathering.TypeFromText(typeDetailText)
		if err != nil {
			return nil, err
		}

		return goqu.I(colGatheringType).Eq(string(gatheringType)), nil
	}

	return categoryPredicate(typeText)
}

// scoreBucket counts the reviews with exactly the given score.
func scoreBucket(score int) exp.Expression {
	return goqu.COALESCE(
		goqu.SUM(goqu.Case().When(goqu.I(colReviewScore).Eq(score), 1).Else(0)),
		0,
	)
}

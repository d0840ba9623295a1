package postgresengine

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/relaxtogether/gathering-service-go/gathering"
	"github.com/relaxtogether/gathering-service-go/gathering/postgresengine/internal/adapters"
)

// queryer is satisfied by the adapter itself and by a running transaction.
type queryer interface {
	Query(ctx context.Context, query string) (adapters.DBRows, error)
}

// FindUserByEmail resolves a user by their login email.
// Returns gathering.ErrUserNotFound when no such user exists.
func (s Store) FindUserByEmail(ctx context.Context, email string) (gathering.User, error) {
	var empty gathering.User

	selectStmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(s.table(tableUsers)).As(aliasUser)).
		Select(
			goqu.I(colUserID),
			goqu.I(aliasUser+"."+fieldEmail),
			goqu.I(colUserName),
			goqu.I(aliasUser+"."+fieldCompanyName),
			goqu.I(colUserProfileImage),
		).
		Where(goqu.I(aliasUser + "." + fieldEmail).Eq(email))

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return empty, errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := s.executeQuery(ctx, sqlQuery, logActionLookup)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return empty, gathering.ErrUserNotFound
	}

	var user gathering.User
	scanErr := rows.Scan(&user.ID, &user.Email, &user.Name, &user.CompanyName, &user.ProfileImage)
	if scanErr != nil {
		s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
		return empty, errors.Join(gathering.ErrScanningRowFailed, scanErr)
	}

	return user, nil
}

// FindGatheringByID resolves a gathering by its id.
// Returns gathering.ErrGatheringNotFound when no such gathering exists.
func (s Store) FindGatheringByID(ctx context.Context, id int64) (gathering.Gathering, error) {
	return s.findGathering(ctx, s.db, id)
}

// SaveGathering inserts a new gathering together with the host's own
// participation row in one transaction and returns the stored id.
// The host joins their gathering on creation.
func (s Store) SaveGathering(ctx context.Context, g gathering.Gathering) (int64, error) {
	tx, beginErr := s.db.Begin(ctx)
	if beginErr != nil {
		return 0, errors.Join(gathering.ErrExecutingFailed, beginErr)
	}

	gatheringID, insertErr := s.insertGathering(ctx, tx, g)
	if insertErr != nil {
		s.rollback(ctx, tx)
		return 0, insertErr
	}

	participation := gathering.UserGathering{
		UserID:      g.HostUserID,
		GatheringID: gatheringID,
		JoinedAt:    g.CreatedDate,
	}
	if joinErr := s.insertParticipation(ctx, tx, participation); joinErr != nil {
		s.rollback(ctx, tx)
		return 0, joinErr
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return 0, errors.Join(gathering.ErrExecutingFailed, commitErr)
	}

	s.logOperation(logMsgGatheringSaved, logAttrGatheringID, gatheringID, logAttrUserID, g.HostUserID)

	return gatheringID, nil
}

// AddParticipant registers a user for a gathering.
//
// The registration-deadline and capacity checks and the insert run in one
// transaction; concurrent joins may still oversubscribe by whatever the
// isolation level permits, which is acceptable for the relaxed participant
// count guarantees.
func (s Store) AddParticipant(ctx context.Context, userID int64, gatheringID int64) error {
	now := s.clock().UTC()

	tx, beginErr := s.db.Begin(ctx)
	if beginErr != nil {
		return errors.Join(gathering.ErrExecutingFailed, beginErr)
	}

	g, findErr := s.findGathering(ctx, tx, gatheringID)
	if findErr != nil {
		s.rollback(ctx, tx)
		return findErr
	}

	if now.After(g.RegistrationEnd) {
		s.rollback(ctx, tx)
		return gathering.ErrRegistrationClosed
	}

	count, countErr := s.countParticipants(ctx, tx, gatheringID)
	if countErr != nil {
		s.rollback(ctx, tx)
		return countErr
	}

	if count >= int64(g.Capacity) {
		s.rollback(ctx, tx)
		return gathering.ErrGatheringFull
	}

	participation := gathering.UserGathering{
		UserID:      userID,
		GatheringID: gatheringID,
		JoinedAt:    now,
	}
	if insertErr := s.insertParticipation(ctx, tx, participation); insertErr != nil {
		s.rollback(ctx, tx)
		return insertErr
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return errors.Join(gathering.ErrExecutingFailed, commitErr)
	}

	s.logOperation(logMsgParticipantAdded, logAttrGatheringID, gatheringID, logAttrUserID, userID)

	return nil
}

func (s Store) findGathering(ctx context.Context, q queryer, id int64) (gathering.Gathering, error) {
	var empty gathering.Gathering

	selectStmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(s.table(tableGatherings)).As(aliasGathering)).
		Select(
			goqu.I(colGatheringID),
			goqu.I(colGatheringType),
			goqu.I(colGatheringName),
			goqu.I(colGatheringDateTime),
			goqu.I(colGatheringRegistrationEnd),
			goqu.I(colGatheringLocation),
			goqu.I(colGatheringCapacity),
			goqu.I(colGatheringImageURL),
			goqu.I(colGatheringHostUserID),
			goqu.I(colGatheringStatus),
			goqu.I(colGatheringCreatedDate),
		).
		Where(goqu.I(colGatheringID).Eq(id))

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return empty, errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := q.Query(ctx, sqlQuery)
	if queryErr != nil {
		s.logError(logMsgQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return empty, errors.Join(gathering.ErrQueryingFailed, queryErr)
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return empty, gathering.ErrGatheringNotFound
	}

	var g gathering.Gathering
	var typeText, locationText, statusText string

	scanErr := rows.Scan(
		&g.ID,
		&typeText,
		&g.Name,
		&g.DateTime,
		&g.RegistrationEnd,
		&locationText,
		&g.Capacity,
		&g.ImageURL,
		&g.HostUserID,
		&statusText,
		&g.CreatedDate,
	)
	if scanErr != nil {
		s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
		return empty, errors.Join(gathering.ErrScanningRowFailed, scanErr)
	}

	g.Type = gathering.Type(typeText)
	g.Location = gathering.Location(locationText)
	g.Status = gathering.Status(statusText)

	return g, nil
}

func (s Store) insertGathering(ctx context.Context, tx adapters.DBTx, g gathering.Gathering) (int64, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.table(tableGatherings)).
		Rows(goqu.Record{
			fieldType:            string(g.Type),
			fieldName:            g.Name,
			fieldDateTime:        g.DateTime,
			fieldRegistrationEnd: g.RegistrationEnd,
			fieldLocation:        string(g.Location),
			fieldCapacity:        g.Capacity,
			fieldImageURL:        g.ImageURL,
			fieldHostUserID:      g.HostUserID,
			fieldStatus:          string(g.Status),
			fieldCreatedDate:     g.CreatedDate,
		}).
		Returning(fieldID)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return 0, errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := tx.Query(ctx, sqlQuery)
	if queryErr != nil {
		s.logError(logMsgExecFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return 0, errors.Join(gathering.ErrExecutingFailed, queryErr)
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return 0, gathering.ErrExecutingFailed
	}

	var gatheringID int64
	if scanErr := rows.Scan(&gatheringID); scanErr != nil {
		s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
		return 0, errors.Join(gathering.ErrScanningRowFailed, scanErr)
	}

	return gatheringID, nil
}

func (s Store) insertParticipation(ctx context.Context, tx adapters.DBTx, participation gathering.UserGathering) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.table(tableUserGatherings)).
		Rows(goqu.Record{
			fieldUserID:      participation.UserID,
			fieldGatheringID: participation.GatheringID,
			fieldJoinedAt:    participation.JoinedAt,
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := tx.Exec(ctx, sqlQuery); execErr != nil {
		s.logError(logMsgExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return errors.Join(gathering.ErrExecutingFailed, execErr)
	}

	return nil
}

func (s Store) countParticipants(ctx context.Context, q queryer, gatheringID int64) (int64, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(s.table(tableUserGatherings)).As(aliasUserGathering)).
		Select(goqu.COUNT(goqu.I(colUserGatheringID))).
		Where(goqu.I(colUserGatheringGatheringID).Eq(gatheringID))

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return 0, errors.Join(gathering.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := q.Query(ctx, sqlQuery)
	if queryErr != nil {
		s.logError(logMsgQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return 0, errors.Join(gathering.ErrQueryingFailed, queryErr)
	}
	defer s.closeRows(rows)

	var count int64
	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return 0, errors.Join(gathering.ErrScanningRowFailed, scanErr)
		}
	}

	return count, nil
}

// rollback rolls a transaction back and logs when that itself fails.
func (s Store) rollback(ctx context.Context, tx adapters.DBTx) {
	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgRollbackFailed, logAttrError, rollbackErr.Error())
		}
	}
}

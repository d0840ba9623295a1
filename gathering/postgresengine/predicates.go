package postgresengine

import (
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/relaxtogether/gathering-service-go/gathering"
)

// searchPredicates translates a search condition into the conjunction of
// predicates for the gathering listing. Unset condition fields contribute
// nothing; the ongoing-status constraint is always present.
func searchPredicates(cond gathering.SearchCondition) ([]goqu.Expression, error) {
	predicates := []goqu.Expression{isOngoing()}

	categoryExpr, err := categoryPredicate(cond.Category)
	if err != nil {
		return nil, err
	}
	if categoryExpr != nil {
		predicates = append(predicates, categoryExpr)
	}

	if locationExpr := locationPredicate(cond.Location); locationExpr != nil {
		predicates = append(predicates, locationExpr)
	}

	if dateExpr := datePredicate(cond.Date); dateExpr != nil {
		predicates = append(predicates, dateExpr)
	}

	if cond.HostUserID != 0 {
		predicates = append(predicates, goqu.I(colGatheringHostUserID).Eq(cond.HostUserID))
	}

	return predicates, nil
}

// isOngoing restricts listings to gatherings that are open.
func isOngoing() goqu.Expression {
	return goqu.I(colGatheringStatus).Eq(string(gathering.StatusOngoing))
}

// categoryPredicate resolves category text to a type predicate.
//
// Text naming the dallaemfit umbrella expands to an IN over its member
// types. Any other non-empty text must resolve to exactly one type;
// unknown text propagates ErrUnknownGatheringType to the caller.
func categoryPredicate(category string) (goqu.Expression, error) {
	if category == "" {
		return nil, nil
	}

	if strings.EqualFold(category, gathering.CategoryDallaemfit) {
		memberTypes := gathering.DallaemfitTypes()
		values := make([]string, len(memberTypes))
		for i, memberType := range memberTypes {
			values[i] = string(memberType)
		}

		return goqu.I(colGatheringType).In(values), nil
	}

	gatheringType, err := gathering.TypeFromText(category)
	if err != nil {
		return nil, err
	}

	return goqu.I(colGatheringType).Eq(string(gatheringType)), nil
}

// locationPredicate resolves location text to a location predicate.
// Text that does not resolve is treated as "no filter", not as an error.
func locationPredicate(locationText string) goqu.Expression {
	if locationText == "" {
		return nil
	}

	location, err := gathering.LocationFromText(locationText)
	if err != nil {
		return nil
	}

	return goqu.I(colGatheringLocation).Eq(string(location))
}

// datePredicate matches gatherings on the calendar day of the given instant,
// interpreted in the instant's own time zone.
//
// The lower bound is midnight of that day; the upper bound is the raw
// instant plus one day, not midnight plus one day.
func datePredicate(date time.Time) goqu.Expression {
	if date.IsZero() {
		return nil
	}

	year, month, day := date.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	upperBound := date.AddDate(0, 0, 1)

	return goqu.I(colGatheringDateTime).Between(goqu.Range(startOfDay, upperBound))
}

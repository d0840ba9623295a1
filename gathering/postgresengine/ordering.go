package postgresengine

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/relaxtogether/gathering-service-go/gathering"
)

// searchOrdering produces the complete ordering for the gathering search:
// past gatherings always sort after future ones, the requested sort is
// applied next, and an ascending date tiebreak keeps the order deterministic.
func searchOrdering(sort gathering.SortSpec, now time.Time) []exp.OrderedExpression {
	return []exp.OrderedExpression{
		pastGatheringsLast(now),
		resolveSort(sort),
		goqu.I(colGatheringDateTime).Asc(),
	}
}

// pastGatheringsLast ranks gatherings whose start time already passed (1)
// after all upcoming ones (0).
func pastGatheringsLast(now time.Time) exp.OrderedExpression {
	return goqu.Case().
		When(goqu.I(colGatheringDateTime).Lt(now), 1).
		Else(0).
		Asc()
}

// resolveSort maps the first recognized entry of the requested sort spec to
// an ordering expression. Anything else falls back to ascending
// registration-end time.
func resolveSort(sort gathering.SortSpec) exp.OrderedExpression {
	for _, order := range sort {
		switch order.Field {
		case gathering.SortByRegistrationEnd:
			if order.Desc {
				return goqu.I(colGatheringRegistrationEnd).Desc()
			}

			return goqu.I(colGatheringRegistrationEnd).Asc()

		case gathering.SortByParticipantCount:
			if order.Desc {
				return goqu.COUNT(goqu.I(colUserGatheringID)).Desc()
			}

			return goqu.COUNT(goqu.I(colUserGatheringID)).Asc()
		}
	}

	return goqu.I(colGatheringRegistrationEnd).Asc()
}

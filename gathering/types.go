package gathering

import (
	"strings"
)

// Type identifies the kind of activity a gathering offers.
// The stored value is the enum name; FromText maps the client-facing text.
type Type string

const (
	TypeOfficeStretching Type = "OFFICE_STRETCHING"
	TypeMindfulness      Type = "MINDFULNESS"
	TypeWorkation        Type = "WORKATION"
)

// CategoryDallaemfit is the umbrella category grouping the wellness types.
// Searching for it matches every type in DallaemfitTypes.
const CategoryDallaemfit = "dallaemfit"

var typeTexts = map[Type]string{
	TypeOfficeStretching: "office-stretching",
	TypeMindfulness:      "mindfulness",
	TypeWorkation:        "workation",
}

var typeParentCategories = map[Type]string{
	TypeOfficeStretching: CategoryDallaemfit,
	TypeMindfulness:      CategoryDallaemfit,
	TypeWorkation:        "workation",
}

// Text returns the client-facing text for the type.
func (t Type) Text() string {
	return typeTexts[t]
}

// ParentCategory returns the umbrella category the type belongs to.
func (t Type) ParentCategory() string {
	return typeParentCategories[t]
}

// TypeFromText resolves client-facing text to a Type.
// Matching is case-insensitive; unknown text yields ErrUnknownGatheringType.
func TypeFromText(text string) (Type, error) {
	for t, tt := range typeTexts {
		if strings.EqualFold(tt, text) {
			return t, nil
		}
	}

	return "", ErrUnknownGatheringType
}

// DallaemfitTypes returns the member types of the dallaemfit umbrella.
func DallaemfitTypes() []Type {
	return []Type{TypeOfficeStretching, TypeMindfulness}
}

// Location is the neighborhood a gathering takes place in.
type Location string

const (
	LocationHongdae Location = "HONGDAE"
	LocationKondae  Location = "KONDAE"
	LocationSinrim  Location = "SINRIM"
	LocationEuljiro Location = "EULJIRO"
)

var locationTexts = map[Location]string{
	LocationHongdae: "hongdae",
	LocationKondae:  "kondae",
	LocationSinrim:  "sinrim",
	LocationEuljiro: "euljiro",
}

// Text returns the client-facing text for the location.
func (l Location) Text() string {
	return locationTexts[l]
}

// LocationFromText resolves client-facing text to a Location.
// Matching is case-insensitive; unknown text yields ErrUnknownLocation.
func LocationFromText(text string) (Location, error) {
	for l, lt := range locationTexts {
		if strings.EqualFold(lt, text) {
			return l, nil
		}
	}

	return "", ErrUnknownLocation
}

// Status is the lifecycle state of a gathering.
// Only ongoing gatherings show up in search and hosted listings.
type Status string

const (
	StatusOngoing  Status = "ONGOING"
	StatusCanceled Status = "CANCELED"
	StatusClosed   Status = "CLOSED"
)

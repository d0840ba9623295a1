package gathering

import (
	"time"
)

// Gathering is a scheduled group event with a capacity and a registration deadline.
//
// While its properties are exported, new instances should be constructed with
// BuildGathering, which enforces the registration-deadline invariant.
type Gathering struct {
	ID              int64
	Type            Type
	Name            string
	DateTime        time.Time
	RegistrationEnd time.Time
	Location        Location
	Capacity        int
	ImageURL        string
	HostUserID      int64
	Status          Status
	CreatedDate     time.Time
}

// BuildGathering is a factory method for Gathering.
//
// The registration deadline must lie strictly before the gathering start,
// otherwise ErrRegistrationEndNotBeforeStart is returned.
// New gatherings always start out with StatusOngoing.
func BuildGathering(
	gatheringType Type,
	name string,
	dateTime time.Time,
	registrationEnd time.Time,
	location Location,
	capacity int,
	imageURL string,
	hostUserID int64,
	createdDate time.Time,
) (Gathering, error) {

	if !registrationEnd.Before(dateTime) {
		return Gathering{}, ErrRegistrationEndNotBeforeStart
	}

	return Gathering{
		Type:            gatheringType,
		Name:            name,
		DateTime:        dateTime,
		RegistrationEnd: registrationEnd,
		Location:        location,
		Capacity:        capacity,
		ImageURL:        imageURL,
		HostUserID:      hostUserID,
		Status:          StatusOngoing,
		CreatedDate:     createdDate,
	}, nil
}

// User is referenced by gatherings (as host) and reviews (as author).
// Email is the login identifier and is unique.
type User struct {
	ID           int64
	Email        string
	Name         string
	CompanyName  string
	ProfileImage string
}

// UserGathering links a user to a gathering they registered for.
// The existence of a row is the participation; the participant count of a
// gathering is the number of its rows.
type UserGathering struct {
	ID          int64
	UserID      int64
	GatheringID int64
	JoinedAt    time.Time
}

package model

import "fmt"

// RestrictionCode identifies why a player cannot be deleted
type RestrictionCode string

const (
	RestrictionHasMatches      RestrictionCode = "HAS_MATCHES"
	RestrictionHasTournaments  RestrictionCode = "HAS_TOURNAMENTS"
	RestrictionHasReservations RestrictionCode = "HAS_RESERVATIONS"
)

// RestrictionDetails carries the dependent entity counts
type RestrictionDetails struct {
	MatchesCount      int `json:"matches_count,omitempty"`
	TournamentsCount  int `json:"tournaments_count,omitempty"`
	ReservationsCount int `json:"reservations_count,omitempty"`
}

// DeleteRestrictionError is returned when a player is still referenced elsewhere
type DeleteRestrictionError struct {
	Code    RestrictionCode     `json:"code"`
	Message string              `json:"message"`
	Details *RestrictionDetails `json:"details,omitempty"`
}

func (e *DeleteRestrictionError) Error() string {
	return e.Message
}

// Count returns the number of dependents behind the restriction code
func (e *DeleteRestrictionError) Count() int {
	if e.Details == nil {
		return 0
	}
	switch e.Code {
	case RestrictionHasMatches:
		return e.Details.MatchesCount
	case RestrictionHasTournaments:
		return e.Details.TournamentsCount
	case RestrictionHasReservations:
		return e.Details.ReservationsCount
	}
	return 0
}

// Dependencies counts the entities that reference a player
type Dependencies struct {
	Matches      int `json:"matches"`
	Tournaments  int `json:"tournaments"`
	Reservations int `json:"reservations"`
}

// Restriction returns the error that blocks deletion, or nil when nothing references the player.
// Matches take precedence over tournaments, tournaments over reservations.
func (d Dependencies) Restriction() *DeleteRestrictionError {
	switch {
	case d.Matches > 0:
		return &DeleteRestrictionError{
			Code:    RestrictionHasMatches,
			Message: fmt.Sprintf("player cannot be deleted: %d associated matches", d.Matches),
			Details: &RestrictionDetails{MatchesCount: d.Matches},
		}
	case d.Tournaments > 0:
		return &DeleteRestrictionError{
			Code:    RestrictionHasTournaments,
			Message: fmt.Sprintf("player cannot be deleted: %d associated tournaments", d.Tournaments),
			Details: &RestrictionDetails{TournamentsCount: d.Tournaments},
		}
	case d.Reservations > 0:
		return &DeleteRestrictionError{
			Code:    RestrictionHasReservations,
			Message: fmt.Sprintf("player cannot be deleted: %d associated reservations", d.Reservations),
			Details: &RestrictionDetails{ReservationsCount: d.Reservations},
		}
	}
	return nil
}

// Package availability decides which rooms of a hotel can still be booked
// for a queried date window.
package availability

import (
	"staymate/internal/shared/config"
	"staymate/internal/shared/upstream"
)

// FilterAvailable returns the rooms of hotelID not occupied by any booking in
// existing. The bookings must already be scoped to the queried date range by
// the caller; every booking in the input counts as occupying its room for the
// whole window. Input order is preserved and inputs are never mutated.
func FilterAvailable(allRooms []upstream.Room, existing []upstream.Booking, hotelID int64) []upstream.Room {
	occupied := make(map[int64]struct{}, len(existing))
	for _, booking := range existing {
		if booking.HotelID == hotelID {
			occupied[booking.RoomID] = struct{}{}
		}
	}

	available := make([]upstream.Room, 0, len(allRooms))
	for _, room := range allRooms {
		if _, taken := occupied[room.ID.RoomID]; !taken {
			available = append(available, room)
		}
	}
	return available
}

// OnLookupFailure applies the configured policy when the overlap lookup
// errored: fail-open serves the unfiltered inventory, fail-closed serves
// nothing.
func OnLookupFailure(mode config.AvailabilityFailMode, allRooms []upstream.Room) []upstream.Room {
	if mode == config.FailClosed {
		return []upstream.Room{}
	}
	return allRooms
}

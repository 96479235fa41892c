package availability

import (
	"testing"

	"staymate/internal/shared/config"
	"staymate/internal/shared/upstream"
)

func room(hotelID, roomID int64, roomType string) upstream.Room {
	return upstream.Room{
		ID:       upstream.RoomID{HotelID: hotelID, RoomID: roomID},
		RoomType: roomType,
		Status:   upstream.RoomStatusAvailable,
	}
}

func TestFilterAvailableExcludesOccupiedRooms(t *testing.T) {
	rooms := []upstream.Room{
		room(1, 101, "DELUXE"),
		room(1, 102, "DELUXE"),
		room(1, 103, "SUITE"),
	}
	bookings := []upstream.Booking{
		{ID: 1, HotelID: 1, RoomID: 102, Status: upstream.BookingStatusConfirmed},
	}

	got := FilterAvailable(rooms, bookings, 1)
	if len(got) != 2 {
		t.Fatalf("expected 2 available rooms, got %d", len(got))
	}
	if got[0].ID.RoomID != 101 || got[1].ID.RoomID != 103 {
		t.Errorf("expected rooms 101 and 103 in inventory order, got %v", got)
	}
}

func TestFilterAvailableIgnoresOtherHotels(t *testing.T) {
	rooms := []upstream.Room{room(1, 101, "DELUXE")}
	bookings := []upstream.Booking{
		// Same room id, different hotel: must not block room 101 of hotel 1.
		{ID: 1, HotelID: 2, RoomID: 101},
	}

	got := FilterAvailable(rooms, bookings, 1)
	if len(got) != 1 {
		t.Fatalf("expected room 101 to stay available, got %v", got)
	}
}

func TestFilterAvailableNoBookings(t *testing.T) {
	rooms := []upstream.Room{room(1, 101, "DELUXE"), room(1, 102, "SUITE")}

	got := FilterAvailable(rooms, nil, 1)
	if len(got) != len(rooms) {
		t.Fatalf("expected full inventory, got %d of %d", len(got), len(rooms))
	}
}

func TestFilterAvailableDoesNotMutateInputs(t *testing.T) {
	rooms := []upstream.Room{room(1, 101, "DELUXE"), room(1, 102, "SUITE")}
	bookings := []upstream.Booking{{ID: 1, HotelID: 1, RoomID: 101}}

	FilterAvailable(rooms, bookings, 1)

	if rooms[0].ID.RoomID != 101 || rooms[1].ID.RoomID != 102 {
		t.Error("input room slice was mutated")
	}
}

func TestOnLookupFailurePolicies(t *testing.T) {
	rooms := []upstream.Room{room(1, 101, "DELUXE")}

	if got := OnLookupFailure(config.FailOpen, rooms); len(got) != 1 {
		t.Errorf("fail-open should serve the unfiltered inventory, got %v", got)
	}
	if got := OnLookupFailure(config.FailClosed, rooms); len(got) != 0 {
		t.Errorf("fail-closed should serve no rooms, got %v", got)
	}
}

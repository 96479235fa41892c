package booking

import "staymate/internal/shared/pagination"

// BookingListResponse is a paginated page of enriched bookings.
type BookingListResponse = pagination.Page[EnrichedBooking]

package domain

// BookingRequest carries the raw values of a booking submission. Every field
// is a string exactly as it leaves the form; Validate performs the parse and
// coerce step at the domain boundary.
type BookingRequest struct {
	RestaurantID    string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DateTime        string
	PartySize       string
	SpecialRequests string
}

// ValidatedRequest is a booking request that passed validation, decomposed
// into the wire fields the reservation API expects.
type ValidatedRequest struct {
	RestaurantID    int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ReservationDate string // YYYY-MM-DD
	ReservationTime string // HH:MM:SS
	PartySize       int
	SpecialRequests string
}

// Record projects the validated request into a draft ReservationRecord ready
// for the create call.
func (v ValidatedRequest) Record() ReservationRecord {
	return ReservationRecord{
		RestaurantID:    v.RestaurantID,
		CustomerName:    v.CustomerName,
		CustomerEmail:   v.CustomerEmail,
		CustomerPhone:   v.CustomerPhone,
		ReservationDate: v.ReservationDate,
		ReservationTime: v.ReservationTime,
		PartySize:       v.PartySize,
		SpecialRequests: v.SpecialRequests,
	}
}

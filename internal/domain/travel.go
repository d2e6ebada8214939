package domain

// FlightCriteria are validated flight search parameters.
type FlightCriteria struct {
	From        string  `json:"from"`       // origin IATA code, e.g. "DEL"
	To          string  `json:"to"`         // destination IATA code, e.g. "LHR"
	DepartDate  string  `json:"departDate"` // YYYY-MM-DD
	ReturnDate  string  `json:"returnDate,omitempty"`
	Adults      int     `json:"adults"`
	Children    int     `json:"children,omitempty"`
	Infants     int     `json:"infants,omitempty"`
	TravelClass string  `json:"travelClass,omitempty"` // ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST
	NonStop     bool    `json:"nonStop,omitempty"`
	Currency    string  `json:"currency,omitempty"` // ISO 4217
	MaxPrice    float64 `json:"maxPrice,omitempty"` // per traveler
	MaxResults  int     `json:"maxResults,omitempty"`
}

// HotelCriteria are validated hotel search parameters.
type HotelCriteria struct {
	CityCode     string  `json:"cityCode"`     // IATA city code, e.g. "PAR"
	CheckInDate  string  `json:"checkInDate"`  // YYYY-MM-DD
	CheckOutDate string  `json:"checkOutDate"` // YYYY-MM-DD
	Adults       int     `json:"adults"`
	Children     int     `json:"children,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	MaxPrice     float64 `json:"maxPrice,omitempty"` // per night
	MaxResults   int     `json:"maxResults,omitempty"`
}

// FlightOffer is the provider-agnostic flight result shape. Airline and
// FlightNumber come from the first segment of the first itinerary; To comes
// from the last segment, so multi-leg itineraries collapse to an overall
// origin/destination pair.
type FlightOffer struct {
	ID           string `json:"id"`
	Price        string `json:"price"`
	Currency     string `json:"currency"`
	From         string `json:"from"`
	To           string `json:"to"`
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
	Duration     string `json:"duration"` // ISO 8601, e.g. "PT2H50M"
	Airline      string `json:"airline"`
	FlightNumber string `json:"flightNumber"`
}

// HotelOffer is the provider-agnostic hotel result shape. Only the first
// offer of a hotel's offer list is surfaced.
type HotelOffer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	CityCode string `json:"cityCode"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

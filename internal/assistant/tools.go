package assistant

import (
	"github.com/pkg/errors"

	"github.com/eazymytrip/backend/internal/adapter/genai"
	"github.com/eazymytrip/backend/internal/domain"
)

// Tool names exposed to the model.
const (
	ToolSearchFlights  = "searchFlights"
	ToolSearchHotels   = "searchHotels"
	ToolConfirmBooking = "confirmBooking"
)

// toolDeclarations declares the callable tools to the model.
func toolDeclarations() []genai.Tool {
	return []genai.Tool{{
		FunctionDeclarations: []genai.FunctionDeclaration{
			{
				Name:        ToolSearchFlights,
				Description: "Search available flights between two locations",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"from": {
							Type:        genai.TypeString,
							Description: "Origin airport code, e.g. CCU, BOM",
						},
						"to": {
							Type:        genai.TypeString,
							Description: "Destination airport code, e.g. CCU, BOM",
						},
						"departDate": {
							Type:        genai.TypeString,
							Description: "Departure date in YYYY-MM-DD",
						},
						"returnDate": {
							Type:        genai.TypeString,
							Description: "Return date in YYYY-MM-DD, optional",
						},
						"adults": {
							Type:        genai.TypeNumber,
							Description: "Number of adult passengers",
						},
						"children": {
							Type:        genai.TypeNumber,
							Description: "Number of child passengers (optional)",
						},
						"infants": {
							Type:        genai.TypeNumber,
							Description: "Number of infant passengers (optional)",
						},
					},
					Required: []string{"from", "to", "departDate", "adults"},
				},
			},
			{
				Name:        ToolSearchHotels,
				Description: "Search available hotels in a city",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"cityCode": {
							Type:        genai.TypeString,
							Description: "IATA city code, e.g. PAR, BOM",
						},
						"checkInDate": {
							Type:        genai.TypeString,
							Description: "Check-in date in YYYY-MM-DD",
						},
						"checkOutDate": {
							Type:        genai.TypeString,
							Description: "Check-out date in YYYY-MM-DD",
						},
						"adults": {
							Type:        genai.TypeNumber,
							Description: "Number of adults",
						},
						"children": {
							Type:        genai.TypeNumber,
							Description: "Number of children (optional)",
						},
					},
					Required: []string{"cityCode", "checkInDate", "checkOutDate", "adults"},
				},
			},
			{
				Name:        ToolConfirmBooking,
				Description: "Confirm the trip once every selection is made",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"bookingBreakDown": {
							Type:        genai.TypeString,
							Description: "Full breakdown of flight, hotel and other trip costs plus the itinerary",
						},
					},
					Required: []string{"bookingBreakDown"},
				},
			},
		},
	}}
}

// stringArg extracts a required string argument.
func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok && v != ""
}

// intArg extracts a numeric argument. JSON numbers decode as float64 but
// models occasionally emit integers, so both are accepted.
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// parseFlightArgs validates model-supplied flight search arguments.
func parseFlightArgs(args map[string]any) (domain.FlightCriteria, error) {
	var c domain.FlightCriteria
	var ok bool

	if c.From, ok = stringArg(args, "from"); !ok {
		return c, errors.New("missing or invalid 'from'")
	}
	if c.To, ok = stringArg(args, "to"); !ok {
		return c, errors.New("missing or invalid 'to'")
	}
	if c.DepartDate, ok = stringArg(args, "departDate"); !ok {
		return c, errors.New("missing or invalid 'departDate'")
	}
	if c.Adults, ok = intArg(args, "adults"); !ok {
		return c, errors.New("missing or invalid 'adults'")
	}

	if v, ok := args["returnDate"].(string); ok {
		c.ReturnDate = v
	}
	if v, ok := intArg(args, "children"); ok {
		c.Children = v
	}
	if v, ok := intArg(args, "infants"); ok {
		c.Infants = v
	}
	return c, nil
}

// parseHotelArgs validates model-supplied hotel search arguments.
func parseHotelArgs(args map[string]any) (domain.HotelCriteria, error) {
	var c domain.HotelCriteria
	var ok bool

	if c.CityCode, ok = stringArg(args, "cityCode"); !ok {
		return c, errors.New("missing or invalid 'cityCode'")
	}
	if c.CheckInDate, ok = stringArg(args, "checkInDate"); !ok {
		return c, errors.New("missing or invalid 'checkInDate'")
	}
	if c.CheckOutDate, ok = stringArg(args, "checkOutDate"); !ok {
		return c, errors.New("missing or invalid 'checkOutDate'")
	}
	if c.Adults, ok = intArg(args, "adults"); !ok {
		return c, errors.New("missing or invalid 'adults'")
	}

	if v, ok := intArg(args, "children"); ok {
		c.Children = v
	}
	return c, nil
}

// parseBookingArgs extracts the booking breakdown, falling back to a fixed
// confirmation when the model omitted it.
func parseBookingArgs(args map[string]any) string {
	if v, ok := stringArg(args, "bookingBreakDown"); ok {
		return v
	}
	return "Continue to book!"
}

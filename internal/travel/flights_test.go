package travel

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eazymytrip/backend/internal/adapter/amadeus"
	"github.com/eazymytrip/backend/internal/adapter/genai"
	"github.com/eazymytrip/backend/internal/domain"
)

type fakeFlightAPI struct {
	offers []amadeus.FlightOffer
	err    error
	params []amadeus.FlightOffersParams
}

func (f *fakeFlightAPI) FlightOffers(ctx context.Context, params amadeus.FlightOffersParams) ([]amadeus.FlightOffer, error) {
	f.params = append(f.params, params)
	return f.offers, f.err
}

func connectingOffer() amadeus.FlightOffer {
	return amadeus.FlightOffer{
		ID:    "1",
		Price: amadeus.Price{Total: "639.60", Currency: "USD"},
		Itineraries: []amadeus.Itinerary{{
			Duration: "PT9H30M",
			Segments: []amadeus.Segment{
				{
					Departure:   amadeus.SegmentEndpoint{IataCode: "CCU", At: "2026-09-10T06:00:00"},
					Arrival:     amadeus.SegmentEndpoint{IataCode: "BOM", At: "2026-09-10T08:30:00"},
					CarrierCode: "AI",
					Number:      "2776",
				},
				{
					Departure:   amadeus.SegmentEndpoint{IataCode: "BOM", At: "2026-09-10T10:00:00"},
					Arrival:     amadeus.SegmentEndpoint{IataCode: "LHR", At: "2026-09-10T15:30:00"},
					CarrierCode: "BA",
					Number:      "138",
				},
			},
		}},
	}
}

func TestSearchNormalizesConnectingFlight(t *testing.T) {
	api := &fakeFlightAPI{offers: []amadeus.FlightOffer{connectingOffer()}}
	svc := NewFlightService(api, genai.NewMockClient(), "test-model", zerolog.Nop())

	offers := svc.Search(context.Background(), domain.FlightCriteria{
		From: "CCU", To: "LHR", DepartDate: "2026-09-10", Adults: 1,
	})

	require.Len(t, offers, 1)
	got := offers[0]
	// Carrier comes from the first segment, destination from the last.
	assert.Equal(t, "AI", got.Airline)
	assert.Equal(t, "AI2776", got.FlightNumber)
	assert.Equal(t, "CCU", got.From)
	assert.Equal(t, "LHR", got.To)
	assert.Equal(t, "2026-09-10T06:00:00", got.Departure)
	assert.Equal(t, "2026-09-10T15:30:00", got.Arrival)
	assert.Equal(t, "PT9H30M", got.Duration)
	assert.Equal(t, "639.60", got.Price)
	assert.Equal(t, "USD", got.Currency)
}

func TestSearchAppliesDefaults(t *testing.T) {
	api := &fakeFlightAPI{offers: []amadeus.FlightOffer{connectingOffer()}}
	svc := NewFlightService(api, genai.NewMockClient(), "test-model", zerolog.Nop())

	svc.Search(context.Background(), domain.FlightCriteria{
		From: "CCU", To: "LHR", DepartDate: "2026-09-10",
	})

	require.Len(t, api.params, 1)
	p := api.params[0]
	assert.Equal(t, 1, p.Adults)
	assert.Equal(t, "ECONOMY", p.TravelClass)
	assert.Equal(t, "INR", p.CurrencyCode)
	assert.Equal(t, 129999, p.MaxPrice)
	assert.Equal(t, 10, p.Max)
}

func TestSearchFallsBackToSyntheticOnProviderError(t *testing.T) {
	api := &fakeFlightAPI{err: errors.New("upstream down")}
	mock := genai.NewMockClient()
	mock.EnqueueText("```json\n" + `[
		{"id":"g1","price":"12000.00","currency":"EUR","from":"XXX","to":"YYY",
		 "departure":"2030-01-01T00:00:00","arrival":"2026-09-10T14:00:00",
		 "duration":"PT6H","airline":"AI","flightNumber":"AI302"}
	]` + "\n```")
	svc := NewFlightService(api, mock, "test-model", zerolog.Nop())

	criteria := domain.FlightCriteria{From: "DEL", To: "LHR", DepartDate: "2026-09-10", Adults: 2}
	offers := svc.Search(context.Background(), criteria)

	require.NotEmpty(t, offers)
	// Hallucinated route, currency and date are forced back to the request.
	assert.Equal(t, "DEL", offers[0].From)
	assert.Equal(t, "LHR", offers[0].To)
	assert.Equal(t, "INR", offers[0].Currency)
	assert.Equal(t, "2026-09-10T08:00:00", offers[0].Departure)
}

func TestSearchFallsBackToSyntheticOnEmptyResult(t *testing.T) {
	api := &fakeFlightAPI{}
	mock := genai.NewMockClient()
	mock.EnqueueText(`[{"id":"g1","price":"9000.00","departure":"2026-09-10T09:15:00"}]`)
	svc := NewFlightService(api, mock, "test-model", zerolog.Nop())

	offers := svc.Search(context.Background(), domain.FlightCriteria{
		From: "DEL", To: "LHR", DepartDate: "2026-09-10", Adults: 1,
	})

	require.Len(t, offers, 1)
	assert.Equal(t, "g1", offers[0].ID)
	assert.Equal(t, "2026-09-10T09:15:00", offers[0].Departure)
}

func TestSearchStaticFallbackWhenGenerationFails(t *testing.T) {
	api := &fakeFlightAPI{err: errors.New("upstream down")}
	mock := genai.NewMockClient()
	mock.SetError(errors.New("model down"))
	svc := NewFlightService(api, mock, "test-model", zerolog.Nop())

	criteria := domain.FlightCriteria{From: "DEL", To: "LHR", DepartDate: "2026-09-10", Adults: 1, MaxResults: 3}
	offers := svc.Search(context.Background(), criteria)

	require.Len(t, offers, 3)
	for _, o := range offers {
		assert.Equal(t, "DEL", o.From)
		assert.Equal(t, "LHR", o.To)
		assert.NotEmpty(t, o.Price)
	}
}

func TestSyntheticCountCapsAtFive(t *testing.T) {
	assert.Equal(t, 5, syntheticCount(10))
	assert.Equal(t, 3, syntheticCount(3))
	assert.Equal(t, 5, syntheticCount(0))
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `[1]`, stripCodeFence("```json\n[1]\n```"))
	assert.Equal(t, `[1]`, stripCodeFence("```\n[1]\n```"))
	assert.Equal(t, `[1]`, stripCodeFence("[1]"))
}

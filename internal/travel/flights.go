// Package travel provides flight and hotel search built on provider APIs,
// with a generative fallback so searches always return offers.
package travel

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/eazymytrip/backend/internal/adapter/amadeus"
	"github.com/eazymytrip/backend/internal/adapter/genai"
	"github.com/eazymytrip/backend/internal/domain"
)

// Defaults applied to flight searches when the caller leaves them unset.
const (
	defaultAdults      = 1
	defaultTravelClass = "ECONOMY"
	defaultCurrency    = "INR"
	defaultMaxPrice    = 129999
	defaultMaxResults  = 10
)

// FlightAPI is the provider surface the flight service depends on.
type FlightAPI interface {
	FlightOffers(ctx context.Context, params amadeus.FlightOffersParams) ([]amadeus.FlightOffer, error)
}

// FlightService searches flights through the provider and falls back to
// generated offers when the provider fails or returns nothing.
type FlightService struct {
	api    FlightAPI
	gen    genai.Client
	model  string
	logger zerolog.Logger
}

// NewFlightService creates a flight search service.
func NewFlightService(api FlightAPI, gen genai.Client, model string, logger zerolog.Logger) *FlightService {
	return &FlightService{api: api, gen: gen, model: model, logger: logger}
}

// Search returns flight offers matching the criteria. It never returns an
// empty slice; a provider failure or empty result is replaced by synthetic
// offers matching the requested route and dates.
func (s *FlightService) Search(ctx context.Context, criteria domain.FlightCriteria) []domain.FlightOffer {
	criteria = applyFlightDefaults(criteria)

	offers, err := s.api.FlightOffers(ctx, amadeus.FlightOffersParams{
		OriginLocationCode:      criteria.From,
		DestinationLocationCode: criteria.To,
		DepartureDate:           criteria.DepartDate,
		ReturnDate:              criteria.ReturnDate,
		Adults:                  criteria.Adults,
		Children:                criteria.Children,
		Infants:                 criteria.Infants,
		TravelClass:             criteria.TravelClass,
		NonStop:                 criteria.NonStop,
		CurrencyCode:            criteria.Currency,
		MaxPrice:                int(criteria.MaxPrice),
		Max:                     criteria.MaxResults,
	})
	if err != nil {
		s.logger.Warn().Err(err).
			Str("from", criteria.From).Str("to", criteria.To).
			Msg("flight search failed, generating fallback offers")
		return s.fallback(ctx, criteria)
	}
	if len(offers) == 0 {
		s.logger.Info().
			Str("from", criteria.From).Str("to", criteria.To).
			Msg("no flight offers found, generating fallback offers")
		return s.fallback(ctx, criteria)
	}

	normalized := lo.Map(offers, func(o amadeus.FlightOffer, _ int) domain.FlightOffer {
		return normalizeFlightOffer(o)
	})
	if criteria.MaxResults > 0 && len(normalized) > criteria.MaxResults {
		normalized = normalized[:criteria.MaxResults]
	}
	return normalized
}

func (s *FlightService) fallback(ctx context.Context, criteria domain.FlightCriteria) []domain.FlightOffer {
	offers, err := generateSyntheticFlights(ctx, s.gen, s.model, criteria)
	if err != nil {
		s.logger.Warn().Err(err).Msg("synthetic flight generation failed, using static offers")
		return staticFlightFallback(criteria)
	}
	return offers
}

func applyFlightDefaults(c domain.FlightCriteria) domain.FlightCriteria {
	if c.Adults <= 0 {
		c.Adults = defaultAdults
	}
	if c.TravelClass == "" {
		c.TravelClass = defaultTravelClass
	}
	if c.Currency == "" {
		c.Currency = defaultCurrency
	}
	if c.MaxPrice <= 0 {
		c.MaxPrice = defaultMaxPrice
	}
	if c.MaxResults <= 0 {
		c.MaxResults = defaultMaxResults
	}
	return c
}

// normalizeFlightOffer flattens a provider offer to the domain shape. The
// airline and flight number come from the first segment of the first
// itinerary; the destination comes from the last segment, so connecting
// itineraries collapse to an overall origin/destination pair.
func normalizeFlightOffer(o amadeus.FlightOffer) domain.FlightOffer {
	out := domain.FlightOffer{
		ID:       o.ID,
		Price:    o.Price.Total,
		Currency: o.Price.Currency,
	}
	if len(o.Itineraries) == 0 {
		return out
	}

	itin := o.Itineraries[0]
	out.Duration = itin.Duration
	if len(itin.Segments) == 0 {
		return out
	}

	first := itin.Segments[0]
	last := itin.Segments[len(itin.Segments)-1]
	out.From = first.Departure.IataCode
	out.Departure = first.Departure.At
	out.To = last.Arrival.IataCode
	out.Arrival = last.Arrival.At
	out.Airline = first.CarrierCode
	out.FlightNumber = first.CarrierCode + first.Number
	return out
}

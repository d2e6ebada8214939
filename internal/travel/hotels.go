package travel

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/eazymytrip/backend/internal/adapter/amadeus"
	"github.com/eazymytrip/backend/internal/adapter/genai"
	"github.com/eazymytrip/backend/internal/domain"
)

const (
	defaultHotelCurrency = "USD"

	// The hotel offers endpoint rejects long hotel ID lists.
	maxHotelIDs = 20
)

// HotelAPI is the provider surface the hotel service depends on.
type HotelAPI interface {
	HotelsByCity(ctx context.Context, cityCode string) ([]amadeus.HotelRef, error)
	HotelOffers(ctx context.Context, params amadeus.HotelOffersParams) ([]amadeus.HotelOffer, error)
}

// HotelService searches hotels through the provider, falling back to
// generated offers when the provider fails or returns nothing.
type HotelService struct {
	api    HotelAPI
	gen    genai.Client
	model  string
	logger zerolog.Logger
}

// NewHotelService creates a hotel search service.
func NewHotelService(api HotelAPI, gen genai.Client, model string, logger zerolog.Logger) *HotelService {
	return &HotelService{api: api, gen: gen, model: model, logger: logger}
}

// Search returns hotel offers matching the criteria. It never returns an
// empty slice; provider failures and empty results are replaced by
// synthetic offers for the requested city and dates.
func (s *HotelService) Search(ctx context.Context, criteria domain.HotelCriteria) []domain.HotelOffer {
	criteria = applyHotelDefaults(criteria)

	offers, err := s.searchProvider(ctx, criteria)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("city", criteria.CityCode).
			Msg("hotel search failed, generating fallback offers")
		return s.fallback(ctx, criteria)
	}
	if len(offers) == 0 {
		s.logger.Info().
			Str("city", criteria.CityCode).
			Msg("no hotel offers found, generating fallback offers")
		return s.fallback(ctx, criteria)
	}

	if criteria.MaxResults > 0 && len(offers) > criteria.MaxResults {
		offers = offers[:criteria.MaxResults]
	}
	return offers
}

func (s *HotelService) searchProvider(ctx context.Context, criteria domain.HotelCriteria) ([]domain.HotelOffer, error) {
	hotels, err := s.api.HotelsByCity(ctx, criteria.CityCode)
	if err != nil {
		return nil, err
	}
	if len(hotels) == 0 {
		return nil, nil
	}

	ids := lo.Map(hotels, func(h amadeus.HotelRef, _ int) string { return h.HotelID })
	if len(ids) > maxHotelIDs {
		ids = ids[:maxHotelIDs]
	}

	params := amadeus.HotelOffersParams{
		HotelIDs:     ids,
		CheckInDate:  criteria.CheckInDate,
		CheckOutDate: criteria.CheckOutDate,
		Adults:       criteria.Adults,
		Currency:     criteria.Currency,
	}
	if criteria.MaxPrice > 0 {
		params.PriceRange = fmt.Sprintf("0-%d", int(criteria.MaxPrice))
	}

	raw, err := s.api.HotelOffers(ctx, params)
	if err != nil {
		return nil, err
	}

	var out []domain.HotelOffer
	for _, h := range raw {
		if offer, ok := normalizeHotelOffer(h); ok {
			out = append(out, offer)
		}
	}
	return out, nil
}

func (s *HotelService) fallback(ctx context.Context, criteria domain.HotelCriteria) []domain.HotelOffer {
	offers, err := generateSyntheticHotels(ctx, s.gen, s.model, criteria)
	if err != nil {
		s.logger.Warn().Err(err).Msg("synthetic hotel generation failed, using static offers")
		return staticHotelFallback(criteria)
	}
	return offers
}

func applyHotelDefaults(c domain.HotelCriteria) domain.HotelCriteria {
	if c.Adults <= 0 {
		c.Adults = defaultAdults
	}
	if c.Currency == "" {
		c.Currency = defaultHotelCurrency
	}
	if c.MaxResults <= 0 {
		c.MaxResults = defaultMaxResults
	}
	return c
}

// normalizeHotelOffer keeps only the first room offer of a hotel. Hotels
// without any offer are dropped.
func normalizeHotelOffer(h amadeus.HotelOffer) (domain.HotelOffer, bool) {
	if len(h.Offers) == 0 {
		return domain.HotelOffer{}, false
	}
	room := h.Offers[0]
	return domain.HotelOffer{
		ID:       h.Hotel.HotelID,
		Name:     h.Hotel.Name,
		Address:  strings.Join(h.Hotel.Address.Lines, ", "),
		CityCode: h.Hotel.CityCode,
		Price:    room.Price.Total,
		Currency: room.Price.Currency,
		CheckIn:  room.CheckInDate,
		CheckOut: room.CheckOutDate,
	}, true
}

// Package amadeus is a thin client for the Amadeus self-service travel APIs.
package amadeus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

const tokenCacheKey = "amadeus_access_token"

// Client calls the Amadeus REST APIs using OAuth2 client credentials.
// Access tokens are cached until shortly before expiry, and concurrent
// token fetches are collapsed into one request.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	tokens       *gocache.Cache
	tokenGroup   singleflight.Group
}

// NewClient creates a new Amadeus API client.
func NewClient(baseURL, clientID, clientSecret string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type apiError struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// accessToken returns a valid access token, fetching a new one when the
// cached token is absent or expired.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if tok, ok := c.tokens.Get(tokenCacheKey); ok {
		return tok.(string), nil
	}

	tok, err, _ := c.tokenGroup.Do(tokenCacheKey, func() (interface{}, error) {
		if tok, ok := c.tokens.Get(tokenCacheKey); ok {
			return tok.(string), nil
		}

		form := url.Values{}
		form.Set("grant_type", "client_credentials")
		form.Set("client_id", c.clientID)
		form.Set("client_secret", c.clientSecret)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
		if err != nil {
			return "", errors.Wrap(err, "failed to create token request")
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", errors.Wrap(err, "token request failed")
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", errors.Wrap(err, "failed to read token response")
		}
		if resp.StatusCode != http.StatusOK {
			return "", errors.Errorf("token request failed with status %d", resp.StatusCode)
		}

		var tr tokenResponse
		if err := json.Unmarshal(body, &tr); err != nil {
			return "", errors.Wrap(err, "failed to decode token response")
		}
		if tr.AccessToken == "" {
			return "", errors.New("token response missing access_token")
		}

		// Expire a minute early so a cached token is never used at the edge.
		ttl := time.Duration(tr.ExpiresIn)*time.Second - time.Minute
		if ttl <= 0 {
			ttl = time.Duration(tr.ExpiresIn) * time.Second
		}
		c.tokens.Set(tokenCacheKey, tr.AccessToken, ttl)
		return tr.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return tok.(string), nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s failed", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && len(apiErr.Errors) > 0 {
			e := apiErr.Errors[0]
			return errors.Errorf("GET %s failed: %s: %s", path, e.Title, e.Detail)
		}
		return errors.Errorf("GET %s failed with status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", path)
	}
	return nil
}

// FlightOffersParams are the query parameters for the flight offers search.
type FlightOffersParams struct {
	OriginLocationCode      string
	DestinationLocationCode string
	DepartureDate           string
	ReturnDate              string
	Adults                  int
	Children                int
	Infants                 int
	TravelClass             string
	NonStop                 bool
	CurrencyCode            string
	MaxPrice                int
	Max                     int
}

// Price is a monetary amount as returned by the API.
type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// SegmentEndpoint is one end of a flight segment.
type SegmentEndpoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

// Segment is one leg of an itinerary.
type Segment struct {
	Departure   SegmentEndpoint `json:"departure"`
	Arrival     SegmentEndpoint `json:"arrival"`
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
	Duration    string          `json:"duration"`
}

// Itinerary is an ordered list of segments.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// FlightOffer is a raw flight offer from the API.
type FlightOffer struct {
	ID          string      `json:"id"`
	Itineraries []Itinerary `json:"itineraries"`
	Price       Price       `json:"price"`
}

type flightOffersResponse struct {
	Data []FlightOffer `json:"data"`
}

// FlightOffers searches flight offers.
func (c *Client) FlightOffers(ctx context.Context, params FlightOffersParams) ([]FlightOffer, error) {
	q := url.Values{}
	q.Set("originLocationCode", params.OriginLocationCode)
	q.Set("destinationLocationCode", params.DestinationLocationCode)
	q.Set("departureDate", params.DepartureDate)
	if params.ReturnDate != "" {
		q.Set("returnDate", params.ReturnDate)
	}
	q.Set("adults", strconv.Itoa(params.Adults))
	if params.Children > 0 {
		q.Set("children", strconv.Itoa(params.Children))
	}
	if params.Infants > 0 {
		q.Set("infants", strconv.Itoa(params.Infants))
	}
	if params.TravelClass != "" {
		q.Set("travelClass", params.TravelClass)
	}
	if params.NonStop {
		q.Set("nonStop", "true")
	}
	if params.CurrencyCode != "" {
		q.Set("currencyCode", params.CurrencyCode)
	}
	if params.MaxPrice > 0 {
		q.Set("maxPrice", strconv.Itoa(params.MaxPrice))
	}
	if params.Max > 0 {
		q.Set("max", strconv.Itoa(params.Max))
	}

	var resp flightOffersResponse
	if err := c.get(ctx, "/v2/shopping/flight-offers", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// HotelRef identifies a hotel returned by the city lookup.
type HotelRef struct {
	HotelID string `json:"hotelId"`
	Name    string `json:"name"`
}

type hotelListResponse struct {
	Data []HotelRef `json:"data"`
}

// HotelsByCity lists hotels in a city by IATA city code.
func (c *Client) HotelsByCity(ctx context.Context, cityCode string) ([]HotelRef, error) {
	q := url.Values{}
	q.Set("cityCode", cityCode)

	var resp hotelListResponse
	if err := c.get(ctx, "/v1/reference-data/locations/hotels/by-city", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// HotelOffersParams are the query parameters for the hotel offers search.
type HotelOffersParams struct {
	HotelIDs     []string
	CheckInDate  string
	CheckOutDate string
	Adults       int
	Currency     string
	PriceRange   string // e.g. "0-500", requires Currency
}

// Hotel is the hotel descriptor embedded in a hotel offer.
type Hotel struct {
	HotelID  string `json:"hotelId"`
	Name     string `json:"name"`
	CityCode string `json:"cityCode"`
	Address  struct {
		Lines []string `json:"lines"`
	} `json:"address"`
}

// RoomOffer is one bookable room offer for a hotel.
type RoomOffer struct {
	ID           string `json:"id"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Price        Price  `json:"price"`
}

// HotelOffer pairs a hotel with its available room offers.
type HotelOffer struct {
	Hotel  Hotel       `json:"hotel"`
	Offers []RoomOffer `json:"offers"`
}

type hotelOffersResponse struct {
	Data []HotelOffer `json:"data"`
}

// HotelOffers searches room offers for the given hotels.
func (c *Client) HotelOffers(ctx context.Context, params HotelOffersParams) ([]HotelOffer, error) {
	q := url.Values{}
	q.Set("hotelIds", strings.Join(params.HotelIDs, ","))
	q.Set("checkInDate", params.CheckInDate)
	q.Set("checkOutDate", params.CheckOutDate)
	q.Set("adults", strconv.Itoa(params.Adults))
	if params.Currency != "" {
		q.Set("currency", params.Currency)
	}
	if params.PriceRange != "" {
		q.Set("priceRange", params.PriceRange)
	}

	var resp hotelOffersResponse
	if err := c.get(ctx, "/v3/shopping/hotel-offers", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"leasewell_backend/platform/apperr"
	"leasewell_backend/platform/logger"
	"leasewell_backend/platform/phone"
)

// categoryPlaceTypes maps maintenance categories to Google Places search types.
var categoryPlaceTypes = map[string]string{
	"plumbing":   "plumber",
	"electrical": "electrician",
	"hvac":       "hvac_contractor",
	"appliance":  "appliance_repair",
	"security":   "locksmith",
	"exterior":   "general_contractor",
	"general":    "general_contractor",
}

func placeTypeFor(category string) string {
	if t, ok := categoryPlaceTypes[category]; ok {
		return t
	}
	return "general_contractor"
}

const (
	placesSearchURL  = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	placesDetailsURL = "https://maps.googleapis.com/maps/api/place/details/json"

	maxCandidates = 5
)

// PlacesDirectory finds contractors through the Google Places API. A detail
// lookup per candidate enriches the result with a phone number; detail
// failures leave the phone empty rather than dropping the candidate.
type PlacesDirectory struct {
	apiKey     string
	client     *http.Client
	log        *logger.Logger
	searchURL  string
	detailsURL string
}

// NewPlacesDirectory creates a Places-backed directory.
func NewPlacesDirectory(apiKey string, log *logger.Logger) *PlacesDirectory {
	return &PlacesDirectory{
		apiKey:     apiKey,
		client:     &http.Client{Timeout: 10 * time.Second},
		log:        log,
		searchURL:  placesSearchURL,
		detailsURL: placesDetailsURL,
	}
}

type placesSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string   `json:"place_id"`
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Rating           *float64 `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
	} `json:"results"`
}

type placesDetailsResponse struct {
	Status string `json:"status"`
	Result struct {
		FormattedPhoneNumber     string `json:"formatted_phone_number"`
		InternationalPhoneNumber string `json:"international_phone_number"`
	} `json:"result"`
}

// FindContractors searches for contractors near the request's property.
// ZERO_RESULTS yields an empty slice; any other non-OK status is an upstream error.
func (d *PlacesDirectory) FindContractors(ctx context.Context, req Request) ([]Contractor, error) {
	searchQuery := fmt.Sprintf("%s near %s", placeTypeFor(req.Category), req.FullAddress())

	params := url.Values{}
	params.Set("query", searchQuery)
	params.Set("radius", "10000")
	params.Set("key", d.apiKey)

	var search placesSearchResponse
	if err := d.getJSON(ctx, d.searchURL+"?"+params.Encode(), &search); err != nil {
		return nil, err
	}

	if search.Status == "ZERO_RESULTS" {
		return []Contractor{}, nil
	}
	if search.Status != "OK" {
		return nil, apperr.Upstream(fmt.Sprintf("places search failed with status %s", search.Status))
	}

	results := search.Results
	if len(results) > maxCandidates {
		results = results[:maxCandidates]
	}

	contractors := make([]Contractor, 0, len(results))
	for _, place := range results {
		c := Contractor{
			PlaceID:     place.PlaceID,
			Name:        place.Name,
			Address:     place.FormattedAddress,
			Rating:      place.Rating,
			ReviewCount: place.UserRatingsTotal,
		}
		if phone := d.lookupPhone(ctx, place.PlaceID); phone != "" {
			c.Phone = &phone
		}
		contractors = append(contractors, c)
	}
	return contractors, nil
}

// lookupPhone fetches the contractor's phone number, normalized to E.164
// where the number parses. Failures are swallowed: a candidate without a
// phone is still usable.
func (d *PlacesDirectory) lookupPhone(ctx context.Context, placeID string) string {
	if placeID == "" {
		return ""
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "formatted_phone_number,international_phone_number")
	params.Set("key", d.apiKey)

	var details placesDetailsResponse
	if err := d.getJSON(ctx, d.detailsURL+"?"+params.Encode(), &details); err != nil {
		d.log.Warn("places details lookup failed", "placeId", placeID, "error", err)
		return ""
	}
	if details.Status != "OK" {
		return ""
	}
	if details.Result.FormattedPhoneNumber != "" {
		return phone.NormalizeE164(details.Result.FormattedPhoneNumber)
	}
	return phone.NormalizeE164(details.Result.InternationalPhoneNumber)
}

func (d *PlacesDirectory) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstream, "places request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperr.Upstream(fmt.Sprintf("places API returned %d", resp.StatusCode))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// mockContractorNames provides five deterministic business names per category.
var mockContractorNames = map[string][]string{
	"plumbing":   {"ABC Plumbing", "Quick Fix Plumbing", "Pro Plumbers Inc", "Reliable Plumbing Services", "Emergency Plumbers"},
	"electrical": {"Spark Electric", "Bright Solutions", "Master Electricians", "Safe Wire Electric", "Power Up Electrical"},
	"hvac":       {"Cool Air HVAC", "Comfort Systems", "Climate Control", "Air Masters", "Temp Solutions"},
	"appliance":  {"Appliance Pro", "Fix It Fast", "Home Appliance Repair", "Quick Fix Appliances", "Reliable Repairs"},
	"security":   {"Secure Locks", "Lock Masters", "Safe & Sound", "Security Plus", "Key Solutions"},
	"exterior":   {"Exterior Experts", "Home Improvements Co", "Outdoor Specialists", "Property Care", "Exterior Works"},
	"general":    {"Handyman Services", "Fix It All", "General Contractors Inc", "Home Repair Pro", "All Around Repairs"},
}

// MockDirectory fabricates contractor candidates for development and tests.
// Ratings, review counts, and phone numbers come from the injected source so
// runs can be made deterministic.
type MockDirectory struct {
	rng *rand.Rand
}

// NewMockDirectory creates a mock directory using the given random source.
func NewMockDirectory(rng *rand.Rand) *MockDirectory {
	return &MockDirectory{rng: rng}
}

// FindContractors returns five synthetic candidates for the request's category.
func (d *MockDirectory) FindContractors(_ context.Context, req Request) ([]Contractor, error) {
	names, ok := mockContractorNames[req.Category]
	if !ok {
		names = mockContractorNames["general"]
	}

	contractors := make([]Contractor, 0, len(names))
	for i, name := range names {
		rating := float64(int((4.0+d.rng.Float64())*10)) / 10
		phone := fmt.Sprintf("(555) %03d-%04d", d.rng.Intn(900)+100, d.rng.Intn(9000)+1000)
		contractors = append(contractors, Contractor{
			PlaceID:     fmt.Sprintf("mock_place_%d", i),
			Name:        name,
			Address:     req.FullAddress(),
			Phone:       &phone,
			Rating:      &rating,
			ReviewCount: d.rng.Intn(200) + 10,
		})
	}
	return contractors, nil
}

package agent

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"leasewell_backend/platform/apperr"
	"leasewell_backend/platform/logger"
)

func newTestPlacesDirectory(srv *httptest.Server) *PlacesDirectory {
	d := NewPlacesDirectory("test-key", logger.New("test"))
	d.searchURL = srv.URL + "/search"
	d.detailsURL = srv.URL + "/details"
	return d
}

func TestPlacesDirectory_CapsCandidatesAndEnrichesPhones(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			_, _ = w.Write([]byte(`{"status":"OK","results":[
				{"place_id":"p1","name":"One","formatted_address":"1 Main St","rating":4.5,"user_ratings_total":12},
				{"place_id":"p2","name":"Two","formatted_address":"2 Main St"},
				{"place_id":"p3","name":"Three","formatted_address":"3 Main St"},
				{"place_id":"p4","name":"Four","formatted_address":"4 Main St"},
				{"place_id":"p5","name":"Five","formatted_address":"5 Main St"},
				{"place_id":"p6","name":"Six","formatted_address":"6 Main St"}]}`))
		case "/details":
			_, _ = w.Write([]byte(`{"status":"OK","result":{"formatted_phone_number":"(555) 111-2222"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	contractors, err := newTestPlacesDirectory(srv).FindContractors(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("FindContractors: %v", err)
	}
	if len(contractors) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(contractors))
	}
	first := contractors[0]
	if first.Name != "One" || first.PlaceID != "p1" {
		t.Fatalf("unexpected first candidate %+v", first)
	}
	if first.Rating == nil || *first.Rating != 4.5 || first.ReviewCount != 12 {
		t.Fatalf("rating fields not carried over: %+v", first)
	}
	if first.Phone == nil || *first.Phone != "(555) 111-2222" {
		t.Fatalf("expected enriched phone, got %+v", first.Phone)
	}
}

func TestPlacesDirectory_NormalizesEnrichedPhones(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			_, _ = w.Write([]byte(`{"status":"OK","results":[{"place_id":"p1","name":"One","formatted_address":"1 Main St"}]}`))
		case "/details":
			_, _ = w.Write([]byte(`{"status":"OK","result":{"formatted_phone_number":"212-555-0123"}}`))
		}
	}))
	defer srv.Close()

	contractors, err := newTestPlacesDirectory(srv).FindContractors(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("FindContractors: %v", err)
	}
	if contractors[0].Phone == nil || *contractors[0].Phone != "+12125550123" {
		t.Fatalf("expected E.164 phone, got %+v", contractors[0].Phone)
	}
}

func TestPlacesDirectory_ZeroResultsIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	contractors, err := newTestPlacesDirectory(srv).FindContractors(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("FindContractors: %v", err)
	}
	if len(contractors) != 0 {
		t.Fatalf("expected no candidates, got %d", len(contractors))
	}
}

func TestPlacesDirectory_DeniedStatusIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED"}`))
	}))
	defer srv.Close()

	_, err := newTestPlacesDirectory(srv).FindContractors(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected an error for REQUEST_DENIED")
	}
	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Fatalf("expected upstream kind, got %v", apperr.GetKind(err))
	}
}

func TestPlacesDirectory_PhoneLookupFailureKeepsCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			_, _ = w.Write([]byte(`{"status":"OK","results":[{"place_id":"p1","name":"One","formatted_address":"1 Main St"}]}`))
		case "/details":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	contractors, err := newTestPlacesDirectory(srv).FindContractors(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("FindContractors: %v", err)
	}
	if len(contractors) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(contractors))
	}
	if contractors[0].Phone != nil {
		t.Fatalf("expected nil phone after lookup failure, got %q", *contractors[0].Phone)
	}
}

func TestMockDirectory_FiveCandidatesPerCategory(t *testing.T) {
	dir := NewMockDirectory(rand.New(rand.NewSource(1)))

	for category, names := range mockContractorNames {
		req := testRequest()
		req.Category = category

		contractors, err := dir.FindContractors(context.Background(), req)
		if err != nil {
			t.Fatalf("FindContractors(%s): %v", category, err)
		}
		if len(contractors) != 5 {
			t.Fatalf("expected 5 candidates for %s, got %d", category, len(contractors))
		}
		for i, c := range contractors {
			if c.Name != names[i] {
				t.Fatalf("expected %q at %d for %s, got %q", names[i], i, category, c.Name)
			}
			if c.Rating == nil || *c.Rating < 4.0 || *c.Rating > 5.0 {
				t.Fatalf("rating out of range for %s: %+v", c.Name, c.Rating)
			}
			if c.Phone == nil || *c.Phone == "" {
				t.Fatalf("expected a phone for %s", c.Name)
			}
			if c.ReviewCount < 10 {
				t.Fatalf("review count below floor for %s: %d", c.Name, c.ReviewCount)
			}
		}
	}
}

func TestMockDirectory_UnknownCategoryFallsBackToGeneral(t *testing.T) {
	dir := NewMockDirectory(rand.New(rand.NewSource(2)))
	req := testRequest()
	req.Category = "landscaping"

	contractors, err := dir.FindContractors(context.Background(), req)
	if err != nil {
		t.Fatalf("FindContractors: %v", err)
	}
	if len(contractors) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(contractors))
	}
	if contractors[0].Name != "Handyman Services" {
		t.Fatalf("expected general fallback names, got %q", contractors[0].Name)
	}
}

func TestPlaceTypeFor_FallsBackToGeneralContractor(t *testing.T) {
	if got := placeTypeFor("plumbing"); got != "plumber" {
		t.Fatalf("expected plumber, got %q", got)
	}
	if got := placeTypeFor("landscaping"); got != "general_contractor" {
		t.Fatalf("expected general_contractor fallback, got %q", got)
	}
}

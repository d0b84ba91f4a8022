package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"p9e.in/obras/models"
)

// nominatimBase overrides the provider endpoint when set (tests point
// it at a local fake).
var nominatimBase string

// nominatimURL resolves the endpoint on every call rather than at
// package init: NOMINATIM_URL may only enter the environment once
// config.Connect has loaded .env.
func nominatimURL() string {
	if nominatimBase != "" {
		return nominatimBase
	}
	if v := os.Getenv("NOMINATIM_URL"); v != "" {
		return v
	}
	return "https://nominatim.openstreetmap.org"
}

var geocodeClient = &http.Client{Timeout: 10 * time.Second}

// GeocodeResult is the normalized reverse-geocoding answer. Bairro
// falls back to "Não identificado" when the provider can't name one.
type GeocodeResult struct {
	Endereco string `json:"endereco"`
	Bairro   string `json:"bairro"`
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road          string `json:"road"`
		HouseNumber   string `json:"house_number"`
		Suburb        string `json:"suburb"`
		Neighbourhood string `json:"neighbourhood"`
		CityDistrict  string `json:"city_district"`
		Town          string `json:"town"`
		City          string `json:"city"`
	} `json:"address"`
}

// ReverseGeocode resolves ?lat=&lng= to an address and bairro via
// Nominatim. Provider failures degrade to the raw coordinates instead
// of erroring: a pin without a street name is still a usable pin.
func ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "lat and lng query parameters are required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, reverseGeocode(lat, lng))
}

func reverseGeocode(lat, lng float64) GeocodeResult {
	fallback := GeocodeResult{
		Endereco: fmt.Sprintf("%.6f, %.6f", lat, lng),
		Bairro:   models.BairroNaoIdentificado,
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', 6, 64))
	q.Set("addressdetails", "1")

	req, err := http.NewRequest(http.MethodGet, nominatimURL()+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return fallback
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "obras-dashboard/1.0")

	resp, err := geocodeClient.Do(req)
	if err != nil {
		log.Printf("geocode: reverse lookup failed: %v", err)
		return fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("geocode: reverse lookup status %d", resp.StatusCode)
		return fallback
	}

	var nr nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		log.Printf("geocode: bad response body: %v", err)
		return fallback
	}

	out := fallback
	if nr.DisplayName != "" {
		out.Endereco = nr.DisplayName
	}
	if road := buildStreet(nr); road != "" {
		out.Endereco = road
	}
	// First named subdivision wins, same precedence the map UI used.
	for _, candidate := range []string{
		nr.Address.Suburb,
		nr.Address.Neighbourhood,
		nr.Address.CityDistrict,
		nr.Address.Town,
	} {
		if candidate != "" {
			out.Bairro = candidate
			break
		}
	}
	return out
}

// GeocodeMatch is one forward-geocoding candidate.
type GeocodeMatch struct {
	Endereco  string  `json:"endereco"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type nominatimSearchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// SearchGeocode resolves ?q= to candidate coordinates. The query gets a
// " Maricá RJ" hint appended and results are restricted to Brazil, so a
// bare street name lands inside the municipality. Failures come back as
// an empty list, not an error.
func SearchGeocode(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "q query parameter is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, searchGeocode(query))
}

func searchGeocode(query string) []GeocodeMatch {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query+" Maricá RJ")
	q.Set("countrycodes", "br")
	q.Set("limit", "5")

	req, err := http.NewRequest(http.MethodGet, nominatimURL()+"/search?"+q.Encode(), nil)
	if err != nil {
		return []GeocodeMatch{}
	}
	req.Header.Set("User-Agent", "obras-dashboard/1.0")

	resp, err := geocodeClient.Do(req)
	if err != nil {
		log.Printf("geocode: search failed: %v", err)
		return []GeocodeMatch{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("geocode: search status %d", resp.StatusCode)
		return []GeocodeMatch{}
	}

	var results []nominatimSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		log.Printf("geocode: bad search body: %v", err)
		return []GeocodeMatch{}
	}

	matches := make([]GeocodeMatch, 0, len(results))
	for _, res := range results {
		lat, err1 := strconv.ParseFloat(res.Lat, 64)
		lng, err2 := strconv.ParseFloat(res.Lon, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		matches = append(matches, GeocodeMatch{
			Endereco:  res.DisplayName,
			Latitude:  lat,
			Longitude: lng,
		})
	}
	return matches
}

func buildStreet(nr nominatimResponse) string {
	if nr.Address.Road == "" {
		return ""
	}
	parts := []string{nr.Address.Road}
	if nr.Address.HouseNumber != "" {
		parts[0] = nr.Address.Road + ", " + nr.Address.HouseNumber
	}
	city := nr.Address.City
	if city == "" {
		city = nr.Address.Town
	}
	if city != "" {
		parts = append(parts, city)
	}
	return strings.Join(parts, " - ")
}

package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/providers"
	apperrors "github.com/Jin-yujin/doctorpay-backend/pkg/errors"
)

const (
	kakaoBaseURL           = "https://dapi.kakao.com"
	addressSearchPath      = "/v2/local/search/address.json"
	coordToRegionPath      = "/v2/local/geo/coord2regioncode.json"
	keywordSearchPath      = "/v2/local/search/keyword.json"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// KakaoProvider implements GeolocationProvider on the Kakao Local REST API.
type KakaoProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      providers.CacheProvider
}

var _ providers.GeolocationProvider = (*KakaoProvider)(nil)

// NewKakaoProvider creates a new Kakao geolocation provider.
func NewKakaoProvider(apiKey string, cache providers.CacheProvider) *KakaoProvider {
	return NewKakaoProviderWithOptions(apiKey, cache, kakaoBaseURL, nil)
}

// NewKakaoProviderWithOptions allows overriding the base URL and HTTP client
// (used for tests).
func NewKakaoProviderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) *KakaoProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = kakaoBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &KakaoProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		cache:      cache,
	}
}

type kakaoDocument struct {
	X                string `json:"x"`
	Y                string `json:"y"`
	PlaceName        string `json:"place_name"`
	AddressName      string `json:"address_name"`
	RoadAddressName  string `json:"road_address_name"`
	Phone            string `json:"phone"`
	RegionType       string `json:"region_type"`
	Region1DepthName string `json:"region_1depth_name"`
	Region2DepthName string `json:"region_2depth_name"`
	Region3DepthName string `json:"region_3depth_name"`
}

type kakaoResponse struct {
	Documents []kakaoDocument `json:"documents"`
}

// Geocode resolves an address string to coordinates.
func (p *KakaoProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	cacheKey := "geo:kakao:addr:" + strings.ToLower(trimmed)
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var coords providers.Coordinates
			if err := json.Unmarshal(cached, &coords); err == nil {
				return &coords, nil
			}
		}
	}

	resp, err := p.get(ctx, addressSearchPath, url.Values{"query": []string{trimmed}})
	if err != nil {
		return nil, err
	}
	if len(resp.Documents) == 0 {
		return nil, apperrors.NewNotFoundError("no results for address")
	}

	coords, err := documentCoordinates(resp.Documents[0])
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if payload, err := json.Marshal(coords); err == nil {
			_ = p.cache.Set(ctx, cacheKey, payload, defaultGeocodeCacheTTL)
		}
	}
	return coords, nil
}

// ReverseRegion resolves coordinates to an administrative region. The legal
// (B) region is preferred over the administrative (H) one.
func (p *KakaoProvider) ReverseRegion(ctx context.Context, lat, lng float64) (*providers.RegionInfo, error) {
	resp, err := p.get(ctx, coordToRegionPath, url.Values{
		"x": []string{strconv.FormatFloat(lng, 'f', -1, 64)},
		"y": []string{strconv.FormatFloat(lat, 'f', -1, 64)},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Documents) == 0 {
		return nil, apperrors.NewNotFoundError("no region for coordinates")
	}

	doc := resp.Documents[0]
	for _, candidate := range resp.Documents {
		if candidate.RegionType == "B" {
			doc = candidate
			break
		}
	}
	return &providers.RegionInfo{
		Region:       doc.Region1DepthName,
		District:     doc.Region2DepthName,
		Neighborhood: doc.Region3DepthName,
	}, nil
}

// SearchPlaces runs a keyword search around a point.
func (p *KakaoProvider) SearchPlaces(ctx context.Context, keyword string, lat, lng float64, radiusMeters int) ([]providers.Place, error) {
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("keyword is required")
	}

	params := url.Values{"query": []string{trimmed}}
	if lat != 0 || lng != 0 {
		params.Set("x", strconv.FormatFloat(lng, 'f', -1, 64))
		params.Set("y", strconv.FormatFloat(lat, 'f', -1, 64))
	}
	if radiusMeters > 0 {
		params.Set("radius", strconv.Itoa(radiusMeters))
	}

	resp, err := p.get(ctx, keywordSearchPath, params)
	if err != nil {
		return nil, err
	}

	places := make([]providers.Place, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		coords, err := documentCoordinates(doc)
		if err != nil {
			continue
		}
		address := doc.RoadAddressName
		if address == "" {
			address = doc.AddressName
		}
		places = append(places, providers.Place{
			Name:        doc.PlaceName,
			Address:     address,
			Phone:       doc.Phone,
			Coordinates: *coords,
		})
	}
	return places, nil
}

func (p *KakaoProvider) get(ctx context.Context, path string, params url.Values) (*kakaoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build kakao request", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("kakao request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewNetworkError(fmt.Sprintf("kakao returned status %d", resp.StatusCode), nil)
	}

	var decoded kakaoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.NewParseError("failed to decode kakao response", err)
	}
	return &decoded, nil
}

func documentCoordinates(doc kakaoDocument) (*providers.Coordinates, error) {
	lng, err := strconv.ParseFloat(doc.X, 64)
	if err != nil {
		return nil, apperrors.NewParseError("invalid longitude in kakao response", err)
	}
	lat, err := strconv.ParseFloat(doc.Y, 64)
	if err != nil {
		return nil, apperrors.NewParseError("invalid latitude in kakao response", err)
	}
	return &providers.Coordinates{Latitude: lat, Longitude: lng}, nil
}

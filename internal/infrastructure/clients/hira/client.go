package hira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
	"github.com/Jin-yujin/doctorpay-backend/pkg/config"
	apperrors "github.com/Jin-yujin/doctorpay-backend/pkg/errors"
)

// Client is the HIRA open-data API surface the join engine consumes.
type Client interface {
	ListHospitals(ctx context.Context, query HospitalQuery) (*HospitalPage, error)
	ListNonPaymentItems(ctx context.Context, query ItemQuery) (*ItemPage, error)
	GetOperatingHours(ctx context.Context, ykiho string) (*entities.HospitalTimeInfo, error)
}

// HospitalQuery holds the registry-list filters. Region/district are the
// upstream administrative codes; coordinate+radius is the alternative
// location filter.
type HospitalQuery struct {
	RegionCode   string
	DistrictCode string
	Neighborhood string
	Name         string
	Ykiho        string
	PostalCode   string
	FacilityType string
	DeptCode     string
	Longitude    float64
	Latitude     float64
	RadiusMeters int
	PageNo       int
	NumOfRows    int
}

// ItemQuery holds the non-payment-list filters.
type ItemQuery struct {
	HospitalName string
	ItemCode     string
	FacilityType string
	RegionCode   string
	DistrictCode string
	PageNo       int
	NumOfRows    int
}

// HospitalPage is one page of registry records in upstream order.
type HospitalPage struct {
	Hospitals  []entities.Hospital
	PageNo     int
	TotalCount int
}

// ItemPage is one page of non-payment items.
type ItemPage struct {
	Items      []entities.NonPaymentItem
	PageNo     int
	TotalCount int
}

// HTTPClient talks to the three HIRA endpoints. It is explicitly
// constructed and injected; the service key and request logging live in the
// transport middleware chain, rate limiting and circuit breaking in the
// client itself.
type HTTPClient struct {
	hospitalBase   string
	nonPaymentBase string
	detailBase     string
	httpClient     *http.Client
	limiter        *rate.Limiter
	breaker        *gobreaker.CircuitBreaker
}

var _ Client = (*HTTPClient)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.HIRAConfig) *HTTPClient {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	transport := Chain(http.DefaultTransport,
		RequestLogger(),
		ServiceKeyInjector(cfg.ServiceKey),
	)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "hira",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &HTTPClient{
		hospitalBase:   strings.TrimRight(cfg.HospitalBaseURL, "/"),
		nonPaymentBase: strings.TrimRight(cfg.NonPaymentBaseURL, "/"),
		detailBase:     strings.TrimRight(cfg.DetailBaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout, Transport: transport},
		limiter:        rate.NewLimiter(rate.Limit(rps), rps),
		breaker:        breaker,
	}
}

// ListHospitals fetches one registry page.
func (c *HTTPClient) ListHospitals(ctx context.Context, query HospitalQuery) (*HospitalPage, error) {
	params := url.Values{}
	setIfPresent(params, "sidoCd", query.RegionCode)
	setIfPresent(params, "sgguCd", query.DistrictCode)
	setIfPresent(params, "emdongNm", query.Neighborhood)
	setIfPresent(params, "yadmNm", query.Name)
	setIfPresent(params, "ykiho", query.Ykiho)
	setIfPresent(params, "zipCd", query.PostalCode)
	setIfPresent(params, "clCd", query.FacilityType)
	setIfPresent(params, "dgsbjtCd", query.DeptCode)
	if query.RadiusMeters > 0 {
		params.Set("xPos", strconv.FormatFloat(query.Longitude, 'f', -1, 64))
		params.Set("yPos", strconv.FormatFloat(query.Latitude, 'f', -1, 64))
		params.Set("radius", strconv.Itoa(query.RadiusMeters))
	}
	setPaging(params, query.PageNo, query.NumOfRows)

	var resp hospitalListResponse
	if err := c.getXML(ctx, c.hospitalBase+"/getHospBasisList", params, &resp); err != nil {
		return nil, err
	}
	if err := checkHeader(resp.Header, "hospital registry"); err != nil {
		return nil, err
	}

	page := &HospitalPage{PageNo: resp.PageNo, TotalCount: resp.TotalCount}
	page.Hospitals = make([]entities.Hospital, 0, len(resp.Items))
	for _, item := range resp.Items {
		page.Hospitals = append(page.Hospitals, item.toEntity())
	}
	return page, nil
}

// ListNonPaymentItems fetches one non-payment page.
func (c *HTTPClient) ListNonPaymentItems(ctx context.Context, query ItemQuery) (*ItemPage, error) {
	params := url.Values{}
	setIfPresent(params, "yadmNm", query.HospitalName)
	setIfPresent(params, "itemCd", query.ItemCode)
	setIfPresent(params, "clCd", query.FacilityType)
	setIfPresent(params, "sidoCd", query.RegionCode)
	setIfPresent(params, "sgguCd", query.DistrictCode)
	setPaging(params, query.PageNo, query.NumOfRows)

	var resp nonPaymentListResponse
	if err := c.getXML(ctx, c.nonPaymentBase+"/getNonPaymentItemHospList", params, &resp); err != nil {
		return nil, err
	}
	if err := checkHeader(resp.Header, "non-payment list"); err != nil {
		return nil, err
	}

	page := &ItemPage{PageNo: resp.PageNo, TotalCount: resp.TotalCount}
	page.Items = make([]entities.NonPaymentItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		page.Items = append(page.Items, item.toEntity())
	}
	return page, nil
}

// GetOperatingHours fetches the time-window detail for one hospital.
func (c *HTTPClient) GetOperatingHours(ctx context.Context, ykiho string) (*entities.HospitalTimeInfo, error) {
	if strings.TrimSpace(ykiho) == "" {
		return nil, apperrors.NewValidationError("ykiho is required")
	}

	params := url.Values{}
	params.Set("ykiho", ykiho)

	var resp detailResponse
	if err := c.getXML(ctx, c.detailBase+"/getDtlInfo2.7", params, &resp); err != nil {
		return nil, err
	}
	if err := checkHeader(resp.Header, "hospital detail"); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, apperrors.NewNotFoundError("no detail info for hospital")
	}
	return resp.Items[0].toEntity(), nil
}

func (c *HTTPClient) getXML(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.NewNetworkError("rate limiter interrupted", err)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
		if err != nil {
			return nil, apperrors.NewInternalError("building hira request", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, apperrors.NewNetworkError("hira request failed", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, apperrors.NewNetworkError(fmt.Sprintf("hira returned status %d", resp.StatusCode), nil)
		}

		if err := decodeXML(resp.Body, out); err != nil {
			return nil, apperrors.NewParseError("decoding hira response", err)
		}
		return nil, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperrors.NewNetworkError("hira circuit open", err)
	}
	return err
}

func checkHeader(h responseHeader, source string) error {
	if h.ResultCode != resultCodeOK {
		return apperrors.NewNetworkError(
			fmt.Sprintf("%s signaled failure: %s %s", source, h.ResultCode, h.ResultMsg), nil)
	}
	return nil
}

func setIfPresent(params url.Values, key, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		params.Set(key, trimmed)
	}
}

func setPaging(params url.Values, pageNo, numOfRows int) {
	if pageNo <= 0 {
		pageNo = 1
	}
	if numOfRows <= 0 {
		numOfRows = 100
	}
	params.Set("pageNo", strconv.Itoa(pageNo))
	params.Set("numOfRows", strconv.Itoa(numOfRows))
}

package hira

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
	"github.com/Jin-yujin/doctorpay-backend/pkg/config"
	apperrors "github.com/Jin-yujin/doctorpay-backend/pkg/errors"
)

const hospitalListXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <header><resultCode>00</resultCode><resultMsg>NORMAL SERVICE.</resultMsg></header>
  <body>
    <items>
      <item>
        <ykiho>YK0001</ykiho>
        <yadmNm>서울중앙의원</yadmNm>
        <addr>서울특별시 중구 세종대로 110</addr>
        <telno>02-123-4567</telno>
        <clCdNm>의원</clCdNm>
        <sidoCdNm>서울</sidoCdNm>
        <sgguCdNm>중구</sgguCdNm>
        <emdongNm>태평로</emdongNm>
        <dgsbjtCd>01,12</dgsbjtCd>
        <XPos>126.9779</XPos>
        <YPos>37.5663</YPos>
      </item>
      <item>
        <yadmNm>무명치과의원</yadmNm>
        <sidoCdNm>서울</sidoCdNm>
        <sgguCdNm>중구</sgguCdNm>
      </item>
    </items>
    <numOfRows>100</numOfRows><pageNo>1</pageNo><totalCount>2</totalCount>
  </body>
</response>`

const nonPaymentListXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <header><resultCode>00</resultCode><resultMsg>NORMAL SERVICE.</resultMsg></header>
  <body>
    <items>
      <item>
        <yadmNm>서울중앙의원</yadmNm>
        <itemCd>NP001</itemCd>
        <itemNm>도수치료 (30분)</itemNm>
        <npayKorNm>도수치료</npayKorNm>
        <mnPrc>50,000</mnPrc>
        <mxPrc>120,000</mxPrc>
        <adtFrDd>20250101</adtFrDd>
      </item>
      <item>
        <yadmNm>무명치과의원</yadmNm>
        <itemCd>NP777</itemCd>
        <npayKorNm>치아미백</npayKorNm>
        <curAmt>300000</curAmt>
      </item>
    </items>
    <numOfRows>100</numOfRows><pageNo>1</pageNo><totalCount>2</totalCount>
  </body>
</response>`

const detailXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <header><resultCode>00</resultCode><resultMsg>NORMAL SERVICE.</resultMsg></header>
  <body>
    <items>
      <item>
        <trmtMonStart>0900</trmtMonStart>
        <trmtMonEnd>1800</trmtMonEnd>
        <trmtSatStart>0900</trmtSatStart>
        <trmtSatEnd>1300</trmtSatEnd>
        <lunchWeek>12시30분~13시30분</lunchWeek>
        <lunchSat>없음</lunchSat>
        <noTrmtSun>휴진</noTrmtSun>
        <emyDayYn>N</emyDayYn>
        <emyNgtYn>Y</emyNgtYn>
        <emyNgtTelNo1>02-999-0000</emyNgtTelNo1>
      </item>
    </items>
  </body>
</response>`

const upstreamErrorXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <header><resultCode>22</resultCode><resultMsg>LIMITED NUMBER OF SERVICE REQUESTS EXCEEDS</resultMsg></header>
  <body/>
</response>`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.HIRAConfig{
		ServiceKey:        "secret-key",
		HospitalBaseURL:   server.URL + "/hosp",
		NonPaymentBaseURL: server.URL + "/npay",
		DetailBaseURL:     server.URL + "/detail",
		Timeout:           2 * time.Second,
		RequestsPerSecond: 100,
	})
	return client, server
}

func TestListHospitals(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"ServiceKey": r.URL.Query().Get("ServiceKey"),
			"sidoCd":     r.URL.Query().Get("sidoCd"),
			"pageNo":     r.URL.Query().Get("pageNo"),
			"numOfRows":  r.URL.Query().Get("numOfRows"),
		}
		w.Write([]byte(hospitalListXML))
	})

	page, err := client.ListHospitals(context.Background(), HospitalQuery{RegionCode: "110000"})
	require.NoError(t, err)

	assert.Equal(t, "secret-key", gotQuery["ServiceKey"], "service key injected by transport")
	assert.Equal(t, "110000", gotQuery["sidoCd"])
	assert.Equal(t, "1", gotQuery["pageNo"])
	assert.Equal(t, "100", gotQuery["numOfRows"])

	require.Len(t, page.Hospitals, 2)
	assert.Equal(t, 2, page.TotalCount)

	first := page.Hospitals[0]
	assert.Equal(t, "YK0001", first.Ykiho)
	assert.Equal(t, "서울중앙의원", first.Name)
	assert.Equal(t, "서울특별시 중구 세종대로 110", first.Address)
	assert.Equal(t, "01,12", first.DeptCodes)
	assert.Equal(t, "126.9779", first.PosX)

	// Record without ykiho still lists; address falls back to region labels.
	second := page.Hospitals[1]
	assert.Empty(t, second.Ykiho)
	assert.Equal(t, "서울 중구", second.Address)
}

func TestListNonPaymentItems_VersionedPrices(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(nonPaymentListXML))
	})

	page, err := client.ListNonPaymentItems(context.Background(), ItemQuery{RegionCode: "110000"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	min, max, ok := page.Items[0].PriceRange()
	require.True(t, ok)
	assert.Equal(t, 50000, min, "thousands separators tolerated")
	assert.Equal(t, 120000, max)

	min, max, ok = page.Items[1].PriceRange()
	require.True(t, ok)
	assert.Equal(t, 300000, min, "single current amount counts as both bounds")
	assert.Equal(t, 300000, max)
}

func TestGetOperatingHours(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "YK0001", r.URL.Query().Get("ykiho"))
		w.Write([]byte(detailXML))
	})

	info, err := client.GetOperatingHours(context.Background(), "YK0001")
	require.NoError(t, err)

	assert.Equal(t, &entities.ClockTime{Hour: 9, Minute: 0}, info.WeekdayOpen)
	assert.Equal(t, &entities.ClockTime{Hour: 18, Minute: 0}, info.WeekdayClose)
	require.NotNil(t, info.WeekdayLunch)
	assert.Equal(t, entities.ClockTime{Hour: 12, Minute: 30}, info.WeekdayLunch.Start)
	assert.Nil(t, info.SaturdayLunch, "sentinel means no Saturday lunch break")
	assert.Nil(t, info.SundayOpen, "no-Sunday-treatment clears the Sunday window")
	assert.False(t, info.EmergencyDay)
	assert.True(t, info.EmergencyNight)
	assert.Equal(t, "02-999-0000", info.EmergencyNightPhone)
}

func TestGetOperatingHours_RequiresYkiho(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.GetOperatingHours(context.Background(), " ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestErrorMapping(t *testing.T) {
	t.Run("upstream failure header maps to network error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(upstreamErrorXML))
		})
		_, err := client.ListHospitals(context.Background(), HospitalQuery{})
		assert.True(t, apperrors.IsNetwork(err), "got %v", err)
	})

	t.Run("http failure maps to network error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := client.ListHospitals(context.Background(), HospitalQuery{})
		assert.True(t, apperrors.IsNetwork(err), "got %v", err)
	})

	t.Run("malformed xml maps to parse error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<response><header>"))
		})
		_, err := client.ListHospitals(context.Background(), HospitalQuery{})
		assert.True(t, apperrors.IsParse(err), "got %v", err)
	})
}

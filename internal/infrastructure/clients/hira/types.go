package hira

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
)

func decodeXML(r io.Reader, out any) error {
	return xml.NewDecoder(r).Decode(out)
}

// Canonical response schema for the three open-data endpoints. The portal
// has shipped two generations of the non-payment shape (min/max price vs a
// single current amount); both live here as optional fields and the mapping
// layer resolves them, so the rest of the codebase sees exactly one set of
// types.

type responseHeader struct {
	ResultCode string `xml:"resultCode"`
	ResultMsg  string `xml:"resultMsg"`
}

const resultCodeOK = "00"

type hospitalListResponse struct {
	XMLName    xml.Name       `xml:"response"`
	Header     responseHeader `xml:"header"`
	Items      []hospitalItem `xml:"body>items>item"`
	NumOfRows  int            `xml:"body>numOfRows"`
	PageNo     int            `xml:"body>pageNo"`
	TotalCount int            `xml:"body>totalCount"`
}

type hospitalItem struct {
	Ykiho        string `xml:"ykiho"`
	Name         string `xml:"yadmNm"`
	Address      string `xml:"addr"`
	Phone        string `xml:"telno"`
	FacilityType string `xml:"clCdNm"`
	Region       string `xml:"sidoCdNm"`
	District     string `xml:"sgguCdNm"`
	Neighborhood string `xml:"emdongNm"`
	DeptCodes    string `xml:"dgsbjtCd"`
	XPos         string `xml:"XPos"`
	YPos         string `xml:"YPos"`
}

func (i hospitalItem) toEntity() entities.Hospital {
	return entities.Hospital{
		Ykiho:        strings.TrimSpace(i.Ykiho),
		Name:         strings.TrimSpace(i.Name),
		Address:      buildAddress(i),
		Region:       strings.TrimSpace(i.Region),
		District:     strings.TrimSpace(i.District),
		Neighborhood: strings.TrimSpace(i.Neighborhood),
		Phone:        strings.TrimSpace(i.Phone),
		DeptCodes:    strings.TrimSpace(i.DeptCodes),
		FacilityType: strings.TrimSpace(i.FacilityType),
		PosX:         strings.TrimSpace(i.XPos),
		PosY:         strings.TrimSpace(i.YPos),
	}
}

// buildAddress prefers the full street address and falls back to the
// concatenated region labels, skipping blanks.
func buildAddress(i hospitalItem) string {
	if addr := strings.TrimSpace(i.Address); addr != "" {
		return addr
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{i.Region, i.District, i.Neighborhood} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

type nonPaymentListResponse struct {
	XMLName    xml.Name         `xml:"response"`
	Header     responseHeader   `xml:"header"`
	Items      []nonPaymentItem `xml:"body>items>item"`
	NumOfRows  int              `xml:"body>numOfRows"`
	PageNo     int              `xml:"body>pageNo"`
	TotalCount int              `xml:"body>totalCount"`
}

type nonPaymentItem struct {
	HospitalName  string `xml:"yadmNm"`
	ItemCode      string `xml:"itemCd"`
	ItemName      string `xml:"itemNm"`
	KorName       string `xml:"npayKorNm"`
	MinPrice      string `xml:"mnPrc"`  // older shape
	MaxPrice      string `xml:"mxPrc"`  // older shape
	CurAmount     string `xml:"curAmt"` // newer shape
	EffectiveDate string `xml:"adtFrDd"`
	SpecialNote   string `xml:"spcmfyTrgt"`
}

func (i nonPaymentItem) toEntity() entities.NonPaymentItem {
	return entities.NonPaymentItem{
		HospitalName:  strings.TrimSpace(i.HospitalName),
		ItemCode:      strings.TrimSpace(i.ItemCode),
		Name:          strings.TrimSpace(i.KorName),
		Description:   strings.TrimSpace(i.ItemName),
		MinPrice:      parsePrice(i.MinPrice),
		MaxPrice:      parsePrice(i.MaxPrice),
		CurAmount:     parsePrice(i.CurAmount),
		EffectiveDate: strings.TrimSpace(i.EffectiveDate),
		SpecialNote:   strings.TrimSpace(i.SpecialNote),
	}
}

// parsePrice parses a won amount, tolerating thousands separators. Missing
// or malformed amounts map to nil, not zero: zero is a real price.
func parsePrice(raw string) *int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return nil
	}
	value, err := strconv.Atoi(cleaned)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

type detailResponse struct {
	XMLName xml.Name       `xml:"response"`
	Header  responseHeader `xml:"header"`
	Items   []detailItem   `xml:"body>items>item"`
}

type detailItem struct {
	TrmtMonStart string `xml:"trmtMonStart"`
	TrmtMonEnd   string `xml:"trmtMonEnd"`
	TrmtSatStart string `xml:"trmtSatStart"`
	TrmtSatEnd   string `xml:"trmtSatEnd"`
	TrmtSunStart string `xml:"trmtSunStart"`
	TrmtSunEnd   string `xml:"trmtSunEnd"`
	LunchWeek    string `xml:"lunchWeek"`
	LunchSat     string `xml:"lunchSat"`
	NoTrmtSun    string `xml:"noTrmtSun"`
	EmyDayYn     string `xml:"emyDayYn"`
	EmyDayTel    string `xml:"emyDayTelNo1"`
	EmyNightYn   string `xml:"emyNgtYn"`
	EmyNightTel  string `xml:"emyNgtTelNo1"`
	ClosedYn     string `xml:"closYn"`
}

func (i detailItem) toEntity() *entities.HospitalTimeInfo {
	info := &entities.HospitalTimeInfo{
		WeekdayOpen:         entities.ParseClockTime(i.TrmtMonStart),
		WeekdayClose:        entities.ParseClockTime(i.TrmtMonEnd),
		SaturdayOpen:        entities.ParseClockTime(i.TrmtSatStart),
		SaturdayClose:       entities.ParseClockTime(i.TrmtSatEnd),
		SundayOpen:          entities.ParseClockTime(i.TrmtSunStart),
		SundayClose:         entities.ParseClockTime(i.TrmtSunEnd),
		WeekdayLunch:        entities.ParseLunchWindow(i.LunchWeek),
		SaturdayLunch:       entities.ParseLunchWindow(i.LunchSat),
		EmergencyDay:        isYes(i.EmyDayYn),
		EmergencyDayPhone:   strings.TrimSpace(i.EmyDayTel),
		EmergencyNight:      isYes(i.EmyNightYn),
		EmergencyNightPhone: strings.TrimSpace(i.EmyNightTel),
		Closed:              isYes(i.ClosedYn),
	}

	// An explicit no-Sunday-treatment mark clears any stray Sunday window
	// so the state machine resolves Sundays to CLOSED.
	if isYes(i.NoTrmtSun) || strings.Contains(i.NoTrmtSun, "휴진") {
		info.SundayOpen = nil
		info.SundayClose = nil
	}
	return info
}

func isYes(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "Y")
}

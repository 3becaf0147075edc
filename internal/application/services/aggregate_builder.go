package services

import (
	"strconv"
	"time"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
)

// BuildHospitalInfo composes one aggregate from a registry record, its
// matched non-payment items, and the optional time profile. Pure: no I/O,
// no mutation of inputs.
func BuildHospitalInfo(
	record entities.Hospital,
	items []entities.NonPaymentItem,
	timeInfo *entities.HospitalTimeInfo,
	classifier *DepartmentClassifier,
	now time.Time,
) *entities.HospitalInfo {
	if items == nil {
		items = []entities.NonPaymentItem{}
	}

	info := &entities.HospitalInfo{
		Ykiho:        record.Ykiho,
		Name:         record.Name,
		Address:      record.Address,
		Phone:        record.Phone,
		FacilityType: record.FacilityType,
		Longitude:    parseCoordinate(record.PosX),
		Latitude:     parseCoordinate(record.PosY),
		Departments:  classifier.Classify(record.Name, items, record.DeptCodes),
		DeptCodes:    SplitDeptCodes(record.DeptCodes),
		Items:        items,
		TimeInfo:     timeInfo,
	}
	info.StateText = timeInfo.StateAt(now).DisplayText()
	return info
}

// parseCoordinate parses a raw position string. Absent or unparseable
// positions become 0.0; downstream treats (0, 0) as "no location".
func parseCoordinate(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0.0
	}
	return value
}

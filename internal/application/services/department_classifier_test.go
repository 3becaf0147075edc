package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
)

func TestClassifyByHospitalName(t *testing.T) {
	classifier := NewDepartmentClassifier()

	tests := []struct {
		name         string
		hospitalName string
		expected     []string
	}{
		{"internal medicine clinic", "서울튼튼내과의원", []string{"내과"}},
		{"dental clinic", "밝은미소치과", []string{"치과"}},
		{"korean medicine clinic", "경희한의원", []string{"한의원"}},
		{"orthopedics matches the general surgery keyword too", "연세정형외과의원", []string{"외과", "정형외과"}},
		{"no keyword match", "서울중앙병원", nil},
		{"blank name", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.hospitalName, nil, "")
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassifyUnionAcrossSources(t *testing.T) {
	classifier := NewDepartmentClassifier()

	items := []entities.NonPaymentItem{
		{Name: "치과 임플란트"},
		{Description: "도수치료"},
	}

	got := classifier.Classify("서울내과의원", items, "")

	// Name contributes 내과, the items contribute 치과; both survive.
	assert.Contains(t, got, "내과")
	assert.Contains(t, got, "치과")
}

func TestClassifyTaxonomyOrderAndDedup(t *testing.T) {
	classifier := NewDepartmentClassifier()

	items := []entities.NonPaymentItem{
		{Name: "치과 스케일링"},
		{Name: "임플란트 식립"},
	}

	got := classifier.Classify("강남치과의원", items, "49")

	assert.Equal(t, []string{"치과"}, got)
}

func TestClassifyByRegistryCodes(t *testing.T) {
	classifier := NewDepartmentClassifier()

	got := classifier.Classify("서울중앙병원", nil, "01, 05")
	assert.Equal(t, []string{"내과", "정형외과"}, got)
}

func TestClassifyUnknownCodeFallsBack(t *testing.T) {
	classifier := NewDepartmentClassifier()

	got := classifier.Classify("서울중앙병원", nil, "99")
	assert.Equal(t, []string{entities.FallbackDepartment}, got)
}

func TestSplitDeptCodes(t *testing.T) {
	assert.Nil(t, SplitDeptCodes(""))
	assert.Nil(t, SplitDeptCodes("   "))
	assert.Equal(t, []string{"01", "05"}, SplitDeptCodes("01,05"))
	assert.Equal(t, []string{"01", "05"}, SplitDeptCodes(" 01 , 05 , "))
}

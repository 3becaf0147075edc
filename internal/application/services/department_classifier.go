package services

import (
	"strings"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
)

// DepartmentClassifier maps a hospital's name, its non-payment item names,
// and its registry department codes onto the closed department taxonomy.
type DepartmentClassifier struct {
	categories []entities.DepartmentCategory
	byCode     map[string]string
}

// NewDepartmentClassifier builds a classifier over the default taxonomy.
func NewDepartmentClassifier() *DepartmentClassifier {
	byCode := make(map[string]string)
	for _, category := range entities.DepartmentCategories {
		for _, code := range category.Codes {
			byCode[code] = category.Name
		}
	}
	return &DepartmentClassifier{
		categories: entities.DepartmentCategories,
		byCode:     byCode,
	}
}

// Classify returns the union of all matching category names, in taxonomy
// order, each at most once. Three signal sources contribute:
//
//   - keywords matched against the hospital name
//   - keywords matched against each item's display name
//   - registry codes resolved by exact membership, unmapped codes falling
//     back to the catch-all category
//
// Keyword matching is case-insensitive substring containment and may add
// several categories; it never overrides earlier matches. Empty input at
// every stage yields an empty result.
func (c *DepartmentClassifier) Classify(hospitalName string, items []entities.NonPaymentItem, deptCodes string) []string {
	matched := make(map[string]bool)

	c.matchKeywords(hospitalName, matched)
	for _, item := range items {
		c.matchKeywords(item.DisplayName(), matched)
	}

	for _, code := range SplitDeptCodes(deptCodes) {
		if name, ok := c.byCode[code]; ok {
			matched[name] = true
		} else {
			matched[entities.FallbackDepartment] = true
		}
	}

	result := make([]string, 0, len(matched))
	for _, category := range c.categories {
		if matched[category.Name] {
			result = append(result, category.Name)
		}
	}
	return result
}

func (c *DepartmentClassifier) matchKeywords(text string, matched map[string]bool) {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return
	}
	for _, category := range c.categories {
		if matched[category.Name] {
			continue
		}
		for _, keyword := range category.Keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				matched[category.Name] = true
				break
			}
		}
	}
}

// SplitDeptCodes splits the raw comma-separated registry code string,
// trimming each entry and dropping blanks.
func SplitDeptCodes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			codes = append(codes, trimmed)
		}
	}
	return codes
}

package entities

// DepartmentCategory is one entry of the closed department taxonomy. Codes
// are registry department codes (dgsbjtCd) owned exclusively by the
// category; keywords are matched as case-insensitive substrings against
// hospital names and non-payment item names and may hit several categories.
type DepartmentCategory struct {
	Name     string
	Codes    []string
	Keywords []string
}

// FallbackDepartment absorbs every registry code no category claims.
const FallbackDepartment = "기타 진료과"

// DepartmentCategories is the taxonomy, in display order. The fallback
// category is last and intentionally keyword-less.
var DepartmentCategories = []DepartmentCategory{
	{
		Name:     "내과",
		Codes:    []string{"01", "20"},
		Keywords: []string{"내과", "소화기", "내시경", "당뇨", "독감"},
	},
	{
		Name:     "외과",
		Codes:    []string{"04", "06", "07", "08"},
		Keywords: []string{"외과", "수술"},
	},
	{
		Name:     "정형외과",
		Codes:    []string{"05", "21"},
		Keywords: []string{"정형외과", "도수치료", "체외충격파", "물리치료", "재활"},
	},
	{
		Name:     "소아청소년과",
		Codes:    []string{"11"},
		Keywords: []string{"소아", "아동"},
	},
	{
		Name:     "산부인과",
		Codes:    []string{"10"},
		Keywords: []string{"산부인과", "여성의원"},
	},
	{
		Name:     "안과",
		Codes:    []string{"12"},
		Keywords: []string{"안과", "라식", "라섹", "백내장"},
	},
	{
		Name:     "이비인후과",
		Codes:    []string{"13"},
		Keywords: []string{"이비인후과", "비염"},
	},
	{
		Name:     "피부과",
		Codes:    []string{"14"},
		Keywords: []string{"피부", "레이저", "보톡스", "필러"},
	},
	{
		Name:     "비뇨의학과",
		Codes:    []string{"15"},
		Keywords: []string{"비뇨"},
	},
	{
		Name:     "신경·정신의학과",
		Codes:    []string{"02", "03"},
		Keywords: []string{"신경과", "정신건강", "심리"},
	},
	{
		Name:     "치과",
		Codes:    []string{"49", "50", "51", "52", "53", "54", "55", "56", "57", "58", "59", "60", "61"},
		Keywords: []string{"치과", "임플란트", "스케일링", "교정", "틀니", "충치"},
	},
	{
		Name:     "한의원",
		Codes:    []string{"80", "81", "82", "83", "84", "85", "86", "87", "88"},
		Keywords: []string{"한방", "한의", "침", "추나", "한약"},
	},
	{
		Name:     "가정의학과",
		Codes:    []string{"23"},
		Keywords: []string{"가정의학"},
	},
	{
		Name:     "검진·영상의학과",
		Codes:    []string{"16", "19", "22"},
		Keywords: []string{"검진", "MRI", "CT", "초음파", "엑스레이"},
	},
	{
		Name: FallbackDepartment,
		// Unclaimed codes (00 일반의, 09 마취통증의학과, 17, 18, 24, 25,
		// 26, ...) land here via the classifier fallback.
	},
}

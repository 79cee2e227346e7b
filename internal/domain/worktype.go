package domain

import "fmt"

// WorkType is a large construction category with its medium categories.
type WorkType struct {
	Key    string
	Large  string
	Medium []string
}

// WorkTypeCatalog is the fixed large/medium classification tasks are filed
// under. Names match the accident dataset the model was trained on.
var WorkTypeCatalog = []WorkType{
	{Key: "building", Large: "건축물", Medium: []string{
		"공동주택", "공장", "업무시설", "교육연구시설", "근린생활시설",
		"창고시설", "기타", "문화 및 집회시설", "숙박시설",
		"단독주택", "교정 및 군사시설", "운동시설",
	}},
	{Key: "water_supply", Large: "상하수도", Medium: []string{"하수도", "상수도", "기타"}},
	{Key: "road", Large: "도로", Medium: []string{"도로", "기타"}},
	{Key: "others", Large: "기타", Medium: []string{"부지조성", "간이배관"}},
	{Key: "bridge", Large: "교량", Medium: []string{"도로교량", "기타", "철도교량", "복개구조물"}},
	{Key: "river", Large: "하천", Medium: []string{"제방통관", "관거수로", "배수펌프장", "수문", "보"}},
	{Key: "tunnel", Large: "터널", Medium: []string{"철도터널", "도로터널", "기타", "지하차도"}},
	{Key: "railway", Large: "철도", Medium: []string{"지하철", "일반 및 고속철도", "기타"}},
	{Key: "port", Large: "항만", Medium: []string{"기타", "방파제", "계류시설", "호안", "갑문", "피사지"}},
	{Key: "retaining", Large: "옹벽 및 절토사면", Medium: []string{"옹벽", "절토사면", "기타"}},
	{Key: "environmental", Large: "환경시설", Medium: []string{
		"하수처리시설", "환경오염방지시설", "소각장",
		"수처리시험시설", "공공폐수처리시설", "중수도",
	}},
	{Key: "industrial", Large: "산업생산시설", Medium: []string{"석유화학공장", "제철공장"}},
	{Key: "dam", Large: "댐", Medium: []string{"용수전용댐", "기타", "다목적댐", "홍수전용댐"}},
}

// LookupWorkType finds a large category by its Korean name or English key.
func LookupWorkType(large string) (WorkType, bool) {
	for _, wt := range WorkTypeCatalog {
		if wt.Large == large || wt.Key == large {
			return wt, true
		}
	}
	return WorkType{}, false
}

// HasMedium reports whether medium belongs to the large category.
func (wt WorkType) HasMedium(medium string) bool {
	for _, m := range wt.Medium {
		if m == medium {
			return true
		}
	}
	return false
}

// ValidateClassification checks a large/medium pair against the catalog and
// returns the canonical Korean large name.
func ValidateClassification(large, medium string) (string, error) {
	wt, ok := LookupWorkType(large)
	if !ok {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidTask, large)
	}
	if !wt.HasMedium(medium) {
		return "", fmt.Errorf("%w: subcategory %q is not part of %s", ErrInvalidTask, medium, wt.Large)
	}
	return wt.Large, nil
}

package recipe

import "strconv"

// QuantityUnit 是导出文件中 quantityType 的封闭枚举。
type QuantityUnit int

const (
	UnitItem QuantityUnit = iota
	UnitGrams
	UnitMills
	UnitCup
	UnitTablespoon
	UnitTeaspoon
	UnitSection
	UnitUnknown
)

// SectionLabel 是分节配料的数量标签，它不是真实数量。
const SectionLabel = "--section--"

// unknownSuffix 让无法识别的单位在输出中可见，而不是被静默丢弃。
const unknownSuffix = "???"

var unitCodes = map[string]QuantityUnit{
	"ITEM":       UnitItem,
	"GRAMS":      UnitGrams,
	"MILLS":      UnitMills,
	"CUP":        UnitCup,
	"TABLESPOON": UnitTablespoon,
	"TEASPOON":   UnitTeaspoon,
	"SECTION":    UnitSection,
}

var unitSuffixes = map[QuantityUnit]string{
	UnitItem:       "",
	UnitGrams:      "gr",
	UnitMills:      "ml",
	UnitCup:        "cup",
	UnitTablespoon: "tbsp",
	UnitTeaspoon:   "tsp",
	UnitSection:    "",
	UnitUnknown:    unknownSuffix,
}

// ParseUnit 把单位代码映射到枚举值；未知代码返回 (UnitUnknown, false)。
func ParseUnit(code string) (QuantityUnit, bool) {
	u, ok := unitCodes[code]
	if !ok {
		return UnitUnknown, false
	}
	return u, true
}

// Suffix 返回单位在数量标签中的后缀。
func (u QuantityUnit) Suffix() string {
	if s, ok := unitSuffixes[u]; ok {
		return s
	}
	return unknownSuffix
}

func (u QuantityUnit) String() string {
	for code, v := range unitCodes {
		if v == u {
			return code
		}
	}
	return "UNKNOWN"
}

// FormatQuantity 生成 "{amount}{suffix}" 形式的数量标签，SECTION 固定为 "--section--"。
func FormatQuantity(amount float64, u QuantityUnit) string {
	if u == UnitSection {
		return SectionLabel
	}
	return formatAmount(amount) + u.Suffix()
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

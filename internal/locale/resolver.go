// Package locale maps built-in category keys to display names for the
// supported languages.
package locale

import (
	"log/slog"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English, // fallback
	language.Vietnamese,
}

var matcher = language.NewMatcher(supported)

var names = map[language.Tag]map[string]string{
	language.English: {
		"cat_food":          "Food",
		"cat_transport":     "Transport",
		"cat_bills":         "Bills",
		"cat_entertainment": "Entertainment",
		"cat_shopping":      "Shopping",
		"cat_health":        "Health",
		"cat_education":     "Education",
		"cat_salary":        "Salary",
		"cat_bonus":         "Bonus",
		"cat_allowance":     "Allowance",
		"cat_investment":    "Investment",
		"cat_selling":       "Selling",
		"cat_gifted":        "Gifted",
		"cat_other":         "Other",
	},
	language.Vietnamese: {
		"cat_food":          "Ăn uống",
		"cat_transport":     "Di chuyển",
		"cat_bills":         "Hóa đơn",
		"cat_entertainment": "Giải trí",
		"cat_shopping":      "Mua sắm",
		"cat_health":        "Sức khỏe",
		"cat_education":     "Giáo dục",
		"cat_salary":        "Lương",
		"cat_bonus":         "Thưởng",
		"cat_allowance":     "Trợ cấp",
		"cat_investment":    "Đầu tư",
		"cat_selling":       "Bán hàng",
		"cat_gifted":        "Được tặng",
		"cat_other":         "Khác",
	},
}

// Resolver resolves built-in category keys to display names in one
// matched language.
type Resolver struct {
	tag language.Tag
}

// NewResolver matches the requested locale (a BCP 47 tag such as "en"
// or "vi-VN") against the supported languages. Unrecognized or
// unsupported locales fall back to English.
func NewResolver(locale string) *Resolver {
	if locale == "" {
		return &Resolver{tag: language.English}
	}
	_, idx, conf := matcher.Match(language.Make(locale))
	tag := supported[idx]
	if conf == language.No {
		tag = language.English
	}
	slog.Debug("resolved locale", "requested", locale, "matched", tag)
	return &Resolver{tag: tag}
}

// Tag reports the matched language.
func (r *Resolver) Tag() language.Tag {
	return r.tag
}

// DisplayName returns the localized name for a built-in category key.
// Unknown keys report ok=false.
func (r *Resolver) DisplayName(key string) (string, bool) {
	name, ok := names[r.tag][key]
	return name, ok
}

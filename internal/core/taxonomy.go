package core

type (
	// Currency is a fixed member of the supported currency enumeration.
	Currency struct {
		Code   string `json:"code"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	}

	// Category is a fixed classification tag for an expense.
	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
)

// DefaultCurrency is the base currency used when none is supplied.
const DefaultCurrency = "TWD"

// OtherCategoryID is the catch-all category; its presentation is also the
// fallback for unrecognized category ids.
const OtherCategoryID = "other"

// Currencies is the fixed currency table, in display order.
var Currencies = []Currency{
	{Code: "TWD", Symbol: "NT$", Name: "New Taiwan dollar"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese yen"},
	{Code: "USD", Symbol: "$", Name: "US dollar"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean won"},
}

// Categories is the fixed category table, in display order.
var Categories = []Category{
	{ID: "food", Name: "Food", Icon: "🍽️", Color: "#f87171"},
	{ID: "transport", Name: "Transport", Icon: "🚆", Color: "#60a5fa"},
	{ID: "stay", Name: "Stay", Icon: "🏨", Color: "#818cf8"},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#f472b6"},
	{ID: "tickets", Name: "Tickets", Icon: "🎫", Color: "#fbbf24"},
	{ID: OtherCategoryID, Name: "Other", Icon: "📦", Color: "#94a3b8"},
}

// CategoryByID resolves a category id. Unrecognized ids keep their raw id as
// the display name and borrow the "other" presentation; they never fail.
func CategoryByID(id string) Category {
	for _, c := range Categories {
		if c.ID == id {
			return c
		}
	}
	other := Categories[len(Categories)-1]
	return Category{ID: id, Name: id, Icon: other.Icon, Color: other.Color}
}

// CurrencyByCode resolves a currency code, degrading to a bare-code entry
// for codes outside the table.
func CurrencyByCode(code string) Currency {
	for _, c := range Currencies {
		if c.Code == code {
			return c
		}
	}
	return Currency{Code: code, Symbol: code, Name: code}
}

func isKnownCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

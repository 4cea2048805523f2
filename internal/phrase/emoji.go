package phrase

const DefaultCategoryEmoji = "🗂️"

var categoryEmoji = map[string]string{
	"Greetings":           "👋🏼",
	"Directions":          "🗺️",
	"Money & Shopping":    "💰🛍️",
	"Prayer Phrases":      "🤲🏼",
	"Customs & Etiquette": "🤝🏼",
	"Food - General":      "🍽️",
	"Food - Meat":         "🥩🍗",
	"Food - Drinks":       "🧃☕️",
	"Food - Fruit":        "🍎",
	"Airport":             "✈️🛂",
	"Luggage & Baggage":   "🧳",
	"Emergency":           "🏥🚑",
}

// CategoryEmoji returns the label icon of a category, or a generic one for categories without an icon.
func CategoryEmoji(category string) string {
	if emoji, ok := categoryEmoji[category]; ok {
		return emoji
	}
	return DefaultCategoryEmoji
}

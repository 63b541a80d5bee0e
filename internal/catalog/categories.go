package catalog

// CategoryInfo describes one of the fixed wine buckets the catalog API serves.
type CategoryInfo struct {
	Key         string
	Label       string
	Description string
}

// Categories lists the known catalog endpoints in presentation order. Each key
// doubles as the path segment of the API URL.
var Categories = []CategoryInfo{
	{
		Key:         "reds",
		Label:       "Red 🍷",
		Description: "Bold, rich and full-bodied red wines. Pairs well with meat dishes. Avg. price: $15–40.",
	},
	{
		Key:         "whites",
		Label:       "White 🥂",
		Description: "Crisp, fresh and fruity white wines. Great for poultry or fish. Avg. price: $12–35.",
	},
	{
		Key:         "rose",
		Label:       "Rosé 🌸",
		Description: "Light, refreshing and slightly sweet. Perfect for summer evenings. Avg. price: $10–30.",
	},
	{
		Key:         "sparkling",
		Label:       "Sparkling 🍾",
		Description: "Bubbly and festive. Ideal for celebrations. Avg. price: $20–50.",
	},
	{
		Key:         "dessert",
		Label:       "Dessert 🍮",
		Description: "Very sweet and often fruity. Best with desserts or cheese. Avg. price: $15–40.",
	},
	{
		Key:         "port",
		Label:       "Port 🍷🔥",
		Description: "Sweet, strong, and rich. Often served after meals. Avg. price: $25–60.",
	},
}

// IsKnownCategory reports whether key is one of the fixed catalog buckets.
func IsKnownCategory(key string) bool {
	for _, c := range Categories {
		if c.Key == key {
			return true
		}
	}
	return false
}

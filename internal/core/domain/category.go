package domain

// Category is static display metadata for a marker category. The table is
// defined once at process start and never mutated.
type Category struct {
	ID      string `json:"id"`
	NameKey string `json:"nameKey"`
	Color   string `json:"color"`
	Icon    string `json:"icon"`
}

// categories is the closed category enumeration, keyed by id. Colors are
// unique per category; the front-end resolves NameKey through its dictionary.
var categories = map[string]Category{
	"sharing": {ID: "sharing", NameKey: "category.sharing", Color: "#00E5E0", Icon: "🔄"},
	"jobs":    {ID: "jobs", NameKey: "category.jobs", Color: "#4BC9FF", Icon: "💼"},
	"swap":    {ID: "swap", NameKey: "category.swap", Color: "#FF9F43", Icon: "🔁"},
	"food":    {ID: "food", NameKey: "category.food", Color: "#FF5A8E", Icon: "🍽️"},
	"events":  {ID: "events", NameKey: "category.events", Color: "#B15CFF", Icon: "📅"},
}

// categoryOrder fixes the display order of the enumeration.
var categoryOrder = []string{"sharing", "jobs", "swap", "food", "events"}

// LookupCategory returns the metadata for a category id. Callers must handle
// the missing case; a marker referencing an unknown category is a
// data-integrity fault and is rejected at ingestion, not at render time.
func LookupCategory(id string) (Category, bool) {
	c, ok := categories[id]
	return c, ok
}

// Categories returns the full category table in display order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryOrder))
	for _, id := range categoryOrder {
		out = append(out, categories[id])
	}
	return out
}

package catalog

// The catalog is fixed configuration: two categories, seven items. Items are
// unique across categories, so an item name alone identifies its category.
var entries = []struct {
	name  string
	items []string
}{
	{"clasificados", []string{"Edictos", "Cristina", "Homero", "MP", "Qhubo"}},
	{"suscripciones", []string{"Ana", "Juliana"}},
}

// Categories returns the category names in display order.
func Categories() []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.name)
	}
	return names
}

// ItemsOf returns the items of a category in display order, or nil for an
// unknown category.
func ItemsOf(category string) []string {
	for _, e := range entries {
		if e.name == category {
			items := make([]string, len(e.items))
			copy(items, e.items)
			return items
		}
	}
	return nil
}

// CategoryOf resolves the category an item belongs to.
func CategoryOf(item string) (string, bool) {
	for _, e := range entries {
		for _, it := range e.items {
			if it == item {
				return e.name, true
			}
		}
	}
	return "", false
}

// Contains reports whether the (category, item) pair is part of the catalog.
func Contains(category, item string) bool {
	cat, ok := CategoryOf(item)
	return ok && cat == category
}

// Title renders a category name for display, capitalizing the first letter.
func Title(category string) string {
	if category == "" || category[0] < 'a' || category[0] > 'z' {
		return category
	}
	return string(category[0]-'a'+'A') + category[1:]
}

package menu

// Item represents a single navigation entry within a menu.
// Items reference their parent by ID; a nil ParentID places the item at the root.
type Item struct {
	// ID is the unique identifier of the item.
	ID int64 `json:"id"`

	// MenuID is the ID of the menu the item belongs to.
	MenuID int64 `json:"menu_id"`

	// ParentID is the ID of the parent item within the same menu, nil for root items.
	ParentID *int64 `json:"parent_id,omitempty"`

	// Title is the display title of the item.
	Title string `json:"title"`

	// Order is the sibling order key.
	Order int `json:"order"`

	// URL is an optional literal URL matched exactly against the request path.
	URL string `json:"url,omitempty"`

	// RouteName is an optional symbolic route name.
	RouteName string `json:"route_name,omitempty"`
}

// Reverser maps a symbolic route name back to its path.
type Reverser interface {
	Reverse(name string) (string, error)
}

// IsRoot returns true if the item has no parent.
func (i *Item) IsRoot() bool {
	return i.ParentID == nil
}

// Href returns the link target for the item.
// The literal URL wins when set, otherwise the route name is reversed.
// Returns an empty string when neither yields a path.
func (i *Item) Href(r Reverser) string {
	if i.URL != "" {
		return i.URL
	}

	if i.RouteName == "" || r == nil {
		return ""
	}

	p, err := r.Reverse(i.RouteName)
	if err != nil {
		return ""
	}

	return p
}

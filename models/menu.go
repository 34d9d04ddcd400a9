package models

type Category struct {
	ID          int64
	Name        string
	Description string
	Active      bool
}

type MenuItem struct {
	ID           int64
	Name         string
	Description  string
	Price        float64
	CategoryID   int64
	CategoryName string // joined for display, empty on bare reads
	Available    bool
}

// MenuItemPatch is a sparse update: nil fields are left untouched.
type MenuItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *int64
	Available   *bool
}

func (p MenuItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.CategoryID == nil && p.Available == nil
}

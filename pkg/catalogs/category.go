package catalogs

// Category is one entry of the category taxonomy.
type Category struct {
	Category    string   `json:"category" yaml:"category"`
	SubCategory []string `json:"subCategory" yaml:"subCategory"`
}

// Taxonomy is the bundled category/sub-category tree.
type Taxonomy []Category

// SubCategoriesOf returns the sub-categories the taxonomy places under category.
func (t Taxonomy) SubCategoriesOf(category string) []string {
	for _, c := range t {
		if c.Category == category {
			return c.SubCategory
		}
	}
	return nil
}

// Copy returns a deep copy of the taxonomy.
func (t Taxonomy) Copy() Taxonomy {
	if t == nil {
		return nil
	}
	out := make(Taxonomy, len(t))
	for i, c := range t {
		out[i] = Category{Category: c.Category, SubCategory: cloneSlice(c.SubCategory)}
	}
	return out
}

// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Province is a first-level administrative division. IDs follow the INDEC two-digit codes ("06").
type Province struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// City belongs to exactly one Province.
type City struct {
	ID         string `json:"id"`
	ProvinceID string `json:"provinciaId"`
	Name       string `json:"nombre"`
}

// Category is a top-level business classification (e.g. "Gastronomía").
type Category struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
	Icon string `json:"icono,omitempty"`
}

// Subcategory refines a Category.
type Subcategory struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoriaId"`
	Name       string `json:"nombre"`
}

// Catalog groups the reference collections used to resolve denormalized names.
type Catalog struct {
	Provinces     []Province    `json:"provinces"`
	Cities        []City        `json:"cities"`
	Categories    []Category    `json:"categories"`
	Subcategories []Subcategory `json:"subcategories"`
}

// ProvinceName returns the name for id, or "" when unknown.
func (c *Catalog) ProvinceName(id string) string {
	for _, p := range c.Provinces {
		if p.ID == id {
			return p.Name
		}
	}

	return ""
}

// CityName returns the name for id, or "" when unknown.
func (c *Catalog) CityName(id string) string {
	for _, city := range c.Cities {
		if city.ID == id {
			return city.Name
		}
	}

	return ""
}

// CategoryName returns the name for id, or "" when unknown.
func (c *Catalog) CategoryName(id string) string {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat.Name
		}
	}

	return ""
}

// SubcategoryName returns the name for id, or "" when unknown.
func (c *Catalog) SubcategoryName(id string) string {
	for _, sub := range c.Subcategories {
		if sub.ID == id {
			return sub.Name
		}
	}

	return ""
}

// Denormalize copies the catalog names of b's ids into its name fields.
func (c *Catalog) Denormalize(b *Business) {
	b.ProvinceName = c.ProvinceName(b.ProvinceID)
	b.CityName = c.CityName(b.CityID)
	b.CategoryName = c.CategoryName(b.CategoryID)
	b.SubcategoryName = c.SubcategoryName(b.SubcategoryID)
}

// Validate checks that b references known catalog entries and that city and
// subcategory belong to the chosen province and category.
func (c *Catalog) Validate(b *Business) bool {
	if c.ProvinceName(b.ProvinceID) == "" || c.CategoryName(b.CategoryID) == "" {
		return false
	}
	if b.CityID != "" && !c.cityIn(b.CityID, b.ProvinceID) {
		return false
	}
	if b.SubcategoryID != "" && !c.subcategoryIn(b.SubcategoryID, b.CategoryID) {
		return false
	}

	return true
}

func (c *Catalog) cityIn(cityID, provinceID string) bool {
	for _, city := range c.Cities {
		if city.ID == cityID {
			return city.ProvinceID == provinceID
		}
	}

	return false
}

func (c *Catalog) subcategoryIn(subID, categoryID string) bool {
	for _, sub := range c.Subcategories {
		if sub.ID == subID {
			return sub.CategoryID == categoryID
		}
	}

	return false
}

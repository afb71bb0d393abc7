package catalog

import (
	"github.com/roasthouse/storefront/pkg/models"
)

// Catalog serves the storefront's product reference data. Products are
// seeded at startup and never change while the process runs.
type Catalog struct {
	byID  map[string]models.Product
	order []string
}

func New(products []models.Product) *Catalog {
	c := &Catalog{byID: make(map[string]models.Product, len(products))}
	for _, p := range products {
		if _, exists := c.byID[p.ID]; exists {
			continue
		}
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

// Default returns the catalog the storefront ships with.
func Default() *Catalog {
	return New([]models.Product{
		{ID: "ethiopian-yirgacheffe", Name: "Ethiopian Yirgacheffe", Price: 1850, Image: "/images/yirgacheffe.jpg", Description: "Bright and floral with notes of bergamot and stone fruit."},
		{ID: "colombian-supremo", Name: "Colombian Supremo", Price: 1600, Image: "/images/supremo.jpg", Description: "Balanced medium roast with caramel sweetness."},
		{ID: "sumatra-mandheling", Name: "Sumatra Mandheling", Price: 1750, Image: "/images/mandheling.jpg", Description: "Earthy, full-bodied dark roast with a syrupy finish."},
		{ID: "guatemala-antigua", Name: "Guatemala Antigua", Price: 1700, Image: "/images/antigua.jpg", Description: "Cocoa and spice over a smoky volcanic-soil base."},
		{ID: "kenya-aa", Name: "Kenya AA", Price: 1950, Image: "/images/kenya-aa.jpg", Description: "Winey acidity with blackcurrant and a crisp, clean cup."},
		{ID: "house-espresso", Name: "House Espresso Blend", Price: 1500, Image: "/images/house-espresso.jpg", Description: "Dark chocolate and toasted hazelnut, built for milk."},
	})
}

// Lookup returns the product for id, reporting whether it exists.
func (c *Catalog) Lookup(id string) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// List returns all products in seed order.
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

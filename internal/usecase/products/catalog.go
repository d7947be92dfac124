// Package products holds the product weight table used by the calculator
// commands.
package products

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"discoBot/internal/domain"
)

// DefaultProducts is the table used when the config file has none.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{Code: "qtrs", Unit: "trays", WeightPerUnit: 10.77},
		{Code: "hb", Unit: "trays", WeightPerUnit: 10.36},
		{Code: "wedges", Unit: "trays", WeightPerUnit: 8.84},
		{Code: "spc", Unit: "trays", WeightPerUnit: 7},
		{Code: "bb", Unit: "boxes", WeightPerUnit: 11.5},
		{Code: "sc", Unit: "boxes", WeightPerUnit: 8.5},
		{Code: "mung", Unit: "boxes", WeightPerUnit: 11.76},
		{Code: "ed", Unit: "boxes", WeightPerUnit: 9.1},
		{Code: "cp", Unit: "boxes", WeightPerUnit: 11.52},
		{Code: "grp", Unit: "boxes", WeightPerUnit: 7.5},
		{Code: "rp", Unit: "boxes", WeightPerUnit: 7.5},
		{Code: "yp", Unit: "boxes", WeightPerUnit: 7.5},
		{Code: "csc", Unit: "boxes", WeightPerUnit: 8.5},
		{Code: "gl", Unit: "boxes", WeightPerUnit: 12},
		{Code: "o10", Unit: "boxes", WeightPerUnit: 8.5},
	}
}

type Calculation struct {
	Product       string
	Quantity      float64
	Unit          string
	WeightPerUnit float64
	TotalWeight   float64
}

type Catalog struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewCatalog(items []domain.Product) *Catalog {
	c := &Catalog{products: make(map[string]domain.Product, len(items))}
	for _, p := range items {
		code := strings.ToLower(strings.TrimSpace(p.Code))
		if code == "" {
			continue
		}
		p.Code = code
		c.products[code] = p
	}
	return c
}

func (c *Catalog) Lookup(code string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[strings.ToLower(strings.TrimSpace(code))]
	return p, ok
}

// Codes returns the known product codes grouped by unit, each group sorted.
func (c *Catalog) Codes() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string][]string)
	for code, p := range c.products {
		out[p.Unit] = append(out[p.Unit], code)
	}
	for unit := range out {
		sort.Strings(out[unit])
	}
	return out
}

// Calculate multiplies quantity by the product weight. The product name is
// kept as typed.
func (c *Catalog) Calculate(name string, quantity float64) (Calculation, bool) {
	p, ok := c.Lookup(name)
	if !ok {
		return Calculation{}, false
	}
	return Calculation{
		Product:       name,
		Quantity:      quantity,
		Unit:          p.Unit,
		WeightPerUnit: round2(p.WeightPerUnit),
		TotalWeight:   round2(quantity * p.WeightPerUnit),
	}, true
}

// ParseShortcut recognises "<code> <qty>" messages for a known code with a
// positive quantity.
func (c *Catalog) ParseShortcut(text string) (string, float64, bool) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return "", 0, false
	}
	if _, ok := c.Lookup(parts[0]); !ok {
		return "", 0, false
	}
	qty, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || qty <= 0 || math.IsInf(qty, 0) || math.IsNaN(qty) {
		return "", 0, false
	}
	return strings.ToLower(parts[0]), qty, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatNumber renders v without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

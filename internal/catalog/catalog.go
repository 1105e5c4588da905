// Package catalog generates the demo product catalog and searches it.
package catalog

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
)

// DefaultSize is the number of products generated when none is configured.
const DefaultSize = 320

// BarcodeBase is added to the 1-based product index to form its barcode.
const BarcodeBase = 10000

var Categories = []string{
	"Electronics", "Home & Garden", "Clothing", "Sports", "Toys",
	"Books", "Beauty", "Automotive", "Grocery", "Pet Supplies",
	"Office", "Health", "Music", "Tools", "Jewelry",
}

var adjectives = []string{
	"Premium", "Basic", "Advanced", "Smart", "Eco-friendly",
	"Portable", "Heavy-duty", "Compact", "Vintage", "Modern",
	"Wireless", "Ergonomic", "Professional", "Handcrafted", "Digital",
}

var nouns = []string{
	"Widget", "System", "Device", "Kit", "Set",
	"Tool", "Accessory", "Module", "Unit", "Pack",
	"Monitor", "Controller", "Scanner", "Adapter", "Station",
}

var images = []string{
	"https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?auto=format&fit=crop&q=80&w=400",
	"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&q=80&w=400",
	"https://images.unsplash.com/photo-1523275335684-37898b6baf30?auto=format&fit=crop&q=80&w=400",
	"https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&q=80&w=400",
	"https://images.unsplash.com/photo-1546868871-7041f2a55e12?auto=format&fit=crop&q=80&w=400",
	"https://images.unsplash.com/photo-1585386959984-a4155224a1ad?auto=format&fit=crop&q=80&w=400",
	"https://images.unsplash.com/photo-1524805444758-089113d48a6d?auto=format&fit=crop&q=80&w=400",
	"https://images.unsplash.com/photo-1583394838336-acd977736f90?auto=format&fit=crop&q=80&w=400",
	"https://images.unsplash.com/photo-1572635196237-14b3f281501f?auto=format&fit=crop&q=80&w=400",
	"https://images.unsplash.com/photo-1517336714731-489689fd1ca8?auto=format&fit=crop&q=80&w=400",
}

// NewRand returns a generator for the given seed; 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate builds n products with ids "1".."n".
func Generate(n int, rng *rand.Rand) []models.Product {
	if n < 0 {
		n = 0
	}
	products := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		category := pick(rng, Categories)
		adjective := pick(rng, adjectives)
		noun := pick(rng, nouns)
		letter := rune('A' + between(rng, 0, 25))

		products = append(products, models.Product{
			ID:       strconv.Itoa(i),
			Name:     fmt.Sprintf("%s %s %c%d", adjective, noun, letter, between(rng, 10, 99)),
			Price:    price(rng, 5, 499),
			Category: category,
			Image:    pick(rng, images),
			Stock:    between(rng, 0, 250),
			Barcode:  strconv.Itoa(BarcodeBase + i),
		})
	}
	return products
}

// between returns an int in [min, max].
func between(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}

func price(rng *rand.Rand, min, max float64) float64 {
	return math.Round((rng.Float64()*(max-min)+min)*100) / 100
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}

// Search returns products whose name or category contains q, ignoring case.
// An empty query matches everything. Input order is preserved.
func Search(products []models.Product, q string) []models.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}
	var out []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// Package catalog validates product forms and sends them to the backend on
// behalf of the signed-in user.
package catalog

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/storefront/internal/common"
)

const (
	minNameLen = 3
	maxNameLen = 20
)

// ProductForm is the raw user input for creating or updating a product.
// Price stays a string until validated.
type ProductForm struct {
	Name     string
	Price    string
	ImageURL string
}

// Product is the validated payload sent to the backend.
type Product struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// ValidationErrors maps a form field to the first problem found in it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return common.ErrorValidation
}

// Validate checks the form and returns the product to submit.
func (f ProductForm) Validate() (Product, error) {
	errs := ValidationErrors{}

	name := f.Name
	switch n := utf8.RuneCountInString(name); {
	case n < minNameLen:
		errs["name"] = "Name must be greater than 3 characters long"
	case n > maxNameLen:
		errs["name"] = "Name must be less than 20 characters long"
	}

	price, msg := parsePrice(f.Price)
	if msg != "" {
		errs["price"] = msg
	}

	if !isAbsoluteURL(f.ImageURL) {
		errs["imageUrl"] = "Invalid image URL format"
	}

	if len(errs) > 0 {
		return Product{}, errs
	}
	return Product{Name: name, Price: price, ImageURL: f.ImageURL}, nil
}

// parsePrice accepts only the canonical decimal spelling of a positive
// number: "9.99" passes, "9.990", "09.99", " 9.99" and "1e3" do not.
func parsePrice(s string) (float64, string) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, "Price must be a valid number"
	}
	if strconv.FormatFloat(p, 'f', -1, 64) != s {
		return 0, "Price contains invalid characters"
	}
	if p <= 0 {
		return 0, "Price must be greater than 0"
	}
	return p, ""
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "" || u.Path != "")
}

package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// Offer is a price attached to a Product.
type Offer struct {
	Price    string
	Currency string
}

// Product returns a minimal product schema payload.
func Product(name, description, url, imageURL, sku string, offer *Offer) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        name,
		"description": description,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if sku != "" {
		m["sku"] = sku
	}
	if offer != nil {
		m["offers"] = map[string]any{
			"@type":         "Offer",
			"price":         offer.Price,
			"priceCurrency": offer.Currency,
		}
	}
	return m
}

// ItemList returns a schema.org ItemList of absolute URLs, used for the model catalog.
func ItemList(name string, urls []string) map[string]any {
	el := make([]map[string]any, 0, len(urls))
	for i, u := range urls {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"url":      u,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"name":            name,
		"itemListElement": el,
	}
}

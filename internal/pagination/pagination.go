// Package pagination holds the client-side pagination contract: query
// parameters sent to the backend's list endpoints and the Laravel-style
// meta block that paginated envelopes carry.
package pagination

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// PageRequest holds pagination parameters for a list call.
type PageRequest struct {
	Page    int `json:"page" form:"page" binding:"omitempty,min=1"`
	PerPage int `json:"per_page" form:"per_page" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in default values when page or per_page are not provided.
func (p *PageRequest) Defaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PerPage == 0 {
		p.PerPage = 20
	}
}

// Apply encodes the pagination parameters onto a query string.
// Zero values are omitted so the backend applies its own defaults.
func (p PageRequest) Apply(values url.Values) {
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(p.PerPage))
	}
}

// Meta is the pagination metadata block of a Laravel paginated response.
type Meta struct {
	CurrentPage int `json:"current_page"`
	From        int `json:"from"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	To          int `json:"to"`
	Total       int `json:"total"`
}

// Links holds the navigation links of a Laravel paginated response.
type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// Page wraps a normalized list of items with the backend's paging metadata.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Meta  Meta  `json:"meta"`
	Links Links `json:"links"`
}

// NewPage creates a Page from normalized data and decoded metadata.
func NewPage[T any](data []T, meta Meta, links Links) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Meta: meta, Links: links}
}

// DecodePaging extracts the meta and links blocks from a paginated envelope,
// probing the top level first and then under "payload". Envelopes without a
// paging block (bare arrays, plain data wrappers) yield zero values.
func DecodePaging(raw json.RawMessage) (Meta, Links) {
	var body struct {
		Meta    *Meta           `json:"meta"`
		Links   *Links          `json:"links"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return Meta{}, Links{}
	}
	if body.Meta == nil && len(body.Payload) > 0 {
		return DecodePaging(body.Payload)
	}

	var meta Meta
	if body.Meta != nil {
		meta = *body.Meta
	}
	var links Links
	if body.Links != nil {
		links = *body.Links
	}
	return meta, links
}

package models

import "github.com/google/uuid"

// PageRequest is a 1-based page request as sent by list endpoints.
type PageRequest struct {
	Page    int
	PerPage int
}

// Offset returns the row offset for the requested page.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// SimplePageMeta describes a page without a total count (next/prev style).
type SimplePageMeta struct {
	CurrentPage  int  `json:"current_page"`
	HasMorePages bool `json:"has_more_pages"`
	PerPage      int  `json:"per_page"`
}

// PageMeta describes a page of a counted result set.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

type ProductPage struct {
	Data []*Product     `json:"data"`
	Meta SimplePageMeta `json:"meta"`
}

type VariantPage struct {
	Data []*Variant     `json:"data"`
	Meta SimplePageMeta `json:"meta"`
}

type ImagePage struct {
	Data []*Image `json:"data"`
	Meta PageMeta `json:"meta"`
}

// ProductListFilter controls optional eager loading for product lists.
type ProductListFilter struct {
	WithImage bool
}

type VariantListFilter struct {
	ProductID *uuid.UUID
}

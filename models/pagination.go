package models

// Page is one page of a listing plus the metadata needed to fetch the next.
type Page[T any] struct {
	Data       []T  `json:"data"`
	Next       bool `json:"next"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_page"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
}

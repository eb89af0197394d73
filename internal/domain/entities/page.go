package entities

import (
	"bytes"
	"encoding/json"
)

// Page is one page of a paginated collection. The API answers either with a
// bare array or with an envelope; both decode into Items.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount,omitempty"`
}

// UnmarshalJSON accepts `[...]`, `{"items": [...]}` and `{"data": [...]}`
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &p.Items)
	}

	var env struct {
		Items      []T `json:"items"`
		Data       []T `json:"data"`
		Page       int `json:"page"`
		PageSize   int `json:"pageSize"`
		TotalCount int `json:"totalCount"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	p.Items = env.Items
	if p.Items == nil {
		p.Items = env.Data
	}
	p.Page = env.Page
	p.PageSize = env.PageSize
	p.TotalCount = env.TotalCount
	return nil
}

// HasNext reports whether another page may exist: a page shorter than the
// page size is the last one.
func (p Page[T]) HasNext(pageSize int) bool {
	if p.TotalCount > 0 && p.Page > 0 {
		return p.Page*pageSize < p.TotalCount
	}
	return len(p.Items) >= pageSize
}

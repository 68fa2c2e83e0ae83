package repo

// Page — параметры страницы списка.
type Page struct {
	Page  int
	Limit int
}

// Normalize приводит параметры к допустимым: page >= 1, limit по умолчанию 10.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

func (p Page) offset() int { return (p.Page - 1) * p.Limit }

// Pagination — метаданные страницы в ответе списка.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination вычисляет метаданные: hasNext == page*limit < total.
func NewPagination(p Page, total int64) Pagination {
	p = p.Normalize()
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(p.Page)*int64(p.Limit) < total,
		HasPrev:    p.Page > 1,
	}
}

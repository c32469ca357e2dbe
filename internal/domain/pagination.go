package domain

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type Pagination struct {
	Page     int
	PageSize int
}

func NewPagination(page, pageSize int) Pagination {
	p := Pagination{Page: DefaultPage, PageSize: DefaultPageSize}

	if page > 0 {
		p.Page = page
	}
	if pageSize > 0 {
		p.PageSize = pageSize
	}

	return p
}

func (f Pagination) Limit() int {
	return f.PageSize
}

func (f Pagination) Offset() int {
	return (f.Page - 1) * f.PageSize
}

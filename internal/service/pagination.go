package service

import "fmt"

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination 分頁資訊；Pages = ceil(Total / PerPage)，1 <= CurrentPage <= max(Pages, 1)
type Pagination struct {
	Total       int
	Pages       int
	CurrentPage int
}

func checkPaging(page, perPage int) error {
	if page < 1 {
		return validationError("page must be a positive integer")
	}
	if perPage < 1 || perPage > MaxPerPage {
		return validationError(fmt.Sprintf("per_page must be between 1 and %d", MaxPerPage))
	}
	return nil
}

func offset(page, perPage int) int {
	return (page - 1) * perPage
}

// paginate 超出範圍的頁碼會被夾到最後一頁，但呼叫端仍回傳空的項目
func paginate(total, page, perPage int) Pagination {
	pages := (total + perPage - 1) / perPage
	current := page
	if last := max(pages, 1); current > last {
		current = last
	}
	return Pagination{Total: total, Pages: pages, CurrentPage: current}
}

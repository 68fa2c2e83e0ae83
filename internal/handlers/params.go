package handlers

import (
	"net/http"
	"strconv"

	"simaset/internal/repo"
)

// pageFromQuery читает ?page и ?limit; нормализация в repo.Page.Normalize.
func pageFromQuery(r *http.Request) repo.Page {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return repo.Page{Page: page, Limit: limit}
}

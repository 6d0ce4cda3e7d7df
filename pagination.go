package main

import (
	"net/http"
	"strconv"

	"gorm.io/gorm"
)

const postsPerPage = 10

// postPage is one page of a post feed plus the metadata the pagination
// partial renders.
type postPage struct {
	Posts      []Post
	Number     int
	NumPages   int
	TotalCount int64
}

func (p *postPage) HasPrev() bool   { return p.Number > 1 }
func (p *postPage) HasNext() bool   { return p.Number < p.NumPages }
func (p *postPage) PrevNumber() int { return p.Number - 1 }
func (p *postPage) NextNumber() int { return p.Number + 1 }

// queryPage reads ?page=N. Anything unparseable falls back to page 1.
func queryPage(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// paginatePosts counts the query, clamps the requested page into range
// (out-of-range requests get the last page, not an error), and fetches
// that page's rows.
func paginatePosts(q *gorm.DB, pageNum int) (*postPage, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	numPages := int((total + postsPerPage - 1) / postsPerPage)
	if numPages < 1 {
		numPages = 1
	}
	if pageNum < 1 {
		pageNum = 1
	}
	if pageNum > numPages {
		pageNum = numPages
	}

	var posts []Post
	offset := (pageNum - 1) * postsPerPage
	err := q.Session(&gorm.Session{}).Offset(offset).Limit(postsPerPage).Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &postPage{
		Posts:      posts,
		Number:     pageNum,
		NumPages:   numPages,
		TotalCount: total,
	}, nil
}

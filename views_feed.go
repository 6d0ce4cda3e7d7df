package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

/* ---------- Route: GET / ---------- */

func handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := paginatePosts(published(postsForFeed(DB)), queryPage(r))
	if err != nil {
		serverError(w, r, err)
		return
	}
	render(w, r, "index.html", &pageData{Title: "Latest posts", Page: page})
}

/* ---------- Route: GET /category/{slug} ---------- */

func handleCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var cat Category
	err := DB.Where("slug = ? AND is_published = ?", slug, true).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(w, r)
		return
	} else if err != nil {
		serverError(w, r, err)
		return
	}

	q := published(postsForFeed(DB)).Where("posts.category_id = ?", cat.ID)
	page, err := paginatePosts(q, queryPage(r))
	if err != nil {
		serverError(w, r, err)
		return
	}

	render(w, r, "category.html", &pageData{
		Title:    cat.Title,
		Category: &cat,
		Page:     page,
	})
}

/* ---------- Route: GET /profile/{username} ---------- */

func handleProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var profile User
	err := DB.Where("username = ?", username).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(w, r)
		return
	} else if err != nil {
		serverError(w, r, err)
		return
	}

	q := postsForFeed(DB).Where("posts.author_id = ?", profile.ID)

	// The owner sees everything they wrote, unpublished and future-dated
	// posts included. Everyone else gets the public view.
	viewer := currentUser(r)
	if viewer == nil || viewer.ID != profile.ID {
		q = published(q)
	}

	page, err := paginatePosts(q, queryPage(r))
	if err != nil {
		serverError(w, r, err)
		return
	}

	render(w, r, "profile.html", &pageData{
		Title:       profile.Username,
		CurrentUser: viewer,
		Profile:     &profile,
		Page:        page,
	})
}

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.NotFound(notFound)

	// Static assets and uploaded media.
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.Dir(cfg.StaticDir))))
	r.Handle("/media/*", http.StripPrefix("/media", http.FileServer(http.Dir(cfg.MediaDir))))

	// Public pages.
	r.Get("/", handleIndex)
	r.Get("/posts/{postID}", handlePostDetail)
	r.Get("/category/{slug}", handleCategory)
	r.Get("/profile/{username}", handleProfile)
	r.Get("/pages/about", handleAbout)
	r.Get("/pages/rules", handleRules)

	// Auth.
	r.Get("/auth/login", handleLogin)
	r.Post("/auth/login", handleLogin)
	r.Get("/auth/registration", handleRegistration)
	r.Post("/auth/registration", handleRegistration)
	r.Get("/auth/logout", handleLogout)
	r.Post("/auth/logout", handleLogout)

	// Everything below needs a session.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/edit_profile", handleEditProfile)
		r.Post("/edit_profile", handleEditProfile)

		r.Get("/posts/create", handleCreatePost)
		r.Post("/posts/create", handleCreatePost)
		r.Get("/posts/{postID}/edit", handleEditPost)
		r.Post("/posts/{postID}/edit", handleEditPost)
		r.Get("/posts/{postID}/delete", handleDeletePost)
		r.Post("/posts/{postID}/delete", handleDeletePost)

		r.Post("/posts/{postID}/comment", handleAddComment)
		r.Get("/posts/{postID}/edit_comment/{commentID}", handleEditComment)
		r.Post("/posts/{postID}/edit_comment/{commentID}", handleEditComment)
		r.Get("/posts/{postID}/delete_comment/{commentID}", handleDeleteComment)
		r.Post("/posts/{postID}/delete_comment/{commentID}", handleDeleteComment)
	})

	return r
}

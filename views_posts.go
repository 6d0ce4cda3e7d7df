package main

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

func postDetailURL(postID uint) string {
	return fmt.Sprintf("/posts/%d", postID)
}

// fetchPost loads one post with its related rows. Returns nil when the id is
// unknown; the caller 404s.
func fetchPost(w http.ResponseWriter, r *http.Request, id uint) *Post {
	var post Post
	err := DB.Preload("Author").Preload("Category").Preload("Location").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(w, r)
		return nil
	} else if err != nil {
		serverError(w, r, err)
		return nil
	}
	return &post
}

// formChoices loads the category and location select options for the post
// form.
func formChoices(data *pageData) error {
	if err := DB.Order("title").Find(&data.Categories).Error; err != nil {
		return err
	}
	return DB.Order("name").Find(&data.Locations).Error
}

// postFormData pre-fills the post form from an existing row.
func postFormData(post *Post) map[string]string {
	d := map[string]string{
		"title":    post.Title,
		"text":     post.Text,
		"pub_date": post.PubDate.Format("2006-01-02T15:04"),
	}
	if post.CategoryID != nil {
		d["category"] = fmt.Sprint(*post.CategoryID)
	}
	if post.LocationID != nil {
		d["location"] = fmt.Sprint(*post.LocationID)
	}
	return d
}

/* ---------- Route: GET /posts/{postID} ---------- */

func handlePostDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "postID")
	if !ok {
		notFound(w, r)
		return
	}

	post := fetchPost(w, r, id)
	if post == nil {
		return
	}

	// Anyone but the author only gets the post if it passes the public
	// visibility check.
	viewer := currentUser(r)
	if viewer == nil || viewer.ID != post.AuthorID {
		var visible Post
		err := published(DB.Model(&Post{})).
			Select("posts.*").
			Preload("Author").Preload("Category").Preload("Location").
			Where("posts.id = ?", id).
			First(&visible).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, r)
			return
		} else if err != nil {
			serverError(w, r, err)
			return
		}
		post = &visible
	}

	var comments []Comment
	err := DB.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		serverError(w, r, err)
		return
	}

	render(w, r, "detail.html", &pageData{
		Title:       post.Title,
		CurrentUser: viewer,
		Post:        post,
		Comments:    comments,
	})
}

/* ---------- Route: GET/POST /posts/create ---------- */

func handleCreatePost(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	data := &pageData{Title: "New post", CurrentUser: user}
	if err := formChoices(data); err != nil {
		serverError(w, r, err)
		return
	}

	if r.Method == http.MethodGet {
		render(w, r, "create.html", data)
		return
	}

	f := parsePostForm(r)
	imagePath, err := savePostImage(r)
	if err != nil {
		f.Errors["image"] = "Could not save the uploaded image."
	}
	if !f.valid() {
		data.FormData = f.data()
		data.FieldErrors = f.Errors
		render(w, r, "create.html", data)
		return
	}

	post := Post{
		Title:       f.Title,
		Text:        f.Text,
		PubDate:     f.PubDate,
		IsPublished: true,
		ImagePath:   imagePath,
		AuthorID:    user.ID,
		CategoryID:  f.CategoryID,
		LocationID:  f.LocationID,
	}
	if err := DB.Create(&post).Error; err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile/"+user.Username, http.StatusSeeOther)
}

/* ---------- Route: GET/POST /posts/{postID}/edit ---------- */

func handleEditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "postID")
	if !ok {
		notFound(w, r)
		return
	}

	post := fetchPost(w, r, id)
	if post == nil {
		return
	}

	// Not the author: no error, just bounce to the post.
	user := currentUser(r)
	if user == nil || post.AuthorID != user.ID {
		http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
		return
	}

	data := &pageData{Title: "Edit post", CurrentUser: user, Post: post}
	if err := formChoices(data); err != nil {
		serverError(w, r, err)
		return
	}

	if r.Method == http.MethodGet {
		data.FormData = postFormData(post)
		render(w, r, "create.html", data)
		return
	}

	f := parsePostForm(r)
	imagePath, err := savePostImage(r)
	if err != nil {
		f.Errors["image"] = "Could not save the uploaded image."
	}
	if !f.valid() {
		data.FormData = f.data()
		data.FieldErrors = f.Errors
		render(w, r, "create.html", data)
		return
	}

	// Author and publication flag are never touched here.
	updates := map[string]interface{}{
		"title":       f.Title,
		"text":        f.Text,
		"pub_date":    f.PubDate,
		"category_id": f.CategoryID,
		"location_id": f.LocationID,
	}
	if imagePath != "" {
		updates["image_path"] = imagePath
	}
	if err := DB.Model(post).Updates(updates).Error; err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
}

/* ---------- Route: GET/POST /posts/{postID}/delete ---------- */

func handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "postID")
	if !ok {
		notFound(w, r)
		return
	}

	post := fetchPost(w, r, id)
	if post == nil {
		return
	}

	user := currentUser(r)
	if user == nil || post.AuthorID != user.ID {
		http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		data := &pageData{
			Title:       "Delete post",
			CurrentUser: user,
			Post:        post,
			FormData:    postFormData(post),
		}
		if err := formChoices(data); err != nil {
			serverError(w, r, err)
			return
		}
		render(w, r, "create.html", data)
		return
	}

	// Comments go with the post via the FK cascade.
	if err := DB.Delete(post).Error; err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

package main

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// fetchComment loads a comment that must belong to the given post; a
// comment id paired with the wrong post is a 404, not a redirect.
func fetchComment(w http.ResponseWriter, r *http.Request, postID, commentID uint) *Comment {
	var comment Comment
	err := DB.Where("id = ? AND post_id = ?", commentID, postID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(w, r)
		return nil
	} else if err != nil {
		serverError(w, r, err)
		return nil
	}
	return &comment
}

/* ---------- Route: POST /posts/{postID}/comment ---------- */

func handleAddComment(w http.ResponseWriter, r *http.Request) {
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
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	// A blank comment is dropped without a word; the reader just lands
	// back on the post.
	f := parseCommentForm(r)
	if !f.valid() {
		http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
		return
	}

	comment := Comment{
		Text:     f.Text,
		PostID:   post.ID,
		AuthorID: user.ID,
	}
	if err := DB.Create(&comment).Error; err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
}

/* ---------- Route: GET/POST /posts/{postID}/edit_comment/{commentID} ---------- */

func handleEditComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := uintParam(r, "postID")
	if !ok {
		notFound(w, r)
		return
	}
	commentID, ok := uintParam(r, "commentID")
	if !ok {
		notFound(w, r)
		return
	}

	post := fetchPost(w, r, postID)
	if post == nil {
		return
	}
	comment := fetchComment(w, r, postID, commentID)
	if comment == nil {
		return
	}

	user := currentUser(r)
	if user == nil || comment.AuthorID != user.ID {
		http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
		return
	}

	data := &pageData{
		Title:       "Edit comment",
		CurrentUser: user,
		Post:        post,
		Comment:     comment,
	}

	if r.Method == http.MethodGet {
		data.FormData = map[string]string{"text": comment.Text}
		render(w, r, "comment.html", data)
		return
	}

	f := parseCommentForm(r)
	if !f.valid() {
		data.FormData = f.data()
		data.FieldErrors = f.Errors
		render(w, r, "comment.html", data)
		return
	}

	if err := DB.Model(comment).Update("text", f.Text).Error; err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
}

/* ---------- Route: GET/POST /posts/{postID}/delete_comment/{commentID} ---------- */

func handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := uintParam(r, "postID")
	if !ok {
		notFound(w, r)
		return
	}
	commentID, ok := uintParam(r, "commentID")
	if !ok {
		notFound(w, r)
		return
	}

	post := fetchPost(w, r, postID)
	if post == nil {
		return
	}
	comment := fetchComment(w, r, postID, commentID)
	if comment == nil {
		return
	}

	user := currentUser(r)
	if user == nil || comment.AuthorID != user.ID {
		http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		render(w, r, "comment.html", &pageData{
			Title:       "Delete comment",
			CurrentUser: user,
			Post:        post,
			Comment:     comment,
		})
		return
	}

	if err := DB.Delete(comment).Error; err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
}

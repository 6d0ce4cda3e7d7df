package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDetailVisibility(t *testing.T) {
	app := newTestApp(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	cat := createCategory(t, "go", true)

	// Unpublished AND future-dated: invisible twice over.
	draft := createPost(t, alice, &cat, func(p *Post) {
		p.IsPublished = false
		p.PubDate = time.Now().Add(time.Hour)
	})
	path := postDetailURL(draft.ID)

	// The author sees their own hidden post.
	assert.Equal(t, http.StatusOK, doGet(t, app, path, authCookie(t, alice)).Code)

	// Anyone else gets a 404, not a hint that it exists.
	assert.Equal(t, http.StatusNotFound, doGet(t, app, path, authCookie(t, bob)).Code)
	assert.Equal(t, http.StatusNotFound, doGet(t, app, path, nil).Code)
}

func TestPostDetailShowsCommentsOldestFirst(t *testing.T) {
	app := newTestApp(t)
	alice := createUser(t, "alice")
	cat := createCategory(t, "go", true)
	post := createPost(t, alice, &cat)

	c1 := Comment{Text: "first comment", PostID: post.ID, AuthorID: alice.ID, CreatedAt: time.Now().Add(-2 * time.Hour)}
	require.NoError(t, DB.Create(&c1).Error)
	c2 := Comment{Text: "second comment", PostID: post.ID, AuthorID: alice.ID, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, DB.Create(&c2).Error)

	html := body(t, doGet(t, app, postDetailURL(post.ID), nil))
	firstIdx := strings.Index(html, "first comment")
	secondIdx := strings.Index(html, "second comment")
	require.GreaterOrEqual(t, firstIdx, 0)
	require.GreaterOrEqual(t, secondIdx, 0)
	assert.Less(t, firstIdx, secondIdx, "comments render oldest first")
}

func TestPostDetailMissing(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, http.StatusNotFound, doGet(t, app, "/posts/12345", nil).Code)
	assert.Equal(t, http.StatusNotFound, doGet(t, app, "/posts/not-a-number", nil).Code)
}

func TestCreatePost(t *testing.T) {
	app := newTestApp(t)
	alice := createUser(t, "alice")
	cat := createCategory(t, "go", true)
	cookie := authCookie(t, alice)

	// GET renders the empty form.
	rec := doGet(t, app, "/posts/create", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doPost(t, app, "/posts/create", url.Values{
		"title":    {"Fresh post"},
		"text":     {"Body text."},
		"pub_date": {"2024-05-01T10:00"},
		"category": {fmt.Sprint(cat.ID)},
	}, cookie)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile/alice", rec.Header().Get("Location"))

	var post Post
	require.NoError(t, DB.Where("title = ?", "Fresh post").First(&post).Error)
	assert.Equal(t, alice.ID, post.AuthorID, "author is always the session user")
	assert.True(t, post.IsPublished)
}

func TestCreatePostInvalidRerenders(t *testing.T) {
	app := newTestApp(t)
	alice := createUser(t, "alice")
	cookie := authCookie(t, alice)

	rec := doPost(t, app, "/posts/create", url.Values{"title": {"No body"}}, cookie)

	assert.Equal(t, http.StatusOK, rec.Code)
	html := body(t, rec)
	assert.Contains(t, html, "Text is required.")
	assert.Contains(t, html, "No body", "submitted values echo back into the form")

	var count int64
	require.NoError(t, DB.Model(&Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEditPostByAuthor(t *testing.T) {
	app := newTestApp(t)
	alice := createUser(t, "alice")
	cat := createCategory(t, "go", true)
	post := createPost(t, alice, &cat, func(p *Post) { p.Title = "Original title" })
	cookie := authCookie(t, alice)

	// GET pre-fills the form with current values.
	html := body(t, doGet(t, app, postDetailURL(post.ID)+"/edit", cookie))
	assert.Contains(t, html, "Original title")

	rec := doPost(t, app, postDetailURL(post.ID)+"/edit", url.Values{
		"title":    {"New title"},
		"text":     {post.Text},
		"pub_date": {post.PubDate.Format("2006-01-02T15:04")},
		"category": {fmt.Sprint(cat.ID)},
	}, cookie)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, postDetailURL(post.ID), rec.Header().Get("Location"))

	var got Post
	require.NoError(t, DB.First(&got, post.ID).Error)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, alice.ID, got.AuthorID)
}

func TestEditPostRoundTripKeepsFields(t *testing.T) {
	app := newTestApp(t)
	alice := createUser(t, "alice")
	cat := createCategory(t, "go", true)
	post := createPost(t, alice, &cat)
	cookie := authCookie(t, alice)

	// Submit the form with the exact values the GET pre-fills.
	rec := doPost(t, app, postDetailURL(post.ID)+"/edit", url.Values{
		"title":    {post.Title},
		"text":     {post.Text},
		"pub_date": {post.PubDate.Format("2006-01-02T15:04")},
		"category": {fmt.Sprint(cat.ID)},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var got Post
	require.NoError(t, DB.First(&got, post.ID).Error)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, post.Text, got.Text)
	assert.Equal(t, post.PubDate.Format("2006-01-02T15:04"), got.PubDate.Format("2006-01-02T15:04"))
	assert.Equal(t, post.CategoryID, got.CategoryID)
}

func TestEditPostByNonAuthorSilentlyRedirects(t *testing.T) {
	app := newTestApp(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	cat := createCategory(t, "go", true)
	post := createPost(t, alice, &cat, func(p *Post) { p.Title = "Untouchable" })

	rec := doPost(t, app, postDetailURL(post.ID)+"/edit", url.Values{
		"title":    {"Hijacked"},
		"text":     {"Hijacked"},
		"pub_date": {"2024-05-01T10:00"},
	}, authCookie(t, bob))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, postDetailURL(post.ID), rec.Header().Get("Location"))

	var got Post
	require.NoError(t, DB.First(&got, post.ID).Error)
	assert.Equal(t, "Untouchable", got.Title, "row must be left unchanged")
}

func TestEditPostMissing(t *testing.T) {
	app := newTestApp(t)
	alice := createUser(t, "alice")
	assert.Equal(t, http.StatusNotFound, doGet(t, app, "/posts/999/edit", authCookie(t, alice)).Code)
}

func TestDeletePost(t *testing.T) {
	app := newTestApp(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	cat := createCategory(t, "go", true)
	post := createPost(t, alice, &cat)
	createComment(t, post, bob, "soon gone")

	// Non-author delete attempt: silent redirect, row intact.
	rec := doPost(t, app, postDetailURL(post.ID)+"/delete", nil, authCookie(t, bob))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, postDetailURL(post.ID), rec.Header().Get("Location"))

	var count int64
	require.NoError(t, DB.Model(&Post{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// GET by the author shows a confirmation, deletes nothing.
	rec = doGet(t, app, postDetailURL(post.ID)+"/delete", authCookie(t, alice))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, DB.Model(&Post{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// POST by the author deletes post and comments, redirects to index.
	rec = doPost(t, app, postDetailURL(post.ID)+"/delete", nil, authCookie(t, alice))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	require.NoError(t, DB.Model(&Post{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, DB.Model(&Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

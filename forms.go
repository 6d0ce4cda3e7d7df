package main

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Form parsing and validation. Each parse function pulls the submitted
// values out of the request, runs the checks, and leaves per-field messages
// in Errors; handlers re-render the page with those messages on failure.

var usernameRx = regexp.MustCompile(`^[\w.@+-]+$`)

// acceptable pub date inputs, tried in order
var pubDateLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

/* --------- profile --------- */

type profileForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string

	Errors map[string]string
}

// parseProfileForm validates the editable profile fields. selfID excludes
// the user's own row from the username uniqueness check (0 for new users).
func parseProfileForm(r *http.Request, selfID uint) *profileForm {
	f := &profileForm{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Errors:    map[string]string{},
	}

	switch {
	case f.Username == "":
		f.Errors["username"] = "Username is required."
	case len(f.Username) > 150:
		f.Errors["username"] = "Username must be 150 characters or fewer."
	case !usernameRx.MatchString(f.Username):
		f.Errors["username"] = "Username may contain only letters, digits and @/./+/-/_."
	default:
		var count int64
		q := DB.Model(&User{}).Where("username = ?", f.Username)
		if selfID != 0 {
			q = q.Where("id <> ?", selfID)
		}
		if err := q.Count(&count).Error; err == nil && count > 0 {
			f.Errors["username"] = "That username is already taken."
		}
	}

	if len(f.FirstName) > 150 {
		f.Errors["first_name"] = "First name must be 150 characters or fewer."
	}
	if len(f.LastName) > 150 {
		f.Errors["last_name"] = "Last name must be 150 characters or fewer."
	}
	if f.Email != "" && (len(f.Email) > 254 || !strings.Contains(f.Email, "@")) {
		f.Errors["email"] = "Enter a valid email address."
	}

	return f
}

func (f *profileForm) valid() bool { return len(f.Errors) == 0 }

func (f *profileForm) data() map[string]string {
	return map[string]string{
		"username":   f.Username,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"email":      f.Email,
	}
}

/* --------- registration --------- */

type registrationForm struct {
	*profileForm
	Password string
}

func parseRegistrationForm(r *http.Request) *registrationForm {
	f := &registrationForm{
		profileForm: parseProfileForm(r, 0),
		Password:    r.PostFormValue("password"),
	}
	if len(f.Password) < 8 {
		f.Errors["password"] = "Password must be at least 8 characters."
	}
	return f
}

/* --------- post --------- */

type postForm struct {
	Title      string
	Text       string
	PubDate    time.Time
	PubDateRaw string
	CategoryID *uint
	LocationID *uint

	Errors map[string]string
}

func parsePostForm(r *http.Request) *postForm {
	f := &postForm{
		Title:      strings.TrimSpace(r.PostFormValue("title")),
		Text:       strings.TrimSpace(r.PostFormValue("text")),
		PubDateRaw: strings.TrimSpace(r.PostFormValue("pub_date")),
		Errors:     map[string]string{},
	}

	switch {
	case f.Title == "":
		f.Errors["title"] = "Title is required."
	case len(f.Title) > 256:
		f.Errors["title"] = "Title must be 256 characters or fewer."
	}
	if f.Text == "" {
		f.Errors["text"] = "Text is required."
	}

	if f.PubDateRaw == "" {
		f.Errors["pub_date"] = "Publication date is required."
	} else {
		parsed := false
		for _, layout := range pubDateLayouts {
			if t, err := time.ParseInLocation(layout, f.PubDateRaw, time.Local); err == nil {
				f.PubDate = t
				parsed = true
				break
			}
		}
		if !parsed {
			f.Errors["pub_date"] = "Enter a valid date."
		}
	}

	f.CategoryID = f.lookupID(r, "category", &Category{})
	f.LocationID = f.lookupID(r, "location", &Location{})

	return f
}

// lookupID resolves an optional select value to an existing row's id.
func (f *postForm) lookupID(r *http.Request, field string, model interface{}) *uint {
	raw := strings.TrimSpace(r.PostFormValue(field))
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		f.Errors[field] = "Select a valid choice."
		return nil
	}
	var count int64
	if err := DB.Model(model).Where("id = ?", n).Count(&count).Error; err != nil || count == 0 {
		f.Errors[field] = "Select a valid choice."
		return nil
	}
	id := uint(n)
	return &id
}

func (f *postForm) valid() bool { return len(f.Errors) == 0 }

func (f *postForm) data() map[string]string {
	d := map[string]string{
		"title":    f.Title,
		"text":     f.Text,
		"pub_date": f.PubDateRaw,
	}
	if f.CategoryID != nil {
		d["category"] = strconv.FormatUint(uint64(*f.CategoryID), 10)
	}
	if f.LocationID != nil {
		d["location"] = strconv.FormatUint(uint64(*f.LocationID), 10)
	}
	return d
}

/* --------- comment --------- */

type commentForm struct {
	Text string

	Errors map[string]string
}

func parseCommentForm(r *http.Request) *commentForm {
	f := &commentForm{
		Text:   strings.TrimSpace(r.PostFormValue("text")),
		Errors: map[string]string{},
	}
	if f.Text == "" {
		f.Errors["text"] = "Comment text is required."
	}
	return f
}

func (f *commentForm) valid() bool { return len(f.Errors) == 0 }

func (f *commentForm) data() map[string]string {
	return map[string]string{"text": f.Text}
}

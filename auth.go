package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTLHours = 24 * 30 // 30 days

/* --------- Helpers (cookie) --------- */

func setAuthCookie(w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.CookieSecure,
		Expires:  time.Now().Add(sessionTTLHours * time.Hour),
	}
	http.SetCookie(w, c)
}

func clearAuthCookie(w http.ResponseWriter) {
	c := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.CookieSecure,
		MaxAge:   -1,
	}
	http.SetCookie(w, c)
}

// startSession signs a token for the user, sets the cookie, and redirects to
// the user's own profile. Login always lands on the profile page, whatever
// page the user came from.
func startSession(w http.ResponseWriter, r *http.Request, u *User) {
	tok, err := signToken(u.ID, sessionTTLHours)
	if err != nil {
		serverError(w, r, err)
		return
	}
	setAuthCookie(w, tok)
	http.Redirect(w, r, "/profile/"+u.Username, http.StatusSeeOther)
}

/* --------- Handlers --------- */

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "login.html", &pageData{Title: "Log in"})
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	fail := func() {
		render(w, r, "login.html", &pageData{
			Title:     "Log in",
			FormError: "Invalid username or password.",
			FormData:  map[string]string{"username": username},
		})
	}

	var u User
	err := DB.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail()
		return
	} else if err != nil {
		serverError(w, r, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		fail()
		return
	}

	startSession(w, r, &u)
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func handleRegistration(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "registration.html", &pageData{Title: "Sign up"})
		return
	}

	f := parseRegistrationForm(r)
	if !f.valid() {
		render(w, r, "registration.html", &pageData{
			Title:       "Sign up",
			FormData:    f.data(),
			FieldErrors: f.Errors,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, r, err)
		return
	}
	u := User{
		Username:     f.Username,
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Email:        f.Email,
		PasswordHash: string(hash),
	}
	if err := DB.Create(&u).Error; err != nil {
		serverError(w, r, err)
		return
	}

	startSession(w, r, &u)
}

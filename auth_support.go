package main

import (
	"net/http"
)

// userIDFromRequest extracts the authenticated user id from the JWT cookie.
// Zero means anonymous.
func userIDFromRequest(r *http.Request) uint {
	c, err := r.Cookie(cfg.CookieName)
	if err != nil || c.Value == "" {
		return 0
	}
	claims, err := parseToken(c.Value)
	if err != nil || claims == nil {
		return 0
	}
	return claims.UserID
}

// currentUser resolves the session cookie to a full user row. Nil means the
// request is anonymous (no cookie, bad token, or the user no longer exists).
func currentUser(r *http.Request) *User {
	id := userIDFromRequest(r)
	if id == 0 {
		return nil
	}
	var u User
	if err := DB.First(&u, id).Error; err != nil {
		return nil
	}
	return &u
}

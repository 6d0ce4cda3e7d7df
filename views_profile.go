package main

import "net/http"

/* ---------- Route: GET/POST /edit_profile ---------- */

func handleEditProfile(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		render(w, r, "user.html", &pageData{
			Title:       "Edit profile",
			CurrentUser: user,
			FormData: map[string]string{
				"username":   user.Username,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"email":      user.Email,
			},
		})
		return
	}

	f := parseProfileForm(r, user.ID)
	if !f.valid() {
		render(w, r, "user.html", &pageData{
			Title:       "Edit profile",
			CurrentUser: user,
			FormData:    f.data(),
			FieldErrors: f.Errors,
		})
		return
	}

	updates := map[string]interface{}{
		"username":   f.Username,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"email":      f.Email,
	}
	if err := DB.Model(user).Updates(updates).Error; err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile/"+f.Username, http.StatusSeeOther)
}

package main

import "net/http"

/* ---------- Static pages ---------- */

func handleAbout(w http.ResponseWriter, r *http.Request) {
	render(w, r, "about.html", &pageData{Title: "About"})
}

func handleRules(w http.ResponseWriter, r *http.Request) {
	render(w, r, "rules.html", &pageData{Title: "Rules"})
}

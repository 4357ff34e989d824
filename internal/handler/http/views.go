package http

import "net/http"

const homeTemplate = "news_site/home.html"

// home renders the landing page of the news site.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, homeTemplate, nil)
}

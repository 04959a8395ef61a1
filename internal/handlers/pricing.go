package handlers

import (
	"embed"
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"

	"yt-planner/internal/auth"
	"yt-planner/internal/gate"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type pricingPage struct {
	Tiers    []gate.Tier
	Demo     bool
	SignedIn bool
}

// GetPricing renders the plan comparison. It is public; the facade only
// decides the banner.
func (h *Handlers) GetPricing(w http.ResponseWriter, r *http.Request) {
	page := pricingPage{Tiers: gate.PricingTiers()}
	if a, ok := auth.FromContext(r.Context()); ok {
		page.Demo = a.Demo()
		page.SignedIn = a.IsSignedIn()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "pricing.html", page); err != nil {
		log.Printf("Error executing template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

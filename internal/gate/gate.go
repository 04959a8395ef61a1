// Package gate decides which premium-only rows and actions a user may see.
//
// The same predicate backs the SQL filters in package db and the UI hints
// returned by the API; only the query-side filter is a security boundary.
package gate

import (
	"yt-planner/internal/models"
	apperrors "yt-planner/pkg/errors"
)

// Gated is implemented by every record that can be premium-only.
type Gated interface {
	Premium() bool
}

// IsPremium treats a missing user as a free user.
func IsPremium(user *models.User) bool {
	return user != nil && user.IsPremium
}

// CanAccess reports whether user may see resource. Free resources are always
// visible; premium resources only to premium users.
func CanAccess(resource Gated, user *models.User) bool {
	return !resource.Premium() || IsPremium(user)
}

// Filter keeps the items user may access, preserving order.
func Filter[T Gated](items []T, user *models.User) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if CanAccess(item, user) {
			out = append(out, item)
		}
	}
	return out
}

// IncludePremium is the query-side form of CanAccess: premium rows are read
// only when the user is premium and the caller asked for them.
func IncludePremium(user *models.User, requested bool) bool {
	return requested && IsPremium(user)
}

// RequirePremium refuses premium-only actions for free users.
func RequirePremium(user *models.User, feature string) error {
	if !IsPremium(user) {
		return apperrors.PremiumRequired(feature)
	}
	return nil
}

// Tier is a row of the pricing page. Tiers are marketing copy: nothing in the
// data layer distinguishes Pro from Premium.
type Tier struct {
	Name        string
	Tagline     string
	PriceUSD    int
	Highlighted bool
	Features    []TierFeature
}

type TierFeature struct {
	Text     string
	Included bool
}

// PricingTiers returns the plans shown on the pricing page.
func PricingTiers() []Tier {
	return []Tier{
		{
			Name:     "Free",
			Tagline:  "Get started with basic features",
			PriceUSD: 0,
			Features: []TierFeature{
				{"Connect 1 YouTube channel", true},
				{"3 content ideas per month", true},
				{"Basic trending topics", true},
				{"Competitor analysis", false},
				{"Advanced content ideas", false},
				{"Premium trending topics", false},
			},
		},
		{
			Name:        "Pro",
			Tagline:     "Perfect for growing creators",
			PriceUSD:    19,
			Highlighted: true,
			Features: []TierFeature{
				{"Connect 3 YouTube channels", true},
				{"Unlimited content ideas", true},
				{"All trending topics", true},
				{"Competitor analysis (3 competitors)", true},
				{"Advanced content ideas", true},
				{"Performance predictions", false},
			},
		},
		{
			Name:     "Premium",
			Tagline:  "For serious content creators",
			PriceUSD: 49,
			Features: []TierFeature{
				{"Unlimited YouTube channels", true},
				{"Unlimited content ideas", true},
				{"All trending topics", true},
				{"Unlimited competitor analysis", true},
				{"Advanced content ideas", true},
				{"Performance predictions", true},
			},
		},
	}
}

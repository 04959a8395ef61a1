// Package feed renders a user's content ideas as an RSS feed so they can be
// followed from any feed reader.
package feed

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/eduncan911/podcast"

	"yt-planner/internal/models"
)

// BaseURL prefers the configured base URL and otherwise rebuilds it from the
// request, honouring X-Forwarded-Proto.
func BaseURL(r *http.Request, configured string) string {
	if configured != "" {
		return strings.TrimSuffix(configured, "/")
	}

	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "https"
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

func feedTitle(user *models.User) string {
	if user.Name != nil && *user.Name != "" {
		return *user.Name + "'s content ideas"
	}
	return "Content ideas"
}

// IdeasRSS builds the feed document. Ideas are expected newest first; the
// newest one sets the feed's build date.
func IdeasRSS(user *models.User, ideas []models.ContentIdea, baseURL string) (string, error) {
	feedURL := fmt.Sprintf("%s/feeds/%s/ideas.rss", baseURL, user.FeedToken)
	updated := user.CreatedAt
	if len(ideas) > 0 {
		updated = ideas[0].CreatedAt
	}

	p := podcast.New(feedTitle(user), feedURL, "Video ideas from your YouTube planner.", &user.CreatedAt, &updated)
	p.Generator = "yt-planner"

	for _, idea := range ideas {
		createdAt := idea.CreatedAt
		description := idea.Description
		if description == "" {
			description = idea.Title
		}
		item := podcast.Item{
			GUID:        idea.ID,
			Title:       idea.Title,
			Link:        fmt.Sprintf("%s/ideas/%s", baseURL, idea.ID),
			Description: description,
			PubDate:     &createdAt,
		}
		if idea.Category != nil {
			item.Category = *idea.Category
		}
		if _, err := p.AddItem(item); err != nil {
			return "", err
		}
	}

	return p.String(), nil
}

package maintenance

import (
	"log"
	"strings"
)

// Decision carries the action for a request and, for redirects, its Location.
type Decision struct {
	Action   Action
	Location string
}

// Guard drives Decide for live requests. It holds no per-request state.
type Guard struct {
	settings       ConfigStore
	content        ContentRepository
	homeURL        string
	defaultMessage string
}

// NewGuard constructs a Guard. homeURL is the redirect target once maintenance ends.
func NewGuard(settings ConfigStore, content ContentRepository, homeURL, defaultMessage string) *Guard {
	home := strings.TrimSpace(homeURL)
	if home == "" {
		home = "/"
	}
	return &Guard{
		settings:       settings,
		content:        content,
		homeURL:        home,
		defaultMessage: defaultMessage,
	}
}

// Check evaluates a request for requestedSlug. Configuration failures are returned;
// content lookup failures are logged and treated as a missing maintenance page.
func (g *Guard) Check(requestedSlug string, privileged bool) (Decision, error) {
	if privileged {
		return Decision{Action: ActionAllow}, nil
	}

	cfg, err := LoadConfig(g.settings, g.defaultMessage)
	if err != nil {
		return Decision{}, err
	}

	var page *Entity
	if cfg.Enabled && requestedSlug != PageSlug {
		page = g.lookupMaintenancePage()
	}

	action := Decide(requestedSlug, privileged, cfg, page != nil)
	switch action {
	case ActionRedirectMaintenance:
		location, err := g.content.Permalink(KindPage, page.ID)
		if err != nil {
			log.Printf("[MAINTENANCE] permalink for page %d failed, serving request: %v", page.ID, err)
			return Decision{Action: ActionAllow}, nil
		}
		return Decision{Action: action, Location: location}, nil
	case ActionRedirectHome:
		return Decision{Action: action, Location: g.homeURL}, nil
	default:
		return Decision{Action: ActionAllow}, nil
	}
}

func (g *Guard) lookupMaintenancePage() *Entity {
	page, err := g.content.FindBySlug(PageSlug, KindPage)
	if err != nil {
		log.Printf("[MAINTENANCE] lookup of %q failed, treating as absent: %v", PageSlug, err)
		return nil
	}
	return page
}

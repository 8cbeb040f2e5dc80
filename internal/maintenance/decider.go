package maintenance

// Action is the outcome of a redirect decision.
type Action int

const (
	// ActionAllow lets the request render normally.
	ActionAllow Action = iota
	// ActionRedirectMaintenance sends the visitor to the maintenance page.
	ActionRedirectMaintenance
	// ActionRedirectHome sends the visitor to the site home.
	ActionRedirectHome
)

func (a Action) String() string {
	switch a {
	case ActionRedirectMaintenance:
		return "redirect_maintenance"
	case ActionRedirectHome:
		return "redirect_home"
	default:
		return "allow"
	}
}

// IsRedirect reports whether the action terminates the request with a redirect.
func (a Action) IsRedirect() bool {
	return a != ActionAllow
}

// Decide 根据维护开关、访问者权限以及请求的页面决定是否重定向。
// requestedSlug 为空表示请求的不是具体页面（例如首页）。
func Decide(requestedSlug string, privileged bool, cfg Config, maintenancePageExists bool) Action {
	if privileged {
		return ActionAllow
	}

	onMaintenancePage := requestedSlug == PageSlug

	if cfg.Enabled {
		if onMaintenancePage {
			return ActionAllow
		}
		if maintenancePageExists {
			return ActionRedirectMaintenance
		}
		// 没有维护页可跳转时放行，而不是跳到不存在的地址。
		return ActionAllow
	}

	if onMaintenancePage {
		return ActionRedirectHome
	}
	return ActionAllow
}

package boundary

import "strings"

// Category buckets an error by the subsystem it most likely came from.
type Category string

const (
	CategoryRender  Category = "render"
	CategoryAudio   Category = "audio"
	CategoryPlugin  Category = "plugin"
	CategorySystem  Category = "system"
	CategoryNetwork Category = "network"
	CategoryUnknown Category = "unknown"
)

// Severity ranks how urgent a classified error is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityCritical Severity = "critical"
)

// Action is the suggested response for a classified error.
type Action string

const (
	ActionSkipRender      Action = "skip-render"
	ActionDisableAudio    Action = "disable-audio"
	ActionDisablePlugin   Action = "disable-plugin"
	ActionRestartRequired Action = "restart-required"
	ActionRetry           Action = "retry"
	ActionLogOnly         Action = "log-only"
)

// Classification is the triage verdict for one error.
type Classification struct {
	Category    Category
	Severity    Severity
	Recoverable bool
	Action      Action
}

// ClassifyError buckets an error by keyword matching over its message.
// This is best-effort triage for deciding degradation behavior, not exact
// typing: an unknown error is still recoverable and merely logged.
func ClassifyError(err error) Classification {
	if err == nil {
		return Classification{Category: CategoryUnknown, Severity: SeverityLow, Recoverable: true, Action: ActionLogOnly}
	}

	msg := strings.ToLower(err.Error())

	switch {
	case containsAny(msg, "render", "webgl"):
		return Classification{Category: CategoryRender, Severity: SeverityMedium, Recoverable: true, Action: ActionSkipRender}
	case containsAny(msg, "audio", "sound"):
		return Classification{Category: CategoryAudio, Severity: SeverityLow, Recoverable: true, Action: ActionDisableAudio}
	case containsAny(msg, "plugin"):
		return Classification{Category: CategoryPlugin, Severity: SeverityMedium, Recoverable: true, Action: ActionDisablePlugin}
	case containsAny(msg, "system", "memory", "quota"):
		return Classification{Category: CategorySystem, Severity: SeverityCritical, Recoverable: false, Action: ActionRestartRequired}
	case containsAny(msg, "network", "fetch", "connection"):
		return Classification{Category: CategoryNetwork, Severity: SeverityMedium, Recoverable: true, Action: ActionRetry}
	default:
		return Classification{Category: CategoryUnknown, Severity: SeverityMedium, Recoverable: true, Action: ActionLogOnly}
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package events

// Event types emitted by the core services. The dispatcher itself is
// untyped; these constants keep producers and consumers aligned.
const (
	// EventDiscoveryObject fires after an object discovery is recorded.
	// Data is the *types.DiscoveryEntry.
	EventDiscoveryObject = "discovery.object"
	// EventDiscoveryRegion fires after a region discovery is recorded.
	// Data is the *types.DiscoveryEntry.
	EventDiscoveryRegion = "discovery.region"

	// EventConfigChanged fires when a settings value changes. Data is a
	// ConfigChange.
	EventConfigChanged = "config.changed"

	// EventSaveCompleted fires after a successful save.
	EventSaveCompleted = "save.completed"
	// EventLoadCompleted fires after a successful load.
	EventLoadCompleted = "load.completed"

	// EventErrorOccurred fires on every reported error. Data is the
	// boundary report.
	EventErrorOccurred = "error.occurred"
	// EventServiceDegraded fires the first time a service's circuit opens.
	EventServiceDegraded = "error.service.degraded"
	// EventServiceRecovered fires on explicit service recovery.
	EventServiceRecovered = "error.service.recovered"
	// EventErrorCritical fires for critical-severity errors.
	EventErrorCritical = "error.critical"
)

// ConfigChange is the payload of EventConfigChanged.
type ConfigChange struct {
	Key      string // e.g. "audio.volume", "autosave.interval"
	OldValue any
	NewValue any
}

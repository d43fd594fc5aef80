// Package discovery implements discovery detection, classification, and
// recording for celestial objects and cosmic regions.
//
// The package is split into three layers:
//
//  1. Classifier - pure geometry: is this object discoverable from the
//     current camera position? Stars use screen visibility, everything
//     else uses a per-type proximity threshold.
//  2. ObjectPipeline / RegionPipeline - turn a discoverable object into a
//     permanent DiscoveryEntry and fan out side effects (display, logbook,
//     audio) behind error boundaries, so one failing subsystem never
//     blocks the record from being written.
//  3. Service - the façade owning the authoritative discovery map, region
//     deduplication, and the export/import round trip used by save files.
//
// All pipelines take their collaborators as interfaces (ports.go); tests
// substitute fakes and assert on recorded calls.
package discovery

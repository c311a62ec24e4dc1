// Package version provides build and version information.
package version

// Version is the current library version.
const Version = "1.0.0"

// Milestones:
// 1.0.0 - Full event engine: eclipses, apsides, seasons, elongations
// 0.3.0 - Almanac TUI, YAML site presets, JSON export
// 0.2.0 - Conjunctions, oppositions, occultations, Moon phase model
// 0.1.0 - Initial release: rise/culmination/set solver, Meeus provider

// Package production provides production integrations for performance
// events: timeline persistence, channel publishing, an SQLite event journal
// and navigation graph export.
package production

// Package media discovers the image, sound and avatar files a game is
// played with. Discovery is a configuration-time step: Discover validates
// that every required kind yields at least one file and returns an
// immutable Pool of sorted references.
package media

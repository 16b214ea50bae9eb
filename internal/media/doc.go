// Package media holds the error taxonomy shared by the probe and video
// packages.
package media

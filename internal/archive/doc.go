// Package archive rotates a finished deck file out of the way.
package archive

// Package demo holds the sample greeting commands and manifests the baton CLI ships with.
package demo

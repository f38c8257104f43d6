// Package events provides a minimal in-process event mechanism that lets
// services request background work without importing the task machinery.
package events

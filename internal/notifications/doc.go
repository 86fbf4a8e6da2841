// Package notifications delivers conversion lifecycle pushes over ntfy.
package notifications

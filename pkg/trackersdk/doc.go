// Package trackersdk is a typed HTTP client for the Minutron API. It is
// used by the end-to-end tests and is the supported way for external tools
// to drive the service, including turning report summaries into CSV.
package trackersdk

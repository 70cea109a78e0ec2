// Package handlers serves the server-rendered dashboard pages, the report
// download and the health probes. JSON endpoints live in handlers/api.
package handlers

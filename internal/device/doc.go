// Package device loads remote-control definition files.
//
// A device file is a YAML or JSON document in the shape popularized by
// SmartIR device databases: manufacturer, supported models, the code
// format, and a map of command names to code strings. Files are validated
// against an embedded CUE schema before any code is touched, so malformed
// vendor data is rejected at the boundary with a position-annotated error
// rather than surfacing later as a codec failure.
package device

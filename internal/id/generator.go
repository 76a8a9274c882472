package id

import "github.com/segmentio/ksuid"

const (
	RequestPrefix = "req_"
	ExportPrefix  = "exp_"
)

// GenerateIDWithPrefix creates a new KSUID with the given prefix.
// KSUIDs are time-ordered, so request and export ids sort by creation.
//
// Example: req_2ArTLVPddDx8vZk7CqEbiYp1
func GenerateIDWithPrefix(prefix string) string {
	return prefix + ksuid.New().String()
}

// NewRequestID tags an outbound call to the catalog API.
func NewRequestID() string {
	return GenerateIDWithPrefix(RequestPrefix)
}

// NewExportID names a generated catalog document.
func NewExportID() string {
	return GenerateIDWithPrefix(ExportPrefix)
}

package config

const (
	// Ports the services listen on; the gateway proxies by path prefix.
	DefaultGatewayPort    = 8080
	DefaultSummarizerPort = 7143

	// Upload handling
	MaxUploadBytes = 32 << 20
	PreviewRows    = 500

	// Output cleanup
	DefaultCleanupSchedule = "*/10 * * * *" // check for expired files every 10 minutes
	DefaultMaxAgeMinutes   = 60

	// Legacy xls conversion keeps sheet names within the xlsx limit.
	SheetNameLimit = 31
)

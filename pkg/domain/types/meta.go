package types

const AppName = "octobak"

// AppVersion is overwritten at build time with -ldflags "-X".
var AppVersion = "dev"

// DefaultUserAgent is sent with every GitHub request unless overridden
func DefaultUserAgent() string {
	return AppName + "/" + AppVersion
}

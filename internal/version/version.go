package version

// Version is overridden at link time: -ldflags "-X hibf-hashing/internal/version.Version=v1.2.3".
var Version = "dev"

package cmd

// Version is overridden at link time with -X github.com/buildpacks/libcnb/cmd.Version=<version>
var Version = "0.0.0"

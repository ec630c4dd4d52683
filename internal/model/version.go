package model

// Version is the release version reported by --version and the update check.
const Version = "2.2.0"

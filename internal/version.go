package internal

// Version is the current kanjideck release.
const Version = "0.3.1"

package wolfera

// Version is the interpreter release; overridden at link time by the
// release build.
var Version = "0.4.0-dev"

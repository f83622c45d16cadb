package console

// BabelToken is repeated across babel lines once the login has failed
const BabelToken = "BABEL "

// DefaultColumns is the display width at which a babel line wraps
const DefaultColumns = 48

// MaxMaskLength caps the number of asterisks echoed for a password
const MaxMaskLength = 16

// BlankUsername is echoed when the username is submitted empty
const BlankUsername = "(blank)"

// greeting is printed when the terminal starts
var greeting = []string{
	"HOS ver.1.03  HYPER OPERATING SYSTEM",
	"(c) BABEL PROJECT. all rights reserved.",
	"",
	"remote terminal ready. authentication required.",
}

// failureBanner is printed after any password
var failureBanner = []string{
	"",
	"*** LOGIN INCORRECT ***",
	"access denied: credentials not recognized by this terminal.",
}

// introScript follows the banner, before the babel lines take over
var introScript = []string{
	"",
	"> fallback session opened",
	"> loading babel.sys ........ ok",
	"> patching resident labor units ........ ok",
	"> waiting for the tower to answer",
	"",
}

package git

// RedactText is exported for tests
var RedactText = redactText

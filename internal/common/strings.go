package common

// UnknownStr is the String() form of any enum value outside its defined range.
const UnknownStr = "unknown"

package utils

import "errors"

// ErrUserInitiatedExit is returned when the user asked for something which
// ends the program without it being a failure, such as the help text.
var ErrUserInitiatedExit = errors.New("user initiated exit")

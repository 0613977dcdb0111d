package masker

import "errors"

// ErrConfigNotPointer is returned when a config passed to LogConfigs is not
// a pointer to a struct.
var ErrConfigNotPointer = errors.New("config must be a pointer to a struct")

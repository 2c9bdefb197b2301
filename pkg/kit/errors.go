package kit

import "errors"

var errTrailingData = errors.New("extra data after json object")

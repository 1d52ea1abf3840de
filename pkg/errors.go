package pkg

import "errors"

var ErrInvalidContentType = errors.New("invalid content type")

package common

import "errors"

var (
	ErrorInvalidValue = errors.New("invalid value")
	ErrorEmptyDataset = errors.New("empty dataset")
)

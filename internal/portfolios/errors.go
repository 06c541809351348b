package portfolios

import "errors"

var (
	ErrNameTaken = errors.New("portfolio name already exists for this user")
)

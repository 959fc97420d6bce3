package blocks

import "errors"

var (
	// ErrInternal возвращается при ошибках чтения блокировок
	ErrInternal = errors.New("blocks: internal error")
)

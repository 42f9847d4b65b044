package kvstore

import "errors"

var (
	// ErrConflict возвращается, когда ключ был изменен параллельной записью во время Update
	ErrConflict = errors.New("kvstore: concurrent modification")

	// ErrStorage возвращается при ошибках хранилища (сеть, SQL, и т.д.)
	ErrStorage = errors.New("kvstore: storage error")
)

package availability

import "errors"

// ErrInvalidCatalog возвращается при некорректных параметрах каталога слотов
var ErrInvalidCatalog = errors.New("availability: invalid slot catalog parameters")

package config

import "errors"

var (
	// ErrInvalidConfig возвращается, когда параметры каталога слотов некорректны
	ErrInvalidConfig = errors.New("config.service: invalid slots config")
)

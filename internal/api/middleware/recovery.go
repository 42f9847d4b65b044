package middleware

import "fmt"

// RecoveryLogger адаптирует Logger к gorilla/handlers.RecoveryHandlerLogger
type RecoveryLogger struct {
	Logger Logger
}

// Println пишет сообщение о панике обработчика
func (l RecoveryLogger) Println(v ...interface{}) {
	l.Logger.Error("panic recovered: %s", fmt.Sprint(v...))
}

package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, по которому в context лежит *gorm.DB
// (пул соединений либо транзакция, которую подложили тесты).
const DBContextKey = contextKey("db")

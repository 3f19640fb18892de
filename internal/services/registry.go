package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	PaymentService PaymentService
}

// @title           SystemPay backend API
// @version         1.0
// @description     Интеграция чекаута с hosted payment page SystemPay.
// @host            localhost:4000
// @BasePath        /

package main

import "systempay_backend/internal/app"

func main() {
	app.Run()
}

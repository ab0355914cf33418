package main

// @title LookEscolar
// @version 1.0
// @description REST API фотосервиса школьных событий: токены доступа, превью и настройки

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	Execute()
}

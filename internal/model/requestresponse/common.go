package requestresponse

// ErrorResponse : тело ответа util.HandleError
type ErrorResponse struct {
	Error   string `json:"error" example:"Bad Request"`
	Message string `json:"message" example:"неверный формат запроса"`
	Code    int    `json:"code" example:"400"`
}

// SuccessResponse : стандартный ответ успешного выполнения операции
type SuccessResponse struct {
	Message string `json:"message" example:"ok"`
}

package apimodels

type Response struct {
	Status  string      `json:"status"`            //результат обработки fail/success
	Message string      `json:"message,omitempty"` //сообщение ошибки
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

// ForwardedResponse - контракт успешного перевода пачки откликов
type ForwardedResponse struct {
	Status string `json:"status"`
}

func NewForwardedResponse() ForwardedResponse {
	return ForwardedResponse{Status: "Forwarded"}
}

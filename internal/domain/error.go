package domain

// ErrorResponse é o corpo de toda resposta de erro da API. Category é estável e serve
// para o cliente decidir o que fazer; Message é para exibição.
// @Description Corpo padronizado das respostas de erro.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"INVALID_OR_EXPIRED_INVITATION"`
	Message  string `json:"message" example:"Convite inválido ou expirado."`
}

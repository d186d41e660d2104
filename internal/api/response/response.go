package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
)

// Writer padroniza as respostas JSON de handlers e middlewares.
type Writer struct {
	Logger logger.Logger
}

// NewWriter cria um Writer com o logger da aplicação.
func NewWriter(log logger.Logger) *Writer {
	return &Writer{Logger: log}
}

// Handle processa o resultado do serviço: sucesso vira JSON com successStatus,
// erro vira o corpo padronizado {code, category, message}.
func (rw *Writer) Handle(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err != nil {
		rw.Error(w, r, err)
		return
	}
	rw.JSON(w, successStatus, data)
}

// JSON escreve data com o status informado. data nil gera corpo vazio.
func (rw *Writer) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rw.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error mapeia o erro para HTTP. Erros 5xx são logados com a causa, mas o corpo é genérico.
func (rw *Writer) Error(w http.ResponseWriter, r *http.Request, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		rw.Logger.With(map[string]interface{}{
			"op":     r.Method + " " + r.URL.Path,
			"status": status,
		}).Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		rw.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	rw.JSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// DecodeJSON lê o corpo da requisição em dst. Corpo ausente ou malformado vira ValidationError.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperror.NewValidationError("Payload ausente.")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}

const maxBodyBytes = 1 << 20

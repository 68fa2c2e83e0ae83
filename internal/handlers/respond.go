package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"simaset/internal/errs"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// writeJSON сериализует ответ; на ошибку сериализации отвечаем 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody — единый формат ошибки API.
type errorBody struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// writeError отображает ошибку приложения в HTTP-ответ. Причина internal
// ошибок попадает только в лог, клиент видит общий текст.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	status := errs.HTTPStatus(err)
	body := errorBody{Message: errs.ClientMessage(err)}
	var e *errs.Error
	if errors.As(err, &e) {
		body.Fields = e.Fields
	}
	if status >= http.StatusInternalServerError {
		logger.Errorw("request failed", "error", err)
	}
	writeJSON(w, status, body)
}

// decodeJSON разбирает тело запроса в типизированный DTO. Неизвестные поля
// отклоняются; затем DTO прогоняется через validator.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.Validation("Body request tidak valid")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return errs.Validation("", fields...)
		}
		return errs.Validation("Body request tidak valid")
	}
	return nil
}

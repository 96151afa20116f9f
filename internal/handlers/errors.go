package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/services"
)

// respondError переводит ошибку предметной области в HTTP-ответ. Вид ошибки
// дублируется полем kind в теле: клиент ветвится по нему, не разбирая текст.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	body := gin.H{"error": err.Error()}
	if kind != "" {
		body["kind"] = string(kind)
	}

	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		body["field"] = ve.Field
	}
	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		body["entity"] = nf.Entity
	}

	switch kind {
	case apperrors.KindValidation, apperrors.KindRange:
		c.JSON(http.StatusBadRequest, body)
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, body)
	case apperrors.KindConsistency:
		c.JSON(http.StatusConflict, body)
	default:
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Внутренняя ошибка запроса", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

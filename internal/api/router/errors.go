package router

import (
	"errors"

	"github.com/DjordjeVuckovic/exam-portal/internal/apperr"
	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}

func storeError(op, resource, id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NewNotFound(resource, id)
	}
	return apperr.NewUpstream(op, err)
}

func collectionParam(name string) (string, error) {
	if !domain.IsCollection(name) {
		return "", apperr.NewValidation("unknown collection " + name)
	}
	return name, nil
}

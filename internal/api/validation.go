package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	apperrors "character-forge/backend/pkg/errors"
)

func requireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be a non-empty string", field))
	}
	return nil
}

func requireURL(field, value string) error {
	if err := requireNonEmpty(field, value); err != nil {
		return err
	}
	parsed, err := url.ParseRequestURI(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be a valid URL", field))
	}
	return nil
}

func parseCharacterID(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", apperrors.NewInvalidIDError("Invalid character ID format")
	}
	return id, nil
}

func parseTemplateID(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", apperrors.NewInvalidIDError("Invalid template ID format")
	}
	return id, nil
}

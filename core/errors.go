package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	FlowconfErrorInvalidTokenRange = "FLOWCONF_INVALID_TOKEN_RANGE"
	FlowconfErrorTokenConflict     = "FLOWCONF_TOKEN_CONFLICT"
	FlowconfErrorBadInput          = "FLOWCONF_BAD_INPUT"
	FlowconfErrorInternal          = "FLOWCONF_INTERNAL_ERROR"
)

var (
	ErrInvalidTokenRange = errors.New("core: serialization token out of range")
	ErrTokenConflict     = errors.New("core: serialization token already assigned")
)

func invalidTokenRangeError(token int, typ TypeName) *goerrors.Error {
	return goerrors.Wrap(
		ErrInvalidTokenRange,
		goerrors.CategoryValidation,
		fmt.Sprintf(
			"serialization token %d must be greater than %d (lower values are reserved by the engine)",
			token, ReservedTokenThreshold,
		),
	).
		WithCode(http.StatusBadRequest).
		WithTextCode(FlowconfErrorInvalidTokenRange).
		WithMetadata(map[string]any{
			"token":     token,
			"threshold": ReservedTokenThreshold,
			"type":      typ.String(),
		})
}

func tokenConflictError(token int, existing TypeName, requested TypeName) *goerrors.Error {
	return goerrors.Wrap(
		ErrTokenConflict,
		goerrors.CategoryConflict,
		fmt.Sprintf("serialization token %d is already assigned to %s", token, existing),
	).
		WithCode(http.StatusConflict).
		WithTextCode(FlowconfErrorTokenConflict).
		WithMetadata(map[string]any{
			"token":         token,
			"existing_type": existing.String(),
			"type":          requested.String(),
		})
}

func registryErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return ensureErrorEnvelope(
			goerrors.New(err.Error(), goerrors.CategoryBadInput).
				WithTextCode(FlowconfErrorBadInput),
		)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureErrorEnvelope(mapped)
}

func ensureErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = errorHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return FlowconfErrorBadInput
	case goerrors.CategoryConflict:
		return FlowconfErrorTokenConflict
	default:
		return FlowconfErrorInternal
	}
}

func errorHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

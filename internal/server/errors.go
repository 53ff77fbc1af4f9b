package server

import (
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/transcript-genie/internal/assembler"
	"github.com/nguyentantai21042004/transcript-genie/internal/llm"
	"github.com/nguyentantai21042004/transcript-genie/internal/transcript"
)

// errorStatus decides, in one place, how each error kind renders to the
// user. Provider messages pass through verbatim; nothing here is fatal to
// the process.
func errorStatus(err error) int {
	var fetchErr *transcript.FetchError
	var genErr *llm.GenerationError
	var asmErr *assembler.AssemblyError

	switch {
	case errors.Is(err, transcript.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, transcript.ErrUnknownMethod):
		return http.StatusBadRequest
	case errors.Is(err, transcript.ErrEmptyTranscript):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &genErr):
		return http.StatusBadGateway
	case errors.As(err, &asmErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

package controllers

import (
	"net/http"

	"github.com/angelmondragon/stockroom/api/responses"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
)

// NotFound answers unmatched routes with {"error":"Not Found"}.
func NotFound(rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := pkgerrors.MetadataFor(pkgerrors.CodeNotFound).PublicMessage
		rw.Error(r.Context(), w, pkgerrors.New(pkgerrors.CodeNotFound, msg))
	}
}

// MethodNotAllowed answers with {"error":"Method Not Allowed"}.
func MethodNotAllowed(rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := pkgerrors.MetadataFor(pkgerrors.CodeMethodNotAllowed).PublicMessage
		rw.Error(r.Context(), w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, msg))
	}
}

package responses

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/angelmondragon/stockroom/pkg/codec"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
	"github.com/angelmondragon/stockroom/pkg/logger"
)

// ErrorBody is the wire shape of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the wire shape of confirmations.
type MessageBody struct {
	Message string `json:"message"`
}

// Writer encodes response payloads through the deployment's codec.
type Writer struct {
	codec codec.Codec
	logg  *logger.Logger
}

// NewWriter binds a codec and logger. A nil codec means plain JSON.
func NewWriter(c codec.Codec, logg *logger.Logger) *Writer {
	if c == nil {
		c = codec.Plain{}
	}
	return &Writer{codec: c, logg: logg}
}

// Codec returns the codec responses are encoded with.
func (rw *Writer) Codec() codec.Codec {
	return rw.codec
}

func (rw *Writer) Success(w http.ResponseWriter, data any) {
	rw.JSON(w, http.StatusOK, data)
}

func (rw *Writer) Created(w http.ResponseWriter, data any) {
	rw.JSON(w, http.StatusCreated, data)
}

// Message writes {"message": msg} with a 200 status.
func (rw *Writer) Message(w http.ResponseWriter, msg string) {
	rw.JSON(w, http.StatusOK, MessageBody{Message: msg})
}

// Error maps err to its HTTP status, logs the full chain and writes
// {"error": ...}. Messages of internal and dependency failures never reach
// the client.
func (rw *Writer) Error(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
		err = typed
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	if rw.logg != nil {
		dump := pkgerrors.Dump(err)
		fields := dump.Fields()
		fields["status"] = meta.HTTPStatus
		ctx = rw.logg.WithFields(ctx, fields)
		if meta.HTTPStatus >= http.StatusInternalServerError {
			rw.logg.Error(ctx, "request.error", err)
		} else {
			rw.logg.Warn(ctx, "request.rejected")
		}
	}

	rw.JSON(w, meta.HTTPStatus, ErrorBody{Error: pkgerrors.PublicMessage(typed)})
}

// JSON encodes payload with the codec and writes it with status.
func (rw *Writer) JSON(w http.ResponseWriter, status int, payload any) {
	body, err := rw.codec.Encode(payload)
	if err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
		status = http.StatusInternalServerError
		body, err = rw.codec.Encode(ErrorBody{Error: pkgerrors.MetadataFor(pkgerrors.CodeInternal).PublicMessage})
		if err != nil {
			w.WriteHeader(status)
			return
		}
	}
	w.Header().Set("Content-Type", rw.codec.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Printf(`{"level":"error","msg":"failed to write response","err":"%v"}`, err)
	}
}

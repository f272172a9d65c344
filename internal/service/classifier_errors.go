package service

import "errors"

// Taxonomía de fallas del clasificador por modelo. Cualquiera de estas
// dispara el fallback al clasificador por reglas; nunca llegan al caller
// del pipeline.
var (
	// ErrModelUnavailable cubre errores de transporte y respuestas 5xx del
	// servicio de inferencia, además del circuit breaker abierto.
	ErrModelUnavailable = errors.New("model service unavailable")

	// ErrModelTimeout indica que el modelo no respondió dentro del plazo.
	ErrModelTimeout = errors.New("model timed out")

	// ErrMalformedResponse indica que la salida del modelo no contiene el
	// JSON esperado o le faltan campos.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrUnknownEmotion indica una etiqueta fuera de la enumeración. El
	// clasificador nunca la sustituye por un valor por defecto.
	ErrUnknownEmotion = errors.New("unknown emotion label")

	// ErrScoreOutOfBounds indica mood_score fuera de [-1, 1] o confianza
	// fuera de [0, 1].
	ErrScoreOutOfBounds = errors.New("score out of bounds")
)

package services

import "errors"

// Sentinel errors for the pipeline. Callers classify failures with errors.Is;
// transport-level causes are attached with fmt.Errorf("%w: %v", ...).
var (
	ErrUnsupportedFileType  = errors.New("tipo de archivo no soportado")
	ErrExtraction           = errors.New("no se pudo extraer el texto del archivo")
	ErrEmptyDocument        = errors.New("el archivo está vacío o no se pudo leer texto")
	ErrEmbeddingUnavailable = errors.New("el cliente de embeddings no está inicializado")
	ErrEmbeddingService     = errors.New("no se pudo generar el embedding")
	ErrStoreUnavailable     = errors.New("el índice de vectores no está inicializado")
	ErrStoreOperation       = errors.New("error consultando el índice de vectores")
	ErrGenerationService    = errors.New("error generando la respuesta")
	ErrNotInitialized       = errors.New("los servicios no están inicializados correctamente")
)

// ValidationError is returned when a question is rejected before any external
// call is made. Reason is the exact message shown to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidationError reports whether err is a question rejection and, if so,
// returns the rejection reason.
func IsValidationError(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return "", false
}

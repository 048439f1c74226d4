package models

// AskResponse is the wire response for POST /api/v1/ask. Following the
// original UI contract, errors are collapsed into Respuesta so the caller
// always has something to display; Error repeats the message when set.
type AskResponse struct {
	Respuesta string  `json:"respuesta"`
	Segundos  float64 `json:"segundos,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// IngestResponse is the wire response for POST /api/v1/documents.
type IngestResponse struct {
	Mensaje     string `json:"mensaje"`
	Total       int    `json:"total"`
	Almacenados int    `json:"almacenados"`
	Fallidos    []int  `json:"fallidos,omitempty"`
	Error       string `json:"error,omitempty"`
}

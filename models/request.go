package models

type AskRequest struct {
	Pregunta string `json:"pregunta" binding:"required"`
}

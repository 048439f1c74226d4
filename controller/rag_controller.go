package controller

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docuask/docuask/models"
	"github.com/docuask/docuask/services"
)

// RAGController handles the HTTP requests for the question-answering API. It
// is the only layer that collapses pipeline errors into display strings; the
// service layer below reports typed errors.
type RAGController struct {
	ragService services.RAGService
}

// NewRAGController is called from main.go to inject the service dependency.
func NewRAGController(service services.RAGService) *RAGController {
	return &RAGController{
		ragService: service,
	}
}

// AskQuestion is the Gin handler for the POST /api/v1/ask endpoint. The
// response always carries displayable text in `respuesta`: rejections and
// pipeline failures are merged into the same channel the answer would use.
func (c *RAGController) AskQuestion(ctx *gin.Context) {
	var req models.AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.AskResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := c.ragService.AskQuestion(ctx.Request.Context(), req.Pregunta)
	if err != nil {
		if reason, ok := services.IsValidationError(err); ok {
			ctx.JSON(http.StatusOK, models.AskResponse{Respuesta: reason, Error: reason})
			return
		}
		mensaje := "Error: " + err.Error()
		ctx.JSON(http.StatusOK, models.AskResponse{Respuesta: mensaje, Error: mensaje})
		return
	}

	minutos := result.ElapsedSeconds / 60
	respuesta := fmt.Sprintf("Respuesta:\n%s\n\nTiempo de respuesta: %.2f segundos (%.2f minutos)",
		result.Answer, result.ElapsedSeconds, minutos)
	ctx.JSON(http.StatusOK, models.AskResponse{Respuesta: respuesta, Segundos: result.ElapsedSeconds})
}

// IngestDocument is the Gin handler for the POST /api/v1/documents endpoint.
// It expects a multipart form with a single "file" field.
func (c *RAGController) IngestDocument(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.IngestResponse{
			Mensaje: "No se seleccionó ningún archivo.",
			Error:   err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.IngestResponse{
			Mensaje: "Error al procesar el archivo: " + err.Error(),
			Error:   err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.IngestResponse{
			Mensaje: "Error al procesar el archivo: " + err.Error(),
			Error:   err.Error(),
		})
		return
	}

	result, err := c.ragService.IngestDocument(ctx.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, models.IngestResponse{
			Mensaje: "Error al procesar el archivo: " + err.Error(),
			Error:   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, models.IngestResponse{
		Mensaje:     fmt.Sprintf("Documento '%s' procesado correctamente. Chunks: %d", result.Filename, result.Stored),
		Total:       result.Total,
		Almacenados: result.Stored,
		Fallidos:    result.Failed,
	})
}

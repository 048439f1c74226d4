package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docuask/docuask/models"
)

func TestAssembleContext_Empty(t *testing.T) {
	assert.Equal(t, "", AssembleContext(nil))
	assert.Equal(t, "", AssembleContext([]models.Match{}))
}

func TestAssembleContext_JoinsInRetrievalOrder(t *testing.T) {
	matches := []models.Match{
		{Metadata: map[string]interface{}{"texto": "primero"}, Score: 0.9},
		{Metadata: map[string]interface{}{"texto": "segundo"}, Score: 0.7},
		{Metadata: map[string]interface{}{"texto": "tercero"}, Score: 0.4},
	}

	assert.Equal(t, "primero\n---\nsegundo\n---\ntercero", AssembleContext(matches))
}

func TestAssembleContext_DropsMatchesWithoutTexto(t *testing.T) {
	matches := []models.Match{
		{Metadata: map[string]interface{}{"texto": "primero"}},
		{Metadata: map[string]interface{}{"fuente": "doc.pdf"}},
		{Metadata: nil},
		{Metadata: map[string]interface{}{"texto": 42}},
		{Metadata: map[string]interface{}{"texto": "último"}},
	}

	assert.Equal(t, "primero\n---\núltimo", AssembleContext(matches))
}

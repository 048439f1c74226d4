package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestDOCX builds a minimal valid DOCX archive in memory.
func createTestDOCX(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body>
</w:document>`)

	doc, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write(body.Bytes())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractText_TXT(t *testing.T) {
	texto, err := ExtractText("apuntes.txt", []byte("El contexto es el rey."))
	require.NoError(t, err)
	assert.Equal(t, "El contexto es el rey.", texto)
}

func TestExtractText_TXTInvalidUTF8(t *testing.T) {
	_, err := ExtractText("apuntes.txt", []byte{0xff, 0xfe, 0xfd})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtractText_UnsupportedExtension(t *testing.T) {
	_, err := ExtractText("malware.exe", []byte("whatever"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestExtractText_EmptyTXT(t *testing.T) {
	_, err := ExtractText("vacio.txt", []byte(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = ExtractText("espacios.txt", []byte("   \n\t  "))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtractText_DOCX(t *testing.T) {
	data := createTestDOCX(t, []string{"Primer párrafo.", "Segundo párrafo."})

	texto, err := ExtractText("informe.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Primer párrafo.\nSegundo párrafo.", texto)
}

func TestExtractText_EmptyDOCX(t *testing.T) {
	data := createTestDOCX(t, nil)

	_, err := ExtractText("vacio.docx", data)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtractText_CorruptDOCX(t *testing.T) {
	_, err := ExtractText("roto.docx", []byte("not a zip archive"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText("roto.pdf", []byte("%PDF-garbage"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtractThenChunk_ShortDocumentRoundTrip(t *testing.T) {
	frase := "El lenguaje limpio evita introducir las palabras del entrevistador."
	data := createTestDOCX(t, []string{frase})

	texto, err := ExtractText("entrevista.docx", data)
	require.NoError(t, err)
	require.Equal(t, frase, texto)

	chunks, err := NewChunker(DefaultChunkSize, DefaultChunkOverlap).Split("entrevista.docx", texto)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, frase, chunks[0].Text)
}

func TestExtractText_ExtensionCaseInsensitive(t *testing.T) {
	texto, err := ExtractText("NOTAS.TXT", []byte("mayúsculas"))
	require.NoError(t, err)
	assert.Equal(t, "mayúsculas", texto)
}

package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/docuask/docuask/models"
)

// DefaultTopK is how many chunks are retrieved per question.
const DefaultTopK = 10

// RAGService exposes the two pipeline operations consumed by the HTTP layer
// and the directory indexer.
type RAGService interface {
	AskQuestion(ctx context.Context, pregunta string) (*models.AskResult, error)
	IngestDocument(ctx context.Context, filename string, data []byte) (*models.IngestResult, error)
}

// Dependencies carries the external clients the pipeline needs. Construction
// failures are not fatal: they land in InitErr, and every operation
// short-circuits on it until the process is restarted with a fixed
// configuration.
type Dependencies struct {
	Embedder  Embedder
	Store     VectorStore
	Generator Generator
	InitErr   error
}

type ragServiceImpl struct {
	embedder  Embedder
	store     VectorStore
	generator Generator
	chunker   *Chunker
	initErr   error
	topK      int
}

// NewRAGService creates the pipeline orchestrator. The dependency state is
// read-only after this point and safe for concurrent requests.
func NewRAGService(deps Dependencies) RAGService {
	initErr := deps.InitErr
	if initErr == nil {
		if deps.Embedder == nil {
			initErr = ErrEmbeddingUnavailable
		} else if deps.Store == nil {
			initErr = ErrStoreUnavailable
		} else if deps.Generator == nil {
			initErr = ErrGenerationService
		}
	}
	return &ragServiceImpl{
		embedder:  deps.Embedder,
		store:     deps.Store,
		generator: deps.Generator,
		chunker:   NewChunker(DefaultChunkSize, DefaultChunkOverlap),
		initErr:   initErr,
		topK:      DefaultTopK,
	}
}

// AskQuestion runs validation, retrieval and generation for one question.
// A rejected question returns a ValidationError without touching any external
// service; a failed retrieval never reaches the generator.
func (r *ragServiceImpl) AskQuestion(ctx context.Context, pregunta string) (*models.AskResult, error) {
	if r.initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInitialized, r.initErr)
	}

	result := ValidateQuestion(pregunta)
	if !result.Valid {
		return nil, &ValidationError{Reason: result.Reason}
	}
	texto := result.Text

	start := time.Now()

	embedding, err := r.embedder.Embed(ctx, texto)
	if err != nil {
		return nil, err
	}

	matches, err := r.store.Query(ctx, embedding, r.topK)
	if err != nil {
		return nil, err
	}
	contexto := AssembleContext(matches)

	answer, err := r.generator.Generate(ctx, texto, contexto)
	if err != nil {
		return nil, err
	}

	elapsed := math.Round(time.Since(start).Seconds()*100) / 100
	log.Printf("SERVICE: Answered question in %.2fs (%d matches)", elapsed, len(matches))

	return &models.AskResult{Answer: answer, ElapsedSeconds: elapsed}, nil
}

// IngestDocument extracts, chunks, embeds and stores one document. Per-chunk
// failures are logged and skipped; the result reports how many chunks were
// attempted and stored and which positions failed.
func (r *ragServiceImpl) IngestDocument(ctx context.Context, filename string, data []byte) (*models.IngestResult, error) {
	if r.initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInitialized, r.initErr)
	}

	texto, err := ExtractText(filename, data)
	if err != nil {
		return nil, err
	}

	chunks, err := r.chunker.Split(filename, texto)
	if err != nil {
		return nil, err
	}
	log.Printf("SERVICE: Split '%s' into %d chunks.", filename, len(chunks))

	result := &models.IngestResult{Filename: filename, Total: len(chunks)}
	for _, chunk := range chunks {
		embedding, err := r.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			log.Printf("SERVICE: Error en chunk %d de '%s': %v", chunk.Position, filename, err)
			result.Failed = append(result.Failed, chunk.Position)
			continue
		}
		if err := r.store.Upsert(ctx, chunk, embedding); err != nil {
			log.Printf("SERVICE: Error en chunk %d de '%s': %v", chunk.Position, filename, err)
			result.Failed = append(result.Failed, chunk.Position)
			continue
		}
		result.Stored++
	}

	log.Printf("SERVICE: Stored %d/%d chunks for '%s'", result.Stored, result.Total, filename)
	return result, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"

	"github.com/docuask/docuask/models"
)

// VectorStore persists chunk vectors and answers top-k similarity queries.
// Records are written once and never updated or deleted.
type VectorStore interface {
	Upsert(ctx context.Context, chunk models.Chunk, vector []float32) error
	Query(ctx context.Context, vector []float32, topK int) ([]models.Match, error)
}

// ChromaStore implements VectorStore against a Chroma collection. The
// collection name plays the role of the namespace: unrelated data sets go to
// different collections.
type ChromaStore struct {
	collection chromago.Collection
	namespace  string
}

// NewChromaStore connects to the namespace's collection, creating it if it
// does not exist yet.
func NewChromaStore(client chromago.Client, namespace string) (*ChromaStore, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: no chroma client", ErrStoreUnavailable)
	}

	collection, err := client.GetOrCreateCollection(
		context.Background(),
		namespace,
		chromago.WithCollectionMetadataCreate(
			chromago.NewMetadata(
				chromago.NewStringAttribute("description", "document QA chunks"),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	log.Printf("STORE: Using collection '%s'", namespace)

	return &ChromaStore{collection: collection, namespace: namespace}, nil
}

// Upsert writes one chunk record: id, vector and the metadata mapping
// expected by the retrieval side (texto, fuente, posicion).
func (s *ChromaStore) Upsert(ctx context.Context, chunk models.Chunk, vector []float32) error {
	embedding := embeddings.NewEmbeddingFromFloat32(vector)
	metadata := chromago.NewDocumentMetadata(
		chromago.NewStringAttribute("texto", chunk.Text),
		chromago.NewStringAttribute("fuente", chunk.Source),
		chromago.NewIntAttribute("posicion", int64(chunk.Position)),
	)

	err := s.collection.Add(ctx,
		chromago.WithIDs(chromago.DocumentID(chunk.ID)),
		chromago.WithTexts(chunk.Text),
		chromago.WithEmbeddings(embedding),
		chromago.WithMetadatas(metadata),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreOperation, err)
	}
	return nil
}

// Query returns up to topK nearest records, descending by score. Score is
// derived from the cosine distance the store reports (1 - distance).
func (s *ChromaStore) Query(ctx context.Context, vector []float32, topK int) ([]models.Match, error) {
	embedding := embeddings.NewEmbeddingFromFloat32(vector)

	results, err := s.collection.Query(ctx,
		chromago.WithQueryEmbeddings(embedding),
		chromago.WithNResults(topK),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreOperation, err)
	}

	metadataGroups := results.GetMetadatasGroups()
	distanceGroups := results.GetDistancesGroups()
	if len(metadataGroups) == 0 {
		return nil, nil
	}

	matches := make([]models.Match, 0, len(metadataGroups[0]))
	for i, metadata := range metadataGroups[0] {
		match := models.Match{Metadata: metadataToMap(metadata)}
		if len(distanceGroups) > 0 && i < len(distanceGroups[0]) {
			match.Score = 1 - float64(distanceGroups[0][i])
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// metadataToMap converts a DocumentMetadata into a plain map. The metadata
// type has no public accessor for its values, so it goes through JSON.
func metadataToMap(metadata chromago.DocumentMetadata) map[string]interface{} {
	metadataMap := make(map[string]interface{})
	if metadata == nil {
		return metadataMap
	}
	jsonBytes, err := json.Marshal(metadata)
	if err != nil {
		log.Printf("WARN: could not marshal metadata: %v", err)
		return metadataMap
	}
	if err := json.Unmarshal(jsonBytes, &metadataMap); err != nil {
		log.Printf("WARN: could not unmarshal metadata: %v", err)
		return make(map[string]interface{})
	}
	return metadataMap
}

var _ VectorStore = (*ChromaStore)(nil)

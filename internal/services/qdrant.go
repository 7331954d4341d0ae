package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
)

// QdrantService maintains the document embedding index: one point per
// uploaded document, keyed by the document's UUID. The index is an
// advisory cache over immutable documents; the Postgres record stays the
// source of truth for text and metadata.
type QdrantService interface {
	InitCollection() error
	IndexDocument(ctx context.Context, docID string, docType string, filename string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, excludeDocID string, limit int) ([]IndexedDocument, error)
	DeleteDocument(ctx context.Context, docID string) error
}

type IndexedDocument struct {
	ID       string
	Score    float32
	DocType  string
	Filename string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string, vectorSize int) (QdrantService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// IndexDocument implements QdrantService. The point ID is the document
// UUID, so re-indexing the same document overwrites the previous vector.
func (q *qdrantService) IndexDocument(ctx context.Context, docID string, docType string, filename string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(docID),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id":   docID,
			"doc_type": docType,
			"filename": filename,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements QdrantService. docType narrows results to one
// document kind and excludeDocID keeps the query document out of its own
// result list.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, excludeDocID string, limit int) ([]IndexedDocument, error) {
	filter := &qdrant.Filter{}
	if docType != "" {
		filter.Must = []*qdrant.Condition{
			qdrant.NewMatch("doc_type", docType),
		}
	}
	if excludeDocID != "" {
		filter.MustNot = []*qdrant.Condition{
			qdrant.NewMatch("doc_id", excludeDocID),
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []IndexedDocument
	for _, point := range searchResult {
		payload := point.Payload

		result := IndexedDocument{
			Score: point.Score,
		}

		if docID, ok := payload["doc_id"]; ok {
			if val, ok := docID.GetKind().(*qdrant.Value_StringValue); ok {
				result.ID = val.StringValue
			}
		}

		if dtype, ok := payload["doc_type"]; ok {
			if val, ok := dtype.GetKind().(*qdrant.Value_StringValue); ok {
				result.DocType = val.StringValue
			}
		}

		if filename, ok := payload["filename"]; ok {
			if val, ok := filename.GetKind().(*qdrant.Value_StringValue); ok {
				result.Filename = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteDocument implements QdrantService.
func (q *qdrantService) DeleteDocument(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

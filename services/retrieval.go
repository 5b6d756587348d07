package services

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philippgille/chromem-go"

	"healthbot/models"
)

// Chunking parameters the document corpus was authored against.
const (
	chunkSize    = 1000
	chunkOverlap = 150
)

// Retriever supplies relevant context blocks for a query. Failures are
// the caller's to absorb; the chat pipeline treats them as no context.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// RAGService stores document chunks in an in-process chromem collection
// and answers similarity queries against it.
type RAGService struct {
	db          *chromem.DB
	collection  *chromem.Collection
	dataPath    string
	initialized bool
}

// NewRAGService creates a retrieval service over the given document
// directory. Call Initialize before indexing or searching.
func NewRAGService(dataPath string) *RAGService {
	return &RAGService{dataPath: dataPath}
}

// Initialize creates the chromem collection. With an OpenAI key the
// collection uses hosted embeddings, otherwise chromem's default.
func (r *RAGService) Initialize(openAIKey string) error {
	db := chromem.NewDB()

	var embeddingFunc chromem.EmbeddingFunc
	if openAIKey != "" {
		embeddingFunc = chromem.NewEmbeddingFuncOpenAI(openAIKey, chromem.EmbeddingModelOpenAI3Small)
	}

	collection, err := db.GetOrCreateCollection("health-docs", nil, embeddingFunc)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	r.db = db
	r.collection = collection
	r.initialized = true

	log.Printf("Retrieval service initialized, collection: health-docs")
	return nil
}

// IndexDocuments walks the data directory and adds chunked documents to
// the collection. A missing directory is not an error: the service just
// has nothing to retrieve.
func (r *RAGService) IndexDocuments() error {
	if !r.initialized {
		return fmt.Errorf("retrieval service not initialized")
	}
	if r.dataPath == "" {
		return fmt.Errorf("data path not set")
	}
	if _, err := os.Stat(r.dataPath); os.IsNotExist(err) {
		log.Printf("Data path %s does not exist, skipping document indexing", r.dataPath)
		return nil
	}

	var documents []models.Document

	err := filepath.WalkDir(r.dataPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			log.Printf("Skipping unsupported file type: %s", path)
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Failed to read %s: %v", path, err)
			return nil
		}

		chunks := chunkText(string(content), chunkSize, chunkOverlap)
		for i, chunk := range chunks {
			documents = append(documents, models.Document{
				ID:      fmt.Sprintf("%s_chunk_%d", strings.TrimSuffix(d.Name(), ext), i),
				Content: chunk,
				Source:  path,
				Metadata: map[string]string{
					"file_name":   d.Name(),
					"file_path":   path,
					"chunk_index": strconv.Itoa(i),
				},
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk data directory: %w", err)
	}

	for _, doc := range documents {
		err := r.collection.AddDocument(context.Background(), chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: doc.Metadata,
		})
		if err != nil {
			log.Printf("Failed to add document %s: %v", doc.ID, err)
			continue
		}
	}

	log.Printf("Indexed %d document chunks from %s", len(documents), r.dataPath)
	return nil
}

// Search returns the contents of up to k blocks most similar to the
// query, in similarity order.
func (r *RAGService) Search(ctx context.Context, query string, k int) ([]string, error) {
	if !r.initialized {
		return nil, fmt.Errorf("retrieval index not initialized")
	}

	// chromem rejects queries asking for more results than documents.
	if count := r.collection.Count(); count < k {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := r.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	blocks := make([]string, 0, len(results))
	for _, result := range results {
		blocks = append(blocks, result.Content)
	}
	return blocks, nil
}

// chunkText splits text into fixed-size chunks with overlap so section
// boundaries are less likely to be lost at chunk edges.
func chunkText(text string, size, overlap int) []string {
	if len(text) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for start := 0; ; start += step {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			return chunks
		}
		chunks = append(chunks, text[start:end])
	}
}

// Package vectorstore defines the index the retriever searches.
package vectorstore

import "medrag/internal/domain"

// Storage holds document vectors and supports similarity search.
type Storage = domain.VectorStore

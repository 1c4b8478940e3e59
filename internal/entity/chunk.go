package entity

// RetrievedChunk is a unit of text returned by the vector store together with
// its similarity score and source metadata. Chunks live only for the duration
// of a single request.
//
// Score semantics are provider specific; every vector-store connector must
// return scores where higher means more relevant, converting distance-like
// scales before handing chunks to the engine.
type RetrievedChunk struct {
	Content    string
	Score      float64
	SourceFile string
	PageLabel  string
}

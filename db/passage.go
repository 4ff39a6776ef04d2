package db

// Search index configuration for the passage collections. The indexes are
// created out-of-band; collections are assumed pre-populated.
const (
	TextSearchIndexName = "passage_text_index"
	VectorIndexName     = "passage_vector_index"
	VectorPath          = "embedding"
)

var TextSearchPaths = []string{"title", "content"}

// PassageModel is one commercial-district document passage.
type PassageModel struct {
	PassageID string `bson:"_id"`
	Title     string `bson:"title"`
	SourceURI string `bson:"sourceUri"`
	Gu        string `bson:"gu"`
	Dong      string `bson:"dong"`
	Content   string `bson:"content"`
}

func (m PassageModel) Id() string {
	return m.PassageID
}

func (m PassageModel) CollectionName() string {
	return "district_passages"
}

// PassageAnnModel carries the embedding for approximate-nearest-neighbour
// search over the same documents.
type PassageAnnModel struct {
	PassageID string    `bson:"_id"`
	Embedding []float32 `bson:"embedding"`
}

func (m PassageAnnModel) Id() string {
	return m.PassageID
}

func (m PassageAnnModel) CollectionName() string {
	return "district_passages_ann"
}

package search

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/embed"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/sanggwon-lab/market-rag/db"
	"github.com/sanggwon-lab/market-rag/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// search parameters.
const (
	rrfK               = 60  // “dampening” constant from the RRF paper
	textSearchWeight   = 1.0 // optional per-engine weights
	vectorSearchWeight = 1.0
	vecK               = 30 // # of hits to keep from each engine
	textK              = 30
)

// Retriever returns ranked passages for a query. The resolution engine
// treats any error as an empty result; callers get the error untouched.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]model.Passage, error)
}

// HybridRetriever fuses Atlas term search and vector search over the
// district-passage collections with reciprocal-rank fusion.
type HybridRetriever struct {
	embedder          embed.Embedder
	passageRepository odm.OdmCollectionInterface[db.PassageModel]
	vectorRepository  odm.OdmCollectionInterface[db.PassageAnnModel]
}

func NewHybridRetriever(passageRepository odm.OdmCollectionInterface[db.PassageModel], vectorRepository odm.OdmCollectionInterface[db.PassageAnnModel], embedder embed.Embedder) *HybridRetriever {
	return &HybridRetriever{
		passageRepository: passageRepository,
		vectorRepository:  vectorRepository,
		embedder:          embedder,
	}
}

func (s *HybridRetriever) Retrieve(ctx context.Context, query string, topK int) ([]model.Passage, error) {
	ranked, err := async.Await(s.hybridSearch(ctx, query, topK))
	if err != nil {
		return nil, err
	}

	passages := make([]model.Passage, 0, len(ranked))
	for _, doc := range ranked {
		passages = append(passages, model.Passage{
			Title:  doc.Title,
			Source: doc.SourceURI,
			Text:   doc.Content,
		})
	}
	return passages, nil
}

// Reciprocal-Rank Fusion: score(id) = Σ_e weight_e / (rrfK + rank_e(id)).
// Rank beats raw score when merging engines whose scores live on
// different scales; a tail hit contributes almost nothing, so noise from
// either engine barely moves the fused order.
func (s *HybridRetriever) hybridSearch(ctx context.Context, query string, topK int) <-chan async.Result[[]*db.PassageModel] {

	return async.Go(func() ([]*db.PassageModel, error) {
		// Fire the two independent searches in parallel.
		textTask := s.passageRepository.
			TermSearch(ctx, query, odm.TermSearchParams{
				IndexName: db.TextSearchIndexName,
				Path:      db.TextSearchPaths,
				Limit:     textK,
			})

		logger.Info("Getting embedding for query", zap.String("queryInput", query))
		emb, err := async.Await(s.embedder.GetEmbedding(ctx, query, embed.WithTask("retrieval.query")))
		if err != nil {
			return nil, status.Errorf(codes.Internal, "embed: %v", err)
		}

		vecTask := s.vectorRepository.
			VectorSearch(ctx, emb, odm.VectorSearchParams{
				IndexName:     db.VectorIndexName,
				Path:          db.VectorPath,
				K:             vecK,
				NumCandidates: 100,
			})

		// Convert each result list → id→rank (rank ∈ {1,2,…}). A failed
		// engine contributes an empty rank map; the other still counts.
		textRanks, cache, err := collectTextSearchRanks(textTask)
		if err != nil {
			logger.Error("text search failed", zap.Error(err))
		}

		vecRanks, err := collectVectorSearchRanks(vecTask)
		if err != nil {
			logger.Error("vector search failed", zap.Error(err))
		}

		ids := fuseRanks(textRanks, vecRanks, topK)
		return s.fetchPassagesByIds(ctx, cache, ids), nil
	})
}

// fuseRanks merges the per-engine rank maps with RRF and returns the
// top-limit ids, best first.
func fuseRanks(textRanks, vecRanks map[string]int, limit int) []string {
	combined := make(map[string]float64)
	for id, r := range textRanks {
		combined[id] = textSearchWeight / float64(rrfK+r)
	}
	for id, r := range vecRanks {
		combined[id] += vectorSearchWeight / float64(rrfK+r)
	}

	type pair struct {
		id    string
		score float64
	}

	// Keep the top-limit with a min-heap (higher RRF score = better).
	h := ds.NewMinHeap(func(a, b pair) bool { return a.score < b.score })
	for id, sc := range combined {
		h.Push(pair{id, sc})
		if h.Len() > limit {
			h.Pop()
		}
	}

	sorted := h.ToSortedSlice()
	ids := make([]string, len(sorted))
	for i, p := range sorted {
		ids[len(sorted)-1-i] = p.id // highest score first
	}
	return ids
}

// Returns id→rank (1-based) **and** a cache of the full passage docs.
func collectTextSearchRanks(
	task <-chan async.Result[[]odm.SearchHit[db.PassageModel]],
) (map[string]int, map[string]*db.PassageModel, error) {

	ranks := make(map[string]int) // id → rank
	cache := make(map[string]*db.PassageModel)

	hits, err := async.Await(task)
	if err != nil {
		return ranks, cache, status.Errorf(codes.Internal, "await text hits: %v", err)
	}

	for i, h := range hits {
		id := h.Doc.Id()
		if _, seen := ranks[id]; !seen { // keep first (best-ranked) hit
			ranks[id] = i + 1  // 1-based rank
			cache[id] = &h.Doc // stash full doc for later
		}
	}
	return ranks, cache, nil
}

// Returns id→rank (1-based) for vector search hits.
func collectVectorSearchRanks(
	task <-chan async.Result[[]odm.SearchHit[db.PassageAnnModel]],
) (map[string]int, error) {

	ranks := make(map[string]int)

	hits, err := async.Await(task)
	if err != nil {
		return ranks, status.Errorf(codes.Internal, "await vector hits: %v", err)
	}

	for i, h := range hits {
		id := h.Doc.Id()
		if _, seen := ranks[id]; !seen {
			ranks[id] = i + 1
		}
	}
	return ranks, nil
}

func (s *HybridRetriever) fetchPassagesByIds(ctx context.Context, cache map[string]*db.PassageModel, rankedIds []string) []*db.PassageModel {

	if len(rankedIds) == 0 {
		return nil
	}

	passageByID := make(map[string]*db.PassageModel, len(rankedIds))
	var missing []string

	for _, id := range rankedIds {
		if p, ok := cache[id]; ok {
			passageByID[id] = p
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		// fetch all missing in one DB round-trip
		dbPassages, err := async.Await(
			s.passageRepository.Find(ctx, bson.M{"_id": bson.M{"$in": missing}}, nil, 0, 0),
		)
		if err != nil {
			logger.Error("Failed to fetch passages from database", zap.Error(err))
			// we still return whatever we already have
		}
		for _, p := range dbPassages {
			passageByID[p.PassageID] = &p
		}
	}

	// assemble slice in ranking order
	ordered := make([]*db.PassageModel, 0, len(rankedIds))
	for _, id := range rankedIds {
		if p, ok := passageByID[id]; ok {
			ordered = append(ordered, p)
		} else {
			logger.Info("passage id missing after lookup", zap.String("id", id))
		}
	}

	return ordered
}

package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/crazyeights/internal/logging"
	"github.com/fadedpez/crazyeights/pkg/entities"
)

// gameMapping is the mapping of every game results index
const gameMapping = `{
	"mappings": {
		"properties": {
			"game_id": { "type": "keyword" },
			"game_type": { "type": "keyword" },
			"channel_id": { "type": "keyword" },
			"player_id": { "type": "keyword" },
			"outcome": { "type": "keyword" },
			"moves": { "type": "integer" },
			"started_at": { "type": "date" },
			"completed_at": { "type": "date" }
		}
	}
}`

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL            string
	Username       string
	Password       string
	IndexPrefix    string
	RotationPeriod time.Duration // How often to start a new results index

	// Transport replaces the HTTP transport of the client, if set
	Transport http.RoundTripper
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:            "http://localhost:9200",
		IndexPrefix:    "crazyeights",
		RotationPeriod: 30 * 24 * time.Hour, // 30 days (monthly)
	}
}

// ElasticsearchRepository indexes game results into Elasticsearch on top of a
// base repository. The base repository stays the source of truth for
// records; Elasticsearch holds a searchable copy in monthly indices.
type ElasticsearchRepository struct {
	baseRepo         Repository
	client           *elasticsearch.Client
	config           *ElasticsearchConfig
	indexPrefix      string
	currentGameIndex string
	now              func() time.Time
	log              *logging.Logger
}

// NewElasticsearchRepository creates a new Elasticsearch repository
func NewElasticsearchRepository(baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	// Configure the Elasticsearch client
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
		Transport: config.Transport,
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	// Create the client
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	// Set default index prefix if not provided
	if config.IndexPrefix == "" {
		config.IndexPrefix = "crazyeights"
	}

	if config.RotationPeriod == 0 {
		config.RotationPeriod = 30 * 24 * time.Hour // 30 days default
	}

	// Create repository
	repo := &ElasticsearchRepository{
		baseRepo:    baseRepo,
		client:      client,
		config:      config,
		indexPrefix: config.IndexPrefix,
		now:         time.Now,
		log:         logging.Default.WithField("component", "elasticsearch"),
	}

	// Initialize indices
	if err := repo.rotateIndices(context.Background()); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

// indexFor returns the name of the results index covering t
func (r *ElasticsearchRepository) indexFor(t time.Time) string {
	return r.indexPrefix + "_games_" + t.UTC().Format("2006-01")
}

// rotateIndices makes sure the index for the current month exists and is
// the one new results are written to
func (r *ElasticsearchRepository) rotateIndices(ctx context.Context) error {
	index := r.indexFor(r.now())
	if index == r.currentGameIndex {
		return nil
	}

	if err := r.ensureIndex(ctx, index); err != nil {
		return err
	}

	if r.currentGameIndex != "" {
		r.log.Info("Rotated game index from %s to %s", r.currentGameIndex, index)
	}
	r.currentGameIndex = index
	return nil
}

// ensureIndex creates index with the game mapping unless it already exists
func (r *ElasticsearchRepository) ensureIndex(ctx context.Context, index string) error {
	res, err := r.client.Indices.Exists([]string{index}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if index %s exists: %w", index, err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: index,
		Body:  bytes.NewReader([]byte(gameMapping)),
	}

	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index %s: %s", index, res.String())
	}

	r.log.Info("Created game index %s", index)
	return nil
}

// SaveGameResult saves to the base repository, then indexes the result
func (r *ElasticsearchRepository) SaveGameResult(ctx context.Context, result *entities.GameResult) error {
	// First save to the base repository
	if err := r.baseRepo.SaveGameResult(ctx, result); err != nil {
		return fmt.Errorf("error saving game result to base repository: %w", err)
	}

	// Then index in Elasticsearch
	return r.IndexGameResult(ctx, result)
}

// IndexGameResult writes result to the current index, keyed by game ID
func (r *ElasticsearchRepository) IndexGameResult(ctx context.Context, result *entities.GameResult) error {
	// First check if we need to rotate indices
	if err := r.rotateIndices(ctx); err != nil {
		return fmt.Errorf("error rotating indices: %w", err)
	}

	// Convert the game result to JSON
	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("error marshaling game result: %w", err)
	}

	// Index the game result
	res, err := r.client.Index(
		r.currentGameIndex,
		bytes.NewReader(jsonData),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(result.GameID),
		r.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("error indexing game result: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing game result: %s", res.String())
	}

	return nil
}

// GetPlayerResults delegates to the base repository
func (r *ElasticsearchRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.GameResult, error) {
	return r.baseRepo.GetPlayerResults(ctx, playerID, limit)
}

// GetChannelResults searches the indexed results of a channel, newest first
func (r *ElasticsearchRepository) GetChannelResults(ctx context.Context, channelID string, limit int) ([]*entities.GameResult, error) {
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"channel_id": channelID},
		},
		"sort": []interface{}{
			map[string]interface{}{"completed_at": map[string]interface{}{"order": "desc"}},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("error building channel query: %w", err)
	}

	// Search for game results
	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.indexPrefix+"_games_*"),
		r.client.Search.WithBody(bytes.NewReader(body)),
		r.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching for channel results: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching for channel results: %s", res.String())
	}

	// Parse the response
	var result struct {
		Hits struct {
			Hits []struct {
				Source entities.GameResult `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing channel results: %w", err)
	}

	resultsList := make([]*entities.GameResult, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		gameResult := hit.Source
		resultsList = append(resultsList, &gameResult)
	}

	return resultsList, nil
}

// GetPlayerRecord delegates to the base repository
func (r *ElasticsearchRepository) GetPlayerRecord(ctx context.Context, playerID string) (*entities.PlayerRecord, error) {
	return r.baseRepo.GetPlayerRecord(ctx, playerID)
}

// GetAllPlayerRecords delegates to the base repository
func (r *ElasticsearchRepository) GetAllPlayerRecords(ctx context.Context) ([]*entities.PlayerRecord, error) {
	return r.baseRepo.GetAllPlayerRecords(ctx)
}

// PruneResults prunes the base repository, then deletes the same results
// from every index. The count is the base repository's.
func (r *ElasticsearchRepository) PruneResults(ctx context.Context, before time.Time) (int64, error) {
	removed, err := r.baseRepo.PruneResults(ctx, before)
	if err != nil {
		return 0, err
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"range": map[string]interface{}{
				"completed_at": map[string]interface{}{"lt": before.UTC().Format(time.RFC3339)},
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return removed, fmt.Errorf("error building prune query: %w", err)
	}

	res, err := r.client.DeleteByQuery(
		[]string{r.indexPrefix + "_games_*"},
		bytes.NewReader(body),
		r.client.DeleteByQuery.WithContext(ctx),
	)
	if err != nil {
		return removed, fmt.Errorf("error pruning indexed results: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return removed, fmt.Errorf("error pruning indexed results: %s", res.String())
	}

	var deleted struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&deleted); err == nil {
		r.log.Info("Pruned %d indexed results completed before %s", deleted.Deleted, before.Format(time.RFC3339))
	}

	return removed, nil
}

// GetIndices returns the names of indices that match the given pattern
func (r *ElasticsearchRepository) GetIndices(ctx context.Context, pattern string) ([]string, error) {
	res, err := r.client.Indices.Get(
		[]string{pattern},
		r.client.Indices.Get.WithContext(ctx),
		r.client.Indices.Get.WithExpandWildcards("open"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get indices: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error getting indices: %s", res.String())
	}

	// Parse the response to get the index names
	var indices map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&indices); err != nil {
		return nil, fmt.Errorf("error parsing indices response: %w", err)
	}

	// Extract the index names from the map keys
	indexNames := make([]string, 0, len(indices))
	for name := range indices {
		indexNames = append(indexNames, name)
	}
	sort.Strings(indexNames)

	return indexNames, nil
}

// RotateIndices starts a new index when the month has changed
func (r *ElasticsearchRepository) RotateIndices(ctx context.Context) error {
	return r.rotateIndices(ctx)
}

// CurrentIndex returns the index new results are written to
func (r *ElasticsearchRepository) CurrentIndex() string {
	return r.currentGameIndex
}

// GetConfig returns the repository configuration
func (r *ElasticsearchRepository) GetConfig() ElasticsearchConfig {
	return *r.config
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/vertexai/genai"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	genai_std "google.golang.org/genai"

	"style-outfits/internal/domain/repositories"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// clientContext detaches client construction from the first caller's deadline. Cached
// clients and their token sources outlive that call.
func clientContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

type vertexAIClientPool struct {
	config *repositories.AIClientConfig
	client *genai.Client
	mutex  sync.RWMutex
}

func newVertexAIClientPool(config *repositories.AIClientConfig) repositories.VertexAIClientPool {
	return &vertexAIClientPool{
		config: config,
	}
}

func (p *vertexAIClientPool) GetVertexAIClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// double-checked
	if p.client != nil {
		return p.client, nil
	}

	if p.config.ProjectID == "" {
		return nil, errors.New("vertex AI requires a project ID")
	}

	ctx = clientContext(ctx)

	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}

	endpoint := fmt.Sprintf("%s-aiplatform.googleapis.com:443", p.config.Location)
	client, err := genai.NewClient(ctx, p.config.ProjectID, p.config.Location,
		option.WithEndpoint(endpoint),
		option.WithCredentials(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create VertexAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *vertexAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		err := p.client.Close()
		p.client = nil
		return err
	}
	return nil
}

type genAIClientPool struct {
	config *repositories.AIClientConfig
	client *genai_std.Client
	mutex  sync.RWMutex
}

func newGenAIClientPool(config *repositories.AIClientConfig) repositories.GenAIClientPool {
	return &genAIClientPool{
		config: config,
	}
}

func (p *genAIClientPool) GetGenAIClient(ctx context.Context) (*genai_std.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	if p.config.GeminiAPIKey == "" {
		return nil, errors.New("gemini API key is not configured")
	}

	client, err := genai_std.NewClient(clientContext(ctx), &genai_std.ClientConfig{
		APIKey:  p.config.GeminiAPIKey,
		Backend: genai_std.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

// Close drops the client; the GenAI client holds no resources of its own.
func (p *genAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.client = nil
	return nil
}

type clientPoolService struct {
	config       *repositories.AIClientConfig
	vertexAIPool repositories.VertexAIClientPool
	genAIPool    repositories.GenAIClientPool
}

// NewClientPoolService creates the pools without dialing; clients are built on first use.
func NewClientPoolService(config repositories.AIClientConfig) repositories.ClientPoolService {
	cfg := &config

	return &clientPoolService{
		config:       cfg,
		vertexAIPool: newVertexAIClientPool(cfg),
		genAIPool:    newGenAIClientPool(cfg),
	}
}

func (s *clientPoolService) VertexAIPool() repositories.VertexAIClientPool {
	return s.vertexAIPool
}

func (s *clientPoolService) GenAIPool() repositories.GenAIClientPool {
	return s.genAIPool
}

func (s *clientPoolService) Config() *repositories.AIClientConfig {
	return s.config
}

func (s *clientPoolService) Close() error {
	var errs []error

	if err := s.vertexAIPool.Close(); err != nil {
		errs = append(errs, fmt.Errorf("VertexAI pool close error: %w", err))
	}

	if err := s.genAIPool.Close(); err != nil {
		errs = append(errs, fmt.Errorf("GenAI pool close error: %w", err))
	}

	return errors.Join(errs...)
}

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type bedrockConfig struct {
	Region    string `json:"region"`
	SecretID  string `json:"secret_id"`
	SecretKey string `json:"secret_key"`
}

// bedrockProvider invokes Amazon Bedrock models: Anthropic text-completion
// models for generation and Titan for embeddings.
type bedrockProvider struct {
	client *bedrockruntime.Client
}

type bedrockClaudeRequest struct {
	Prompt            string  `json:"prompt"`
	MaxTokensToSample int     `json:"max_tokens_to_sample"`
	Temperature       float64 `json:"temperature,omitempty"`
}

type bedrockClaudeResponse struct {
	Completion string `json:"completion"`
}

type bedrockTitanEmbedRequest struct {
	InputText string `json:"inputText"`
}

type bedrockTitanEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (p *bedrockProvider) Name() string {
	return "bedrock"
}

func (p *bedrockProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	// Anthropic completion models require the Human/Assistant framing.
	body, err := json.Marshal(bedrockClaudeRequest{
		Prompt:            "\n\nHuman: " + prompt + "\n\nAssistant:",
		MaxTokensToSample: 2048,
	})
	if err != nil {
		return "", err
	}
	raw, err := p.invoke(ctx, model, body)
	if err != nil {
		return "", err
	}
	var out bedrockClaudeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode bedrock response: %w", err)
	}
	text := strings.TrimSpace(out.Completion)
	if text == "" {
		return "", fmt.Errorf("bedrock response has no completion")
	}
	return text, nil
}

func (p *bedrockProvider) Embed(ctx context.Context, model string, text string) ([]float32, error) {
	body, err := json.Marshal(bedrockTitanEmbedRequest{InputText: text})
	if err != nil {
		return nil, err
	}
	raw, err := p.invoke(ctx, model, body)
	if err != nil {
		return nil, err
	}
	var out bedrockTitanEmbedResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode bedrock response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("bedrock response has no embedding")
	}
	return out.Embedding, nil
}

func (p *bedrockProvider) invoke(ctx context.Context, model string, body []byte) ([]byte, error) {
	out, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

func newBedrock(args interface{}) (*bedrockProvider, error) {
	cfg := &bedrockConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.SecretID != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SecretID, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &bedrockProvider{client: bedrockruntime.NewFromConfig(awsCfg)}, nil
}

func init() {
	Register("bedrock", func(args interface{}) (IGenerateProvider, error) {
		return newBedrock(args)
	})
	RegisterEmbed("bedrock", func(args interface{}) (IEmbedProvider, error) {
		return newBedrock(args)
	})
}

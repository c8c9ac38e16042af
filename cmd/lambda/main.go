package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"insurance-agent/handler"
	"insurance-agent/internal/integrations/paramstore"
	"insurance-agent/internal/knowledge"
	"insurance-agent/internal/repository"
	"insurance-agent/internal/respond"
	"insurance-agent/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	stateTable := mustEnv("STATE_TABLE")
	knowledgeParam := os.Getenv("KNOWLEDGE_PARAM")
	maxHistoryItems := envInt("MAX_HISTORY_ITEMS", 50)
	maxQuestionLen := envInt("MAX_QUESTION_LENGTH", 300)

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Knowledge base ----
	base := knowledge.Default()
	if knowledgeParam != "" {
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		doc, found, err := ssmClient.Optional(ctx, knowledgeParam)
		if err != nil {
			slog.Error("failed to fetch knowledge parameter", "param", knowledgeParam, "err", err)
			os.Exit(1)
		}
		if found {
			base, err = knowledge.Parse([]byte(doc))
			if err != nil {
				slog.Error("invalid knowledge document", "param", knowledgeParam, "err", err)
				os.Exit(1)
			}
			slog.Info("knowledge base loaded from parameter store", "param", knowledgeParam)
		}
	}

	responder, err := respond.New(base)
	if err != nil {
		slog.Error("failed to create responder", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	dynamoClient := awsdynamodb.NewFromConfig(cfg)
	stateClient, err := repository.New(dynamoClient, stateTable)
	if err != nil {
		slog.Error("failed to create state client", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	askService, err := usecase.NewAskService(responder, stateClient, maxHistoryItems, maxQuestionLen)
	if err != nil {
		slog.Error("failed to create ask service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(askService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

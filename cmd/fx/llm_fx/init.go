package llm_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"studymate/pkg/utils"
)

var Module = fx.Provide(
	provideChatClient, provideEmbeddingClient)

func provideChatClient() utils.ChatClientInterface {
	client, err := utils.NewChatClient(
		os.Getenv("LLM_PROVIDER"),
		os.Getenv("LLM_API_KEY"),
		os.Getenv("LLM_MODEL"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize chat client: %v", err)
	}
	return client
}

func provideEmbeddingClient() utils.EmbeddingClientInterface {
	return utils.NewOpenAIEmbeddingClient(os.Getenv("OPENAI_API_KEY"))
}

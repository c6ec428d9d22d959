package main

import (
	"log"

	"enside/madeiras-ops-worker/internal/api"
	"enside/madeiras-ops-worker/internal/api/controllers"
	"enside/madeiras-ops-worker/internal/config"
	"enside/madeiras-ops-worker/internal/handlers"
	"enside/madeiras-ops-worker/internal/services"

	_ "enside/madeiras-ops-worker/docs" // Swagger generated docs
)

// @title Madeiras Ops Worker API
// @version 1.0
// @description Contact ingestion and WhatsApp broadcast service for a wood products operation: spreadsheet sync, contact classification and paced transmissions through the Evolution API gateway.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @schemes http https
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Contact base shared by sync and broadcast
	store := services.NewContactStore()

	// Spreadsheet ingestion
	sheetsHandler := handlers.NewSheetsHandler(cfg.SheetID)

	// Initialize SchemaMapperHandler if Google API key is configured
	if cfg.GoogleAPIKey != "" {
		schemaMapper, err := handlers.NewSchemaMapperHandler(handlers.SchemaMapperConfig{
			APIKey: cfg.GoogleAPIKey,
			Model:  cfg.GeminiModel,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize SchemaMapperHandler: %v", err)
			log.Printf("Continuing with keyword header heuristics only")
		} else {
			sheetsHandler.SetSchemaMapper(schemaMapper)
			log.Printf("SchemaMapperHandler initialized - AI column mapping enabled")
		}
	} else {
		log.Printf("GOOGLE_API_KEY not set - AI column mapping disabled")
	}

	// Initialize SupabaseHandler if credentials are configured
	var supabaseHandler *handlers.SupabaseHandler
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		var err error
		supabaseHandler, err = handlers.NewSupabaseHandler(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Printf("Warning: Failed to initialize SupabaseHandler: %v", err)
			log.Printf("Continuing without persistence")
		} else {
			log.Printf("SupabaseHandler initialized - templates, lists and events enabled")
			if err := supabaseHandler.EnsureDefaultTemplates(); err != nil {
				log.Printf("Warning: Failed to seed default templates: %v", err)
			}
		}
	} else {
		log.Printf("SUPABASE_URL or SUPABASE_SECRET_KEY not set - persistence disabled")
	}

	contactsController := controllers.NewContactsController(sheetsHandler, store)
	if supabaseHandler != nil {
		contactsController.SetSupabase(supabaseHandler)
	}

	// Initialize EvolutionHandler if the gateway is configured
	var instanceController *controllers.InstanceController
	var broadcastController *controllers.BroadcastController
	if cfg.EvolutionBaseURL != "" && cfg.EvolutionAPIKey != "" {
		evolutionHandler, err := handlers.NewEvolutionHandler(handlers.EvolutionConfig{
			BaseURL:  cfg.EvolutionBaseURL,
			APIKey:   cfg.EvolutionAPIKey,
			Instance: cfg.EvolutionInstance,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize EvolutionHandler: %v", err)
			log.Printf("Continuing without WhatsApp functionality")
		} else {
			instanceController = controllers.NewInstanceController(evolutionHandler, store)

			broadcastProcessor := services.NewBroadcastProcessor(evolutionHandler, cfg.BroadcastMinDelay, cfg.BroadcastMaxDelay)
			if supabaseHandler != nil {
				broadcastProcessor.SetSupabase(supabaseHandler)
			}
			broadcastController = controllers.NewBroadcastController(broadcastProcessor, store)
			if supabaseHandler != nil {
				broadcastController.SetSupabase(supabaseHandler)
			}
			log.Printf("EvolutionHandler initialized - instance and broadcast endpoints enabled")
		}
	} else {
		log.Printf("EVOLUTION_BASE_URL or EVOLUTION_API_KEY not set - WhatsApp functionality disabled")
	}

	// Initialize TemplatesController if Supabase is configured
	var templatesController *controllers.TemplatesController
	if supabaseHandler != nil {
		templatesController = controllers.NewTemplatesController(supabaseHandler)
		log.Printf("TemplatesController initialized - template and list endpoints enabled")
	} else {
		log.Printf("TemplatesController not initialized - template endpoints disabled (requires Supabase)")
	}

	// Initialize AssistantHandler if Google API key is configured
	var assistantController *controllers.AssistantController
	if cfg.GoogleAPIKey != "" {
		assistantHandler, err := handlers.NewAssistantHandler(handlers.AssistantConfig{
			APIKey: cfg.GoogleAPIKey,
			Model:  cfg.GeminiModel,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize AssistantHandler: %v", err)
			log.Printf("Continuing without the operations assistant")
		} else {
			assistantController = controllers.NewAssistantController(assistantHandler)
			log.Printf("AssistantHandler initialized - assistant endpoint enabled")
		}
	} else {
		log.Printf("GOOGLE_API_KEY not set - assistant endpoint disabled")
	}

	// Setup router
	router := api.NewRouter(api.Controllers{
		Contacts:  contactsController,
		Instance:  instanceController,
		Broadcast: broadcastController,
		Templates: templatesController,
		Assistant: assistantController,
	})

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

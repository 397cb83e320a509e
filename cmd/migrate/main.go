package main

import (
	"log"
	"os"

	"ai-deepsearch-be/internal/model"
	"ai-deepsearch-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions (GORM AutoMigrate doesn't handle these)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate Models
	log.Println("Step 2: Running AutoMigrate...")

	if err := db.AutoMigrate(&model.KnowledgeDocument{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Indexes for the hybrid retrieval paths
	log.Println("Step 3: Creating Search Indexes...")

	postMigrationSQL := []string{
		// Approximate KNN over the embedding column
		`CREATE INDEX IF NOT EXISTS idx_knowledge_documents_embedding
		 ON knowledge_documents USING ivfflat (embedding_value vector_cosine_ops) WITH (lists = 100);`,

		// Full-text index matching the 'simple' config used at query time
		`CREATE INDEX IF NOT EXISTS idx_knowledge_documents_content_fts
		 ON knowledge_documents USING gin (to_tsvector('simple', content));`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}

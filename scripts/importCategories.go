package main

import (
	"encoding/csv"
	"etutor/config"
	"etutor/database"
	"etutor/models"
	"log"
	"os"
	"strings"
)

// Bulk-imports tutorial categories from categories.csv. Expected headers:
// name, name_amharic, description. Existing categories (matched by name)
// are updated in place so the import can be re-run safely.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("categories.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for _, row := range records[1:] {
		category := models.Category{
			Name:        getField(row, headerIndex, "name"),
			NameAmharic: getField(row, headerIndex, "name_amharic"),
			Description: getField(row, headerIndex, "description"),
		}

		if category.Name == "" {
			skipped++
			continue
		}

		var existing models.Category
		result := database.Database.Db.Where("name = ?", category.Name).First(&existing)

		if result.Error != nil {
			if err := database.Database.Db.Create(&category).Error; err != nil {
				log.Printf("Error inserting category %s: %v", category.Name, err)
				continue
			}
			inserted++
		} else {
			existing.NameAmharic = category.NameAmharic
			existing.Description = category.Description

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating category %s: %v", category.Name, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

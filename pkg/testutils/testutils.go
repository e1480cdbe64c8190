package testutils

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

var (
	catalogHeader = []string{"codigo", "producto", "descripcion", "costo", "vencimiento"}
	drugs         = []string{"Ibuprofeno", "Paracetamol", "Amoxicilina", "Omeprazol", "Loratadina", "Diclofenac"}
	doses         = []string{"200 mg", "400 mg", "500 mg", "600 mg", "1 g"}
)

// GenerateTestData writes a catalog CSV with lines products into targetDir and returns its path.
func GenerateTestData(lines int, targetDir string) string {
	now := time.Now()
	fileName := filepath.Join(targetDir, fmt.Sprintf("%d_test_catalog.csv", now.UnixNano()))
	file, err := os.Create(fileName)
	if err != nil {
		log.Fatalf("can't create file %s: (%s)", fileName, err.Error())
	}
	r := rand.New(rand.NewSource(now.UnixNano()))
	writer := csv.NewWriter(file)
	if err = writer.Write(catalogHeader); err != nil {
		log.Fatalf("can't write header to file %s: (%s)", fileName, err.Error())
	}
	for i := 0; i < lines; i++ {
		id, err := uuid.NewUUID()
		if err != nil {
			log.Fatalf("can't create id %s: (%s)", id, err.Error())
		}

		name := fmt.Sprintf("%s %s", drugs[r.Intn(len(drugs))], doses[r.Intn(len(doses))])
		description := fmt.Sprintf("x %d comprimidos", (r.Intn(5)+1)*10)
		cost := fmt.Sprintf("%d.%02d", r.Intn(5000)+1, r.Intn(100))
		expiration := now.AddDate(0, r.Intn(24)+1, 0).Format("2006-01-02")

		line := []string{id.String(), name, description, cost, expiration}

		err = writer.Write(line)
		if err != nil {
			log.Fatalf("can't write line=%s to file %s: (%s)", line, fileName, err.Error())
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Fatalf("can't flush file %s: (%s)", fileName, err.Error())
	}
	if err := file.Close(); err != nil {
		log.Fatalf("can't close file %s: (%s)", fileName, err.Error())
	}
	return fileName
}

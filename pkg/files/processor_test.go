package files

import (
	"context"
	"os"
	"path/filepath"
	"pharmacy/pkg/config"
	"pharmacy/pkg/models"
	"pharmacy/pkg/pricelist"
	"pharmacy/pkg/repository"
	"pharmacy/pkg/testutils"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestProcessor(t *testing.T) (*processor, chan bool) {
	dir := t.TempDir()

	queue := NewQueue(0)

	wg := &sync.WaitGroup{}
	log := zap.NewNop()

	cfg := &config.Watcher{
		FilesDir:           filepath.Join(dir, "incoming"),
		FilesProcessedDir:  filepath.Join(dir, "processed"),
		FilesErrorsDir:     filepath.Join(dir, "errors"),
		WorkersCount:       2,
		DataBatchSize:      1,
		DataBatchQueueSize: 1,
	}
	assert.NoError(t, os.MkdirAll(cfg.FilesDir, 0o755))

	ctx := context.Background()

	ctrl := gomock.NewController(t)

	repo := repository.NewMockProducts(ctrl)

	stop := make(chan bool)

	prcssr := NewProcessor(ctx, wg, cfg, queue, pricelist.NewReader(log, nil), repo, log, stop)

	p := prcssr.(*processor)
	return p, stop
}

func newTestFile(t *testing.T, p *processor, lines int) (File, []*models.Product) {
	path := testutils.GenerateTestData(lines, p.config.FilesDir)
	file := File{Path: path, Name: filepath.Base(path)}

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()
	res, err := p.reader.ReadCSV(f)
	assert.NoError(t, err)
	assert.Len(t, res.Products, lines)

	return file, res.Products
}

func newTestProducts(n int) []*models.Product {
	products := make([]*models.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, &models.Product{
			Code: string(rune('a' + i)),
			Name: "product",
			Cost: decimal.NewFromInt(int64(i)),
		})
	}
	return products
}

func TestBatches(t *testing.T) {
	products := newTestProducts(5)

	assert.Nil(t, batches(nil, 2))
	assert.Equal(t, [][]*models.Product{products[0:2], products[2:4], products[4:5]}, batches(products, 2))
	assert.Equal(t, [][]*models.Product{products}, batches(products, 5))
	assert.Equal(t, [][]*models.Product{products}, batches(products, 0))
}

func TestProcessor_ReadFile(t *testing.T) {
	prcssr, _ := newTestProcessor(t)
	data := prcssr.data

	file, products := newTestFile(t, prcssr, 2)

	prcssr.wgRead.Add(1)
	go prcssr.readFile(file)

	assert.Equal(t, []*models.Product{products[0]}, <-data)
	assert.Equal(t, []*models.Product{products[1]}, <-data)

	prcssr.wgRead.Wait()

	_, err := os.Stat(file.Path)
	assert.Error(t, err)
	_, err = os.Stat(filepath.Join(prcssr.config.FilesProcessedDir, file.Name))
	assert.NoError(t, err)
}

func TestProcessor_ReadFile_Broken(t *testing.T) {
	prcssr, _ := newTestProcessor(t)

	path := filepath.Join(prcssr.config.FilesDir, "1_broken.xlsx")
	assert.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))
	file := File{Path: path, Name: "1_broken.xlsx"}

	prcssr.wgRead.Add(1)
	prcssr.readFile(file)

	assert.Len(t, prcssr.data, 0)
	_, err := os.Stat(filepath.Join(prcssr.config.FilesErrorsDir, file.Name))
	assert.NoError(t, err)
}

func TestProcessor_SaveProducts(t *testing.T) {
	prcssr, _ := newTestProcessor(t)

	data := prcssr.data
	repo := prcssr.repo.(*repository.MockProducts)

	products := newTestProducts(2)

	prcssr.wgWrite.Add(1)
	go prcssr.saveProducts()

	repo.EXPECT().CreateMany(prcssr.ctx, products[0:1]).Return(nil)
	repo.EXPECT().CreateMany(prcssr.ctx, products[1:2]).Return(nil)

	data <- products[0:1]
	data <- products[1:2]

	close(data)

	prcssr.wgWrite.Wait()
}

func TestProcessor_Process(t *testing.T) {
	prcssr, stop := newTestProcessor(t)

	wg := prcssr.wg

	queue := prcssr.queue
	repo := prcssr.repo.(*repository.MockProducts)

	file, products := newTestFile(t, prcssr, 2)

	repo.EXPECT().CreateMany(prcssr.ctx, []*models.Product{products[0]}).Return(nil)
	repo.EXPECT().CreateMany(prcssr.ctx, []*models.Product{products[1]}).Return(nil)

	wg.Add(1)
	go prcssr.Process()

	err := queue.Put(file)
	assert.NoError(t, err)

	queue.Close()
	stop <- true
	wg.Wait()

	_, err = os.Stat(filepath.Join(prcssr.config.FilesProcessedDir, file.Name))
	assert.NoError(t, err)
}

package files

import (
	"context"
	"os"
	"pharmacy/pkg/config"
	"pharmacy/pkg/models"
	"pharmacy/pkg/pricelist"
	"pharmacy/pkg/repository"
	"sync"

	"go.uber.org/zap"
)

type (
	Processor interface {
		Process()
	}

	processor struct {
		ctx     context.Context
		wg      *sync.WaitGroup
		wgRead  *sync.WaitGroup
		wgWrite *sync.WaitGroup
		config  *config.Watcher
		data    chan []*models.Product
		queue   *Queue
		reader  *pricelist.Reader
		repo    repository.Products
		logger  *zap.Logger
		stop    <-chan bool
	}
)

func NewProcessor(
	ctx context.Context,
	wg *sync.WaitGroup,
	config *config.Watcher,
	queue *Queue,
	reader *pricelist.Reader,
	repo repository.Products,
	logger *zap.Logger,
	stop <-chan bool,
) Processor {
	log := logger.Named("FileProcessor")
	wgRead := &sync.WaitGroup{}
	wgWrite := &sync.WaitGroup{}
	p := &processor{
		wg:      wg,
		wgRead:  wgRead,
		wgWrite: wgWrite,
		ctx:     ctx,
		config:  config,
		data:    make(chan []*models.Product, config.DataBatchQueueSize),
		queue:   queue,
		reader:  reader,
		repo:    repo,
		logger:  log,
		stop:    stop,
	}
	return p
}

// Process reads queued files and stores their products until stop.
// The queue must be closed before stop is sent.
func (p *processor) Process() {
	defer p.wg.Done()
	p.logger.Sugar().Info("start processing files")
	p.wgRead.Add(1)
	go p.readFiles()
	for i := 0; i < p.config.WorkersCount; i++ {
		p.wgWrite.Add(1)
		go p.saveProducts()
	}
	<-p.stop
	p.logger.Sugar().Info("stop processing files")
	p.wgRead.Wait()
	close(p.data)
	p.wgWrite.Wait()
}

func (p *processor) saveProducts() {
	defer p.wgWrite.Done()
	p.logger.Sugar().Info("start processing worker")
	for products := range p.data {
		err := p.repo.CreateMany(p.ctx, products)
		if err != nil {
			p.logger.Sugar().Errorf("worker unable to store %d products: (%s)", len(products), err.Error())
		}
	}
	p.logger.Sugar().Info("stop processing worker")
}

func (p *processor) readFiles() {
	defer p.wgRead.Done()
	p.logger.Sugar().Info("start reading files")
	for file := range p.queue.Files() {
		p.wgRead.Add(1)
		go p.readFile(file)
	}
	p.logger.Sugar().Info("stop reading files")
}

func (p *processor) readFile(file File) {
	defer p.wgRead.Done()
	p.logger.Sugar().Infof("start reading file=%s", file)

	res, err := p.read(file)
	if err != nil {
		p.logger.Sugar().Errorf("can't read file=%s: (%s)", file, err.Error())
		p.move(file, p.config.FilesErrorsDir)
		return
	}
	p.logger.Sugar().Infof("done reading file=%s, products=%d skipped=%d", file, len(res.Products), res.Skipped)

	for _, batch := range batches(res.Products, p.config.DataBatchSize) {
		p.logger.Sugar().Debugf("send file=%s data batch to processing", file)
		p.data <- batch
	}
	p.move(file, p.config.FilesProcessedDir)
}

func (p *processor) read(file File) (*pricelist.Result, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.reader.Read(f, file.Name)
}

func (p *processor) move(file File, dir string) {
	if dir == "" {
		return
	}
	if _, err := moveFile(file, dir); err != nil {
		p.logger.Sugar().Errorf("can't move file=%s to directory=%s: (%s)", file, dir, err.Error())
	}
}

// batches splits products into chunks of size, size below 1 means a single chunk.
func batches(products []*models.Product, size int) [][]*models.Product {
	if len(products) == 0 {
		return nil
	}
	if size < 1 {
		size = len(products)
	}
	res := make([][]*models.Product, 0, (len(products)+size-1)/size)
	for start := 0; start < len(products); start += size {
		end := start + size
		if end > len(products) {
			end = len(products)
		}
		res = append(res, products[start:end])
	}
	return res
}

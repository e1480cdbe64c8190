package app

import (
	"context"
	"pharmacy/pkg/config"
	"pharmacy/pkg/files"
	"pharmacy/pkg/pricelist"
	"pharmacy/pkg/repository"
	"sync"
)

func RunWatcher(ctx context.Context, config *config.Watcher) error {
	logger := getLogger("WatcherApp")
	defer syncLogger(logger)

	logger.Sugar().Infof("start WatcherApp")

	if err := migrate(logger, config.Storage); err != nil {
		return err
	}

	logger.Sugar().Infof("init products repo for storage=%s", config.Storage.Type)
	productsRepo, err := repository.NewProducts(config.Storage)
	if err != nil {
		logger.Sugar().Errorf("unable to init products repo for storage=%s: (%s)", config.Storage.Type, err.Error())
		return err
	}

	wg := &sync.WaitGroup{}

	stopScanner := make(chan bool)
	stopProcessor := make(chan bool)

	queue := files.NewQueue(config.FilesQueueSize)
	reader := pricelist.NewReader(logger, nil).RequireCodes()

	scanner := files.NewScanner(wg, logger, config, queue, stopScanner)
	wg.Add(1)
	go scanner.Scan()

	// writes in flight finish after the watcher is asked to stop
	processor := files.NewProcessor(context.WithoutCancel(ctx), wg, config, queue, reader, productsRepo, logger, stopProcessor)
	wg.Add(1)
	go processor.Process()

	<-ctx.Done()
	logger.Sugar().Infof("stopping WatcherApp")

	stopScanner <- true
	queue.Close()
	stopProcessor <- true

	wg.Wait()
	logger.Sugar().Infof("WatcherApp stopped. Bye!")

	return nil
}

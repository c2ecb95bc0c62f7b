package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"padaria/internal/config"
	"padaria/internal/events"
	"padaria/internal/importer"
	"padaria/internal/logging"
	productsvc "padaria/internal/service/product"
	"padaria/internal/store"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a CSV file with nome,preco,descricao columns")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := logging.New("importer", cfg.IsDevelopment())
	ctx := context.Background()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer st.Close()

	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitMQURL != "" {
		if pub, err := events.DialAMQP(cfg.RabbitMQURL, logger); err != nil {
			logger.Warn().Err(err).Msg("rabbitmq unavailable, product events disabled")
		} else {
			publisher = pub
		}
	}
	defer publisher.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open file")
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, productsvc.New(st.Products, publisher, nil, logger), logger)

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Int("imported", res.Imported).Msg("import failed")
	}

	for _, rej := range res.Rejected {
		fmt.Fprintf(os.Stderr, "skipped %s\n", rej.Error())
	}
	fmt.Printf("Imported %d products (%d rejected) in %s\n", res.Imported, len(res.Rejected), time.Since(start).Truncate(time.Millisecond))
}

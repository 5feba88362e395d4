package main

import (
	"fmt"
	"os"

	"github.com/devsdeimpacto/coleta-service/internal/config"
	"github.com/devsdeimpacto/coleta-service/internal/db"
	"github.com/devsdeimpacto/coleta-service/internal/excel"
	"github.com/devsdeimpacto/coleta-service/internal/geocoding"
	httphandler "github.com/devsdeimpacto/coleta-service/internal/http"
	"github.com/devsdeimpacto/coleta-service/internal/logger"
	"github.com/devsdeimpacto/coleta-service/internal/pdf"
	"github.com/devsdeimpacto/coleta-service/internal/repository"
	"github.com/devsdeimpacto/coleta-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	requestRepo := repository.NewRequestRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	companyRepo := repository.NewCompanyRepository(database)
	pointRepo := repository.NewPointRepository(database)
	collectorRepo := repository.NewCollectorRepository(database)
	membershipRepo := repository.NewMembershipRepository(database)

	geocoder := geocoding.NewClient(cfg.Geocoding, log)
	excelGenerator := excel.NewGenerator()
	pdfGenerator := pdf.NewGenerator()

	orderService := service.NewOrderService(
		requestRepo, orderRepo, companyRepo, pointRepo, collectorRepo,
		geocoder, excelGenerator, pdfGenerator, log,
	)
	registryService := service.NewRegistryService(
		companyRepo, pointRepo, collectorRepo, geocoder, log,
	)
	membershipService := service.NewMembershipService(
		membershipRepo, collectorRepo, companyRepo, log,
	)

	handler := httphandler.NewHandler(orderService, registryService, membershipService, log)
	router := httphandler.NewRouter(handler, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting coleta service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

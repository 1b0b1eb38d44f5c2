package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/stranger-market/goapi/base/ctx"
	"github.com/stranger-market/goapi/base/database/mongoclient"
	"github.com/stranger-market/goapi/base/log"
	bValidator "github.com/stranger-market/goapi/base/validator"
	"github.com/stranger-market/goapi/domain"
	mmiddleware "github.com/stranger-market/goapi/middleware"
	"github.com/stranger-market/goapi/service/chain"
	"github.com/stranger-market/goapi/service/chain/contract"
	"github.com/stranger-market/goapi/service/query"
	auth_delivery "github.com/stranger-market/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/stranger-market/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/stranger-market/goapi/stores/auth/usecase"
	hc_delivery "github.com/stranger-market/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/stranger-market/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/stranger-market/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/stranger-market/goapi/stores/listing/delivery/http"
	listing_repository "github.com/stranger-market/goapi/stores/listing/repository"
	listing_usecase "github.com/stranger-market/goapi/stores/listing/usecase"

	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/stranger-market/goapi/app/api/docs"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			Stranger Market API
//	@version		1.0
//	@description	API Document for Stranger Market.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrive token from #/auth/post_auth_sign and apply with `bearer {token}`
func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		rpcs[chainId] = rpcUrl
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:     rpcs,
		OperatorKey: viper.GetString("operator.privateKey"),
	})
	if err != nil {
		context.WithField("err", err).Panic("chain service failed to start")
	}
	erc721Service := contract.NewErc721(chainService)
	vault := chain.NewVault(chainService)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, q)
	listingRepo := listing_repository.NewListingRepo(q)

	hc := hc_usecase.New(hcRepo)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	listing := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo:          listingRepo,
		Ownership:            erc721Service,
		Vault:                vault,
		CommissionPercentage: viper.GetInt("marketplace.commissionPercentage"),
		FeeRecipient:         domain.Address(viper.GetString("marketplace.feeRecipient")),
	})

	auth_middleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	listing_delivery.New(e, listing, auth_middleware)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	promreporter "github.com/uber-go/tally/prometheus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/beacon-api/api"
	"github.com/bitmark-inc/beacon-api/background"
	"github.com/bitmark-inc/beacon-api/consts"
	"github.com/bitmark-inc/beacon-api/external/expo"
	"github.com/bitmark-inc/beacon-api/geo"
	"github.com/bitmark-inc/beacon-api/lifecycle"
	"github.com/bitmark-inc/beacon-api/schema"
	"github.com/bitmark-inc/beacon-api/store"
	"github.com/bitmark-inc/beacon-api/utils"
)

var (
	server     *api.Server
	controller *lifecycle.Controller
	dataStore  store.Store
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("beacon")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("store.backend", "mongo")
	viper.SetDefault("mongo.database", "beacon")
	viper.SetDefault("mongo.pool", 100)
	viper.SetDefault("notification.lang", consts.DefaultLanguage)
}

func initStore(ctx context.Context) (store.Store, error) {
	switch backend := viper.GetString("store.backend"); backend {
	case "memory":
		log.WithField("prefix", "init").Warn("use in-memory store, data is lost on restart")
		return store.NewMemoryStore(), nil
	case "mongo":
		// initialise mongodb connections
		opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
		opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
		mongoClient, err := mongo.NewClient(opts)
		if nil != err {
			return nil, fmt.Errorf("create mongo client with error: %w", err)
		}

		if err := mongoClient.Connect(ctx); nil != err {
			return nil, fmt.Errorf("connect mongo database with error: %w", err)
		}

		database := viper.GetString("mongo.database")
		schema.NewMongoDBIndexerWithClient(mongoClient, database).IndexAll()

		return store.NewMongoStore(mongoClient, database), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}

func initAddressResolver() geo.AddressResolver {
	key := viper.GetString("google.maps.key")
	if key == "" {
		return nil
	}

	resolver, err := geo.NewGeocodingAddressResolverFromKey(key)
	if err != nil {
		log.WithField("prefix", "init").WithError(err).Warn("fail to initialize google maps client")
		return nil
	}

	return geo.NewMultipleAddressResolver(resolver)
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown mobile api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if controller != nil {
			log.Info("Waiting for notification dispatches")
			controller.Wait()
		}

		if dataStore != nil {
			log.Info("Shutting down db store")
			dataStore.Close()
		}

		sentry.Flush(5 * time.Second)

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	if err := utils.InitI18NBundle(viper.GetString("i18n.dir")); err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Initialized i18n bundle")

	// Metrics
	reporter := promreporter.NewReporter(promreporter.Options{})
	scope, scopeCloser := tally.NewRootScope(tally.ScopeOptions{
		Prefix:         "beacon",
		CachedReporter: reporter,
		Separator:      promreporter.DefaultSeparator,
	}, time.Second)
	defer scopeCloser.Close()

	var err error
	dataStore, err = initStore(initialCtx)
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Initialized store")

	httpClient := &http.Client{
		Timeout: 15 * time.Second,
	}
	expoClient := expo.NewClient(httpClient, viper.GetString("expo.url"), viper.GetString("expo.access_token"))

	registry := background.NewRegistry(dataStore)
	dispatcherOptions := []background.DispatcherOption{
		background.WithLanguage(viper.GetString("notification.lang")),
	}
	if resolver := initAddressResolver(); resolver != nil {
		dispatcherOptions = append(dispatcherOptions, background.WithAddressResolver(resolver))
		log.WithField("prefix", "init").Info("Initialized address resolver")
	}
	dispatcher := background.NewDispatcher(background.NewExpoPushGateway(expoClient), registry, scope, dispatcherOptions...)

	controller = lifecycle.NewController(dataStore, registry, dispatcher, scope)

	// Init http server
	server = api.NewServer(controller, dataStore, reporter.HTTPHandler())
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	if err := server.Run(":" + viper.GetString("server.port")); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	// the signal handler exits once dispatches are drained
	select {}
}

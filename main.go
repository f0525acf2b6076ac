package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/misioncampo/visitas-api/aggregator"
	"github.com/misioncampo/visitas-api/api"
	"github.com/misioncampo/visitas-api/scheduler"
	"github.com/misioncampo/visitas-api/schema"
	"github.com/misioncampo/visitas-api/store"
	"github.com/misioncampo/visitas-api/validator"
)

func initConfig() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/visitas-api")
	viper.SetEnvPrefix("visitas")
	viper.AutomaticEnv()

	viper.SetDefault("listen", ":8087")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("mongo.conn", "mongodb://127.0.0.1:27017")
	viper.SetDefault("mongo.database", "visitas")
	viper.SetDefault("mongo.pool", 16)
	viper.SetDefault("recalculation.debounce", "5s")
	viper.SetDefault("validation.max_attendee_ratio", 10)
	viper.SetDefault("validation.attendee_ratio_hard", false)

	if err := viper.ReadInConfig(); err != nil {
		log.WithError(err).Info("no config file found, using defaults and environment")
	}
}

func main() {
	initConfig()

	if level, err := log.ParseLevel(viper.GetString("log.level")); err == nil {
		log.SetLevel(level)
	}

	connURI := viper.GetString("mongo.conn")
	dbName := viper.GetString("mongo.database")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(connURI).
		SetMaxPoolSize(uint64(viper.GetInt("mongo.pool")))
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.WithError(err).Fatal("create mongo client")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.WithError(err).Fatal("connect to mongo")
	}

	if err := schema.NewMongoDBIndexer(connURI, dbName).IndexAll(); err != nil {
		log.WithError(err).Fatal("build mongo indexes")
	}

	visitasStore := store.NewMongoStore(client, dbName)
	defer visitasStore.Close()

	agg := aggregator.New(visitasStore)
	sched := scheduler.New(agg, visitasStore, viper.GetDuration("recalculation.debounce"))

	validatorCfg := validator.Config{
		MaxAttendeeRatio:  viper.GetFloat64("validation.max_attendee_ratio"),
		AttendeeRatioHard: viper.GetBool("validation.attendee_ratio_hard"),
	}

	server := api.NewServer(visitasStore, agg, sched, validatorCfg, viper.GetBool("trace"))

	log.WithField("listen", viper.GetString("listen")).Info("visitas api started")
	if err := server.Run(viper.GetString("listen")); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

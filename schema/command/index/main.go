package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/bitmark-inc/beacon-api/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("beacon")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetDefault("mongo.database", "beacon")
}

func main() {
	schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database")).IndexAll()
}

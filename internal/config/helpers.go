package config

import "coinwatch-api/pkg/pricesource"

// MustLoadPriceSource loads etc/pricesource.yaml from the project root and panics on error.
// Tools that only need the price API avoid requiring the data store and auth settings.
func MustLoadPriceSource() *pricesource.Config {
	return pricesource.MustLoad()
}

// MustBuildPriceSource loads the default price source config and builds its client.
func MustBuildPriceSource() (*pricesource.Client, *pricesource.Config) {
	cfg := MustLoadPriceSource()
	return cfg.BuildClient(), cfg
}

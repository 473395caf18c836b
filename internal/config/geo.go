package config

type Geo struct {
	Endpoint string `env:"GEO_ENDPOINT" envDefault:"http://ip-api.com"`
}

package config

type Logistics struct {
	BaseFee   float64 `env:"LOGISTICS_BASE_FEE" envDefault:"500"`
	PerKmRate float64 `env:"LOGISTICS_PER_KM_RATE" envDefault:"250"`
}

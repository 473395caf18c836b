package config

type Gemini struct {
	APIKey string `env:"GEMINI_API_KEY" json:"-"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	// BaseURL is the public origin of the site, used to build the payment
	// redirect URLs and the Kakao OAuth redirect URI.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	Firebase Firebase `envPrefix:"FIREBASE_"`
	Toss     Toss     `envPrefix:"TOSS_"`
	Kakao    Kakao    `envPrefix:"KAKAO_"`
	Redis    Redis    `envPrefix:"REDIS_"`
}

type Firebase struct {
	ProjectID       string `env:"PROJECT_ID"`
	CredentialsFile string `env:"CREDENTIALS_FILE"`
}

type Toss struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.tosspayments.com"`
	ClientKey  string `env:"CLIENT_KEY"`
	// SecretKey must only ever reach the server-side confirmation call.
	SecretKey string `env:"SECRET_KEY"`
}

type Kakao struct {
	BaseAuthURL string `env:"BASE_AUTH_URL" envDefault:"https://kauth.kakao.com"`
	BaseApiURL  string `env:"BASE_API_URL" envDefault:"https://kapi.kakao.com"`
	RestKey     string `env:"REST_KEY"`
}

type Redis struct {
	// Addr is optional; without it the confirmation lock is skipped and the
	// order store's conditional create is the only duplicate protection.
	Addr string `env:"ADDR"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

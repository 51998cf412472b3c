package config

type Config struct {
	Db_conn      string `mapstructure:"DB_CONN"`
	Jwt_secret   string `mapstructure:"JWT_SECRET"`
	Resume_token string `mapstructure:"RESUME_TOKEN"`
	Host         string `mapstructure:"HOST"`
}

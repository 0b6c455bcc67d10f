package config

const defaultAddr = ":8080"

func Addr() string {
	return lookupOr("APP_ADDR", defaultAddr)
}

func BasePath() string {
	return lookupOr("APP_BASE_PATH", "")
}

func SavePath() string {
	return lookupOr("SWEEP_SAVE_PATH", "sweep.db")
}
